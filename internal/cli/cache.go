package cli

import (
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/spf13/cobra"
)

// NewClearCacheCmd creates the clear-cache command.
func NewClearCacheCmd() *cobra.Command {
	var info bool

	cmd := &cobra.Command{
		Use:   "clear-cache",
		Short: "Delete downloaded distributables",
		Long:  "Delete the distributables kept in the dists folder and report the space freed",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			op := newCacheOperation(cfg)

			if info {
				msg, err := op.GetInfo()
				if err != nil {
					return err
				}
				ui.Println(msg)
				return nil
			}

			msg, err := op.Clean()
			if err != nil {
				return err
			}
			ui.SuccessMsg("%s", msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&info, "info", false, "Show the cache size instead of clearing it")

	return cmd
}

// CacheWarning returns the hint to clear the dists folder, or an empty
// string when it is below the configured threshold or downloads are kept.
func CacheWarning() string {
	cfg, err := loadConfig()
	if err != nil || cfg.Settings.KeepDownloads {
		return ""
	}
	msg, err := newCacheOperation(cfg).SizeWarning(cfg.Settings.CacheWarnMB)
	if err != nil {
		return ""
	}
	return msg
}
