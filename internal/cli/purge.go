package cli

import (
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/spf13/cobra"
)

// NewPurgeCmd creates the purge command.
func NewPurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove packages that were uninstalled outside senget",
		Long:  "Remove database records of packages whose executable no longer exists",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			purged, err := s.orch.Purge()
			if err != nil {
				return err
			}
			if len(purged) == 0 {
				ui.InfoMsg("Nothing to purge")
				return nil
			}
			for _, pkg := range purged {
				ui.SuccessMsg("Purged %s", pkg.Name())
			}
			return nil
		},
	}

	return cmd
}
