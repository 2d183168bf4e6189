package cli

import (
	"context"

	"github.com/glorpus-work/senget/internal/ui"
	"github.com/glorpus-work/senget/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version information for senget",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			ui.Println("senget version " + Version)
		},
	}

	return cmd
}

// CheckSelfUpdate reports the latest senget release when it is newer than
// the running one. It returns an empty string when up to date, when the
// check is disabled or when it fails.
func CheckSelfUpdate(ctx context.Context) string {
	cfg, err := loadConfig()
	if err != nil || !cfg.Settings.CheckSelfUpdate {
		return ""
	}
	orch := &orchestrator.Orchestrator{Resolver: newResolver(cfg)}
	latest, newer, err := orch.CheckSelfUpdate(ctx, SelfRepository.FullName, Version)
	if err != nil || !newer {
		return ""
	}
	return "A new version of senget is available: " + Version + " --> " + latest + `, run "senget update senget" to update`
}
