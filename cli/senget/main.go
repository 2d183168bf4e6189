package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/glorpus-work/senget/internal/cli"
	"github.com/glorpus-work/senget/internal/ui"
)

var (
	configPath string
	verbose    bool
	noColor    bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	os.Exit(run(ctx, cancel))
}

func run(ctx context.Context, cancel context.CancelFunc) int {
	defer cancel()

	var (
		checks    errgroup.Group
		updateMsg string
	)
	rootCmd := newRootCmd(func(ctx context.Context) {
		checks.Go(func() error {
			updateMsg = cli.CheckSelfUpdate(ctx)
			return nil
		})
	})

	err := rootCmd.ExecuteContext(ctx)
	_ = checks.Wait()

	code := 0
	if err != nil {
		cli.PrintError(err)
		code = 1
	}
	if warning := cli.CacheWarning(); warning != "" {
		ui.WarningMsg("%s", warning)
	}
	if updateMsg != "" {
		ui.InfoMsg("%s", updateMsg)
	}
	return code
}

// newRootCmd builds the command tree. background is started once the flags
// are parsed, alongside the selected subcommand.
func newRootCmd(background func(ctx context.Context)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "senget",
		Short: "Package manager for Windows",
		Long: `senget installs, updates and uninstalls Windows software published as
GitHub release assets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cli.InitOutput()
			if background != nil {
				background(cmd.Context())
			}
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor

	cmd.AddCommand(
		cli.NewInstallCmd(),
		cli.NewUpdateCmd(),
		cli.NewUninstallCmd(),
		cli.NewDownloadCmd(),
		cli.NewListCmd(),
		cli.NewShowCmd(),
		cli.NewSearchCmd(),
		cli.NewRunCmd(),
		cli.NewExportCmd(),
		cli.NewImportCmd(),
		cli.NewClearCacheCmd(),
		cli.NewPurgeCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
