package cli

import (
	"fmt"

	"github.com/glorpus-work/senget/pkg/model"
	"github.com/glorpus-work/senget/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		version  string
		kind     string
		shortcut bool
	)

	cmd := &cobra.Command{
		Use:   "install NAME",
		Short: "Install a package",
		Long: `Install a package from the latest GitHub release of the repository it
names, or from the release given with --version.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args[0], version, kind, shortcut, cmd.Flags().Changed("shortcut"))
		},
	}

	cmd.Flags().StringVarP(&version, "version", "v", "", "Version to install (default: latest)")
	cmd.Flags().StringVarP(&kind, "dist-type", "d", "", "Preferred distributable: installer, zip or exe")
	cmd.Flags().BoolVar(&shortcut, "shortcut", false, "Create a start menu shortcut for zip and exe packages")

	return cmd
}

// parseKindFlag converts an optional --dist-type value.
func parseKindFlag(value string) (model.Kind, error) {
	if value == "" {
		return "", nil
	}
	kind, err := model.ParseKind(value)
	if err != nil {
		return "", fmt.Errorf("invalid --dist-type: %w", err)
	}
	return kind, nil
}

func runInstall(cmd *cobra.Command, name, version, kind string, shortcut, shortcutSet bool) error {
	preferred, err := parseKindFlag(kind)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if !shortcutSet {
		shortcut = s.cfg.Settings.CreateShortcuts
	}
	opts := orchestrator.InstallOptions{Version: version, Kind: preferred, CreateShortcut: shortcut}

	return s.withProgress("Installing "+name, func() error {
		_, err := s.orch.Install(cmd.Context(), name, opts)
		return err
	})
}
