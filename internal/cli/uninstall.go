package cli

import (
	"github.com/glorpus-work/senget/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "uninstall NAME",
		Short: "Uninstall a package",
		Long: `Uninstall a package. When the automatic uninstallation fails, --force
removes the package from the package database anyway.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove the package from the database even if uninstallation fails")

	return cmd
}

func runUninstall(cmd *cobra.Command, name string, force bool) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return s.withProgress("Uninstalling "+name, func() error {
		_, err := s.orch.Uninstall(cmd.Context(), name, orchestrator.UninstallOptions{Force: force})
		return err
	})
}
