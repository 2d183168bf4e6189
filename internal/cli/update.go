package cli

import (
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/spf13/cobra"
)

// updateAllName selects every installed package.
const updateAllName = "all"

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "update [NAME]",
		Short: "Update installed packages",
		Long: `Update a package to the latest release, or to the release given with
--version. Without a name, or with "all", every installed package is updated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := updateAllName
			if len(args) == 1 {
				name = args[0]
			}
			return runUpdate(cmd, name, version)
		},
	}

	cmd.Flags().StringVarP(&version, "version", "v", "", "Version to update to (default: latest)")

	return cmd
}

func runUpdate(cmd *cobra.Command, name, version string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if name != updateAllName {
		return s.withProgress("Updating "+name, func() error {
			_, err := s.orch.Update(cmd.Context(), name, version)
			return err
		})
	}

	var updated int
	err = s.withProgress("Updating all packages", func() error {
		pkgs, err := s.orch.UpdateAll(cmd.Context())
		updated = len(pkgs)
		return err
	})
	if updated == 0 && err == nil {
		ui.InfoMsg("All packages are up to date")
	}
	return err
}
