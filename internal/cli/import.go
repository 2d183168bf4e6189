package cli

import (
	"path/filepath"

	"github.com/glorpus-work/senget/internal/ui"
	"github.com/glorpus-work/senget/pkg/model"
	"github.com/spf13/cobra"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	var ignoreVersions bool

	cmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Install the packages of an export file",
		Long: `Install every package listed in an export file, which defaults to
senget-packages.json in the current directory. Packages that are already
installed are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := model.ExportFileName
			if len(args) == 1 {
				path = args[0]
			}
			path, err := filepath.Abs(path)
			if err != nil {
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			var installed int
			err = s.withProgress("Importing packages", func() error {
				pkgs, err := s.orch.Import(cmd.Context(), path, ignoreVersions)
				installed = len(pkgs)
				return err
			})
			if installed == 0 && err == nil {
				ui.InfoMsg("Nothing to import")
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&ignoreVersions, "ignore-versions", false, "Install the latest versions instead of the exported ones")

	return cmd
}
