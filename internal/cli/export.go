package cli

import (
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [FOLDER]",
		Short: "Export installed packages",
		Long:  "Write the installed packages to senget-packages.json in FOLDER, which defaults to the current directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			dir, err := resolveDir(dir)
			if err != nil {
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			path, err := s.orch.Export(dir)
			if err != nil {
				return err
			}
			ui.SuccessMsg("Exported packages to %s", path)
			return nil
		},
	}

	return cmd
}
