package cli

import (
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/glorpus-work/senget/pkg/model"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [FILTER]",
		Short: "List installed packages",
		Long:  "List installed packages, optionally fuzzy filtered by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			return runList(filter)
		},
	}

	return cmd
}

func runList(filter string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	pkgs, err := s.orch.List(filter)
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		ui.InfoMsg("No installed packages found")
		return nil
	}
	renderPackages(pkgs)
	return nil
}

// renderPackages prints pkgs as a Name / Version / Installation Folder table.
func renderPackages(pkgs []model.Package) {
	table := ui.NewTable("Name", "Version", "Installation Folder")
	for _, pkg := range pkgs {
		folder := pkg.InstallationFolder()
		if folder == "" {
			folder = "Unknown"
		}
		table.AddRow(pkg.Name(), pkg.Version, folder)
	}
	table.Render()
}
