package cli

import (
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search GitHub for packages",
		Long:  "Search GitHub repositories that may publish installable releases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var table *ui.Table
			err = ui.WithSpinner("Searching "+args[0], func(*ui.Spinner) error {
				repos, err := newResolver(cfg).Search(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				table = ui.NewTable("Full Name", "Description")
				for _, repo := range repos {
					table.AddRow(repo.FullName, ui.Truncate(repo.Description, MaxDescriptionLength))
				}
				return nil
			})
			if err != nil {
				return err
			}
			if table.Len() == 0 {
				ui.InfoMsg("No packages found for %q", args[0])
				return nil
			}
			table.Render()
			return nil
		},
	}

	return cmd
}
