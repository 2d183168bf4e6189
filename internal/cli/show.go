package cli

import (
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show package details",
		Long: `Show the details of an installed package, or of the repository the name
resolves to when it is not installed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			details, err := s.orch.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ui.Println(details.String())
			return nil
		},
	}

	return cmd
}
