package cli

import (
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/glorpus-work/senget/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	var (
		noWait bool
		args   []string
	)

	cmd := &cobra.Command{
		Use:   "run NAME",
		Short: "Run an installed package",
		Long:  "Start the recorded executable of an installed package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, names []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			s.orch.Hooks = orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
				ui.InfoMsg("%s", e.Msg)
			}}
			return s.orch.Run(cmd.Context(), names[0], !noWait, args...)
		},
	}

	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Return without waiting for the program to exit")
	cmd.Flags().StringSliceVarP(&args, "args", "a", nil, "Arguments passed to the program")

	return cmd
}
