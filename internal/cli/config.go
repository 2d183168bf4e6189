package cli

import (
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/glorpus-work/senget/pkg/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "View and modify senget configuration settings",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigPathCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display every setting, including the folders derived from root_dir",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := loadStoredConfig()
			if err != nil {
				return err
			}
			values := cfg.Effective().ToMap()
			table := ui.NewTable("Key", "Value")
			for _, key := range config.Keys() {
				value := values[key]
				if key == "github_token" && value != "" {
					value = "********"
				}
				table.AddRow(key, value)
			}
			table.Render()
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadStoredConfig()
			if err != nil {
				return err
			}
			value, err := cfg.Effective().GetValue(args[0])
			if err != nil {
				return err
			}
			ui.Println(value)
			return nil
		},
	}
}

// Number of arguments expected by the set command.
const setCommandArgs = 2

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration key to a specific value and save the config file",
		Args:  cobra.ExactArgs(setCommandArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig(path)
			if err != nil {
				return err
			}
			if err := cfg.SetValue(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.SaveConfig(path); err != nil {
				return err
			}
			ui.SuccessMsg("Set %s to %s", args[0], args[1])
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}
			ui.Println(path)
			return nil
		},
	}
}

// loadStoredConfig loads the config file without applying the global flags.
func loadStoredConfig() (*config.Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}
	return config.LoadConfig(path)
}
