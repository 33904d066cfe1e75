package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"todocal/internal/config"
)

// newConfigCmd creates the config command with its subcommands
func newConfigCmd(r *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Manage the todocal configuration file.

The file is looked up at --config, then $TODOCAL_CONFIG, then the user
config directory. $TODOCAL_BASE_URL overrides base_url from the file.

Examples:
  todocal config init            # Write the default config
  todocal config show            # Print the effective config
  todocal config path            # Print where the config is read from`,
	}

	configCmd.AddCommand(newConfigInitCmd(r))
	configCmd.AddCommand(newConfigShowCmd(r))
	configCmd.AddCommand(newConfigPathCmd(r))

	return configCmd
}

func newConfigInitCmd(r *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.SetCustomConfigPath(r.configPath)
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			if err := config.InitConfig(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(r *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.loadApp()
			if err != nil {
				return err
			}
			data, err := a.Config().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigPathCmd(r *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.SetCustomConfigPath(r.configPath)
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
