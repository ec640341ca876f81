package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ForeverZer0/texpack"
	"github.com/ForeverZer0/texpack/internal/config"
)

// configCommand creates the settings file management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage settings files",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a settings file with the default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFile
			if len(args) == 1 {
				path = args[0]
			}

			exists, err := config.Exists(path)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := config.Save(path, texpack.DefaultSettings()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Wrote default settings")
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [path]",
		Short: "Print the effective settings of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := texpack.DefaultSettings()
			if len(args) == 1 {
				var err error
				settings, err = config.Load(args[0], loggerFromContext(cmd.Context()))
				if err != nil {
					return err
				}
			}

			data, err := config.Encode(settings)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
