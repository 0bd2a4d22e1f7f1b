package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetLink/internal/model"
	"github.com/piwi3910/SheetLink/internal/project"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			out := printer{w: cmd.OutOrStdout()}
			out.info("%s", c.ConfigPath)
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.ConfigPath)
			}
			if err := project.SaveAppConfig(c.ConfigPath, model.DefaultAppConfig()); err != nil {
				return err
			}
			printer{w: cmd.OutOrStdout()}.success("Wrote default configuration")
			printer{w: cmd.OutOrStdout()}.file(c.ConfigPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
