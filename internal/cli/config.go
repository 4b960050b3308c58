package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitcite/internal/config"
)

// configCommand creates the config command with its subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect gitcite configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return err
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Long:  "Print the configuration after defaults, the config file, .env and GITCITE_* variables are applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List the recognised environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printEnv(cmd.OutOrStdout(), os.LookupEnv)
			return nil
		},
	})

	return cmd
}

// printEnv lists each GITCITE_* variable and its current value.
func printEnv(w io.Writer, lookup func(string) (string, bool)) {
	names := config.EnvNames()
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		v, ok := lookup(name)
		if !ok {
			v = StyleDim.Render("(unset)")
		}
		printKeyValue(w, width, name, v)
	}
}
