package cmd

import (
	"fmt"

	"limeade/pkg/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect limeade configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the configuration after applying the config file and LIMEADE_* environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			path = "(unknown)"
		}
		cfg := activeConfig

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current Configuration:")
		fmt.Fprintln(out, "======================")
		fmt.Fprintf(out, "Config file: %s\n", path)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Server address: %s\n", cfg.Server.Addr)
		fmt.Fprintf(out, "Server backend: %s\n", cfg.Server.Backend)
		fmt.Fprintf(out, "Client target: %s\n", cfg.Client.Target)
		fmt.Fprintf(out, "Log level: %s\n", cfg.LogLevel)
		return nil
	},
}
