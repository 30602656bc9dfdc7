// Package config implements shelfctl's "config" command group.
package config

import (
	"github.com/spf13/cobra"
)

// Cmd is the "config" command group, wired into the root command.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate the behavior/system configuration file",
}

func init() {
	Cmd.AddCommand(schemaCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(validateCmd)
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
