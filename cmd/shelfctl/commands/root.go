// Package commands implements shelfctl's CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/shelf/cmd/shelfctl/commands/behavior"
	"github.com/marmos91/shelf/cmd/shelfctl/commands/config"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "shelfctl",
	Short: "Inspect and validate a shelf client's configuration and behavior tree",
	Long: `shelfctl is a companion CLI for a shelf-based client application: it
initializes and validates the declarative behavior/system configuration
file, resolves the effective Settings a given (kind, shape, mode) request
would see, and runs ad-hoc queries against a local reference transport.

Use "shelfctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetConfigFile returns the --config flag value.
func GetConfigFile() string {
	return cfgFile
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/shelf/config.yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(behavior.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
