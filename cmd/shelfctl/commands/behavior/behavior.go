// Package behavior implements shelfctl's "behavior" command group.
package behavior

import (
	"github.com/spf13/cobra"
)

// Cmd is the "behavior" command group, wired into the root command.
var Cmd = &cobra.Command{
	Use:   "behavior",
	Short: "Resolve Settings against the compiled behavior tree",
}

func init() {
	Cmd.AddCommand(resolveCmd)
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
