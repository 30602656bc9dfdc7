package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/shelf/internal/cli/prompt"
	"github.com/marmos91/shelf/pkg/shelfconfig"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `init writes the default behavior/system configuration to disk so it
can be edited by hand. Run without --force it refuses to overwrite an
existing file.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := GetConfigFile()

	if !initForce {
		ok, err := prompt.Confirm("Write starter configuration"+locationSuffix(path), true)
		if err != nil {
			if prompt.IsAborted(err) {
				return nil
			}
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "aborted")
			return nil
		}
	}

	var written string
	var err error
	if path != "" {
		written = path
		err = shelfconfig.InitConfigToPath(path, initForce)
	} else {
		written, err = shelfconfig.InitConfig(initForce)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote configuration to %s\n", written)
	return nil
}

func locationSuffix(path string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf(" at %s", path)
}
