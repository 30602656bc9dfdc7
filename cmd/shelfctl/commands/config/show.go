package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/shelf/internal/cli/output"
	"github.com/marmos91/shelf/pkg/shelfconfig"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `show loads the configuration file (falling back to defaults when
none is found), applies every default, and prints the resulting
behavior list and ambient-stack settings.`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := shelfconfig.Load(configPath(cmd))
	if err != nil {
		return err
	}

	output.KeyValueTable(cmd.OutOrStdout(), [][2]string{
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"telemetry.enabled", fmt.Sprintf("%t", cfg.Telemetry.Enabled)},
		{"telemetry.endpoint", cfg.Telemetry.Endpoint},
		{"metrics.enabled", fmt.Sprintf("%t", cfg.Metrics.Enabled)},
		{"metrics.port", fmt.Sprintf("%d", cfg.Metrics.Port)},
		{"watch.enabled", fmt.Sprintf("%t", cfg.Watch.Enabled)},
		{"watch.poll_interval", cfg.Watch.PollInterval.String()},
	})

	fmt.Fprintln(cmd.OutOrStdout())

	table := output.NewTableData("BEHAVIOR", "PARENT", "SCOPES")
	for name, b := range cfg.Behaviors {
		table.AddRow(name, b.Parent, fmt.Sprintf("%d", len(b.Scopes)))
	}
	output.PrintTable(cmd.OutOrStdout(), table)

	return nil
}
