package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/shelf/pkg/shelfconfig"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `validate loads the behavior/system configuration file, checks it
against its struct tags and the BehaviorTree compiler, and reports any
soft warnings (missing telemetry endpoint while tracing is enabled, and
the like).

Examples:
  shelfctl config validate
  shelfctl config validate --config /etc/shelf/config.yaml`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := configPath(cmd)

	cfg, err := shelfconfig.MustLoad(path)
	if err != nil {
		return err
	}

	displayPath := path
	if displayPath == "" {
		displayPath = shelfconfig.GetDefaultConfigPath()
	}

	if _, _, err := shelfconfig.Compile(cfg); err != nil {
		return fmt.Errorf("behavior tree failed to compile: %w", err)
	}

	var warnings []string
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		warnings = append(warnings, "telemetry is enabled but no endpoint is configured")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Port == 0 {
		warnings = append(warnings, "metrics is enabled but no port is configured")
	}
	if len(cfg.Behaviors) == 0 {
		warnings = append(warnings, "no behaviors configured; every request resolves against system defaults")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file: %s\n", displayPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Validation: OK")

	if len(warnings) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nWarnings:")
		for _, w := range warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", w)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nConfiguration summary:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Behaviors:   %d\n", len(cfg.Behaviors))
	fmt.Fprintf(cmd.OutOrStdout(), "  Log level:   %s\n", cfg.Logging.Level)
	fmt.Fprintf(cmd.OutOrStdout(), "  Telemetry:   %t\n", cfg.Telemetry.Enabled)
	fmt.Fprintf(cmd.OutOrStdout(), "  Metrics:     %t\n", cfg.Metrics.Enabled)
	fmt.Fprintf(cmd.OutOrStdout(), "  Watch:       %t\n", cfg.Watch.Enabled)

	return nil
}
