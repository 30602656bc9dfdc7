package behavior

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/shelf/internal/cli/output"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfconfig"
)

var (
	resolveBehavior string
	resolveKind     string
	resolveShape    string
	resolveMode     string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve effective Settings for a (behavior, kind, shape, mode) request",
	Long: `resolve compiles the configuration file's behavior tree and prints
the Settings a request with the given behavior name and (kind, shape,
mode) triple would see, after the parent-chain override walk.

Example:
  shelfctl behavior resolve --behavior hot-read-path --kind READ --shape POINT --mode SC`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveBehavior, "behavior", "DEFAULT", "behavior name to resolve against")
	resolveCmd.Flags().StringVar(&resolveKind, "kind", "READ", "operation kind")
	resolveCmd.Flags().StringVar(&resolveShape, "shape", "POINT", "operation shape")
	resolveCmd.Flags().StringVar(&resolveMode, "mode", "ANY", "consistency mode")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := shelfconfig.Load(configPath(cmd))
	if err != nil {
		return err
	}

	specs, _, err := shelfconfig.Compile(cfg)
	if err != nil {
		return fmt.Errorf("behavior tree failed to compile: %w", err)
	}

	behaviors, err := shelfbehavior.Compile(specs)
	if err != nil {
		return fmt.Errorf("behavior tree failed to compile: %w", err)
	}

	b, ok := behaviors[resolveBehavior]
	if !ok {
		return fmt.Errorf("no behavior named %q in configuration", resolveBehavior)
	}

	kind, err := shelfbehavior.ParseKind(resolveKind)
	if err != nil {
		return err
	}
	shape, err := shelfbehavior.ParseShape(resolveShape)
	if err != nil {
		return err
	}
	mode, err := shelfbehavior.ParseMode(resolveMode)
	if err != nil {
		return err
	}

	settings := b.Resolve(kind, shape, mode)

	fmt.Fprintf(cmd.OutOrStdout(), "%s resolved against %s / %s / %s\n\n", resolveBehavior, resolveKind, resolveShape, resolveMode)

	output.KeyValueTable(cmd.OutOrStdout(), [][2]string{
		{"abandon_after", settings.AbandonAfter.String()},
		{"wait_for_call", settings.WaitForCall.String()},
		{"wait_for_connect", settings.WaitForConnect.String()},
		{"wait_for_socket_after_fail", settings.WaitForSocketAfterFail.String()},
		{"max_attempts", fmt.Sprintf("%d", settings.MaxAttempts)},
		{"delay_between", settings.DelayBetween.String()},
		{"reset_ttl_on_read_at_pct", fmt.Sprintf("%d", settings.ResetTTLOnReadAtPct)},
		{"max_concurrent_servers", fmt.Sprintf("%d", settings.MaxConcurrentServers)},
		{"allow_inline_memory", fmt.Sprintf("%t", settings.AllowInlineMemory)},
		{"allow_inline_ssd", fmt.Sprintf("%t", settings.AllowInlineSSD)},
		{"record_queue_size", fmt.Sprintf("%d", settings.RecordQueueSize)},
		{"send_key", fmt.Sprintf("%t", settings.SendKey)},
		{"use_compression", fmt.Sprintf("%t", settings.UseCompression)},
		{"durable_delete", fmt.Sprintf("%t", settings.DurableDelete)},
		{"exception_policy", settings.ExceptionPolicy.String()},
	})

	return nil
}
