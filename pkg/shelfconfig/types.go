// Package shelfconfig loads the declarative behavior/system configuration
// described in the configuration file schema and compiles it into the
// shelfbehavior.BehaviorTree the rest of the client resolves Settings from.
package shelfconfig

import "time"

// Config is the top-level decoded configuration file.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (SHELF_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Metrics contains Prometheus metrics server configuration.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Watch controls the hot-reload watcher described in the hot reload
	// contract.
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`

	// Behaviors is the named behavior tree: each entry's Parent links it
	// into the parent chain rooted at "DEFAULT".
	Behaviors map[string]BehaviorConfig `mapstructure:"behaviors" yaml:"behaviors"`

	// System holds the default SystemSettings plus any per-cluster
	// overrides.
	System SystemConfig `mapstructure:"system" yaml:"system"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing. When enabled,
// spans are exported over OTLP/gRPC around BatchExecutor.Execute, config
// reload, and transaction retry.
type TelemetryConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint   string  `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure   bool    `mapstructure:"insecure" yaml:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`
}

// MetricsConfig configures the Prometheus metrics registry.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// WatchConfig controls the config source watcher.
type WatchConfig struct {
	// Enabled turns on the background watcher goroutine.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// PollInterval is how often the source is polled for a change. Must
	// be at least one second per the hot reload contract.
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"omitempty,min=1000000000" yaml:"poll_interval"`
}

// BehaviorConfig is one named node in the behavior tree.
type BehaviorConfig struct {
	// Parent names the behavior this one derives from. "DEFAULT" (or
	// empty) means it derives directly from the root.
	Parent string `mapstructure:"parent" yaml:"parent"`

	// Scopes is a sparse map of Scope name to the field overrides that
	// apply at that scope. Unknown scope keys are rejected at load time.
	Scopes map[string]SparseSettings `mapstructure:",remain" yaml:",inline"`
}

// SparseSettings is the set of optional per-scope overrides. Every field is
// a pointer so that "unset" is distinguishable from "set to the zero
// value" — composition is override, never merge.
type SparseSettings struct {
	// Timeouts
	AbandonAfter                *time.Duration `mapstructure:"abandon_after" yaml:"abandon_after,omitempty"`
	WaitForCall                 *time.Duration `mapstructure:"wait_for_call" yaml:"wait_for_call,omitempty"`
	WaitForConnect               *time.Duration `mapstructure:"wait_for_connect" yaml:"wait_for_connect,omitempty"`
	WaitForSocketAfterFail       *time.Duration `mapstructure:"wait_for_socket_after_fail" yaml:"wait_for_socket_after_fail,omitempty"`

	// Retries
	MaxAttempts           *int `mapstructure:"max_attempts" yaml:"max_attempts,omitempty"`
	DelayBetween          *time.Duration `mapstructure:"delay_between" yaml:"delay_between,omitempty"`
	ResetTTLOnReadAtPct   *int `mapstructure:"reset_ttl_on_read_at_pct" yaml:"reset_ttl_on_read_at_pct,omitempty"`

	// Placement
	ReplicaOrder  []string `mapstructure:"replica_order" validate:"omitempty,dive,oneof=MASTER MASTER_OR_REPLICA MASTER_OR_REPLICA_IN_RACK ANY_REPLICA REPLICA_IN_RACK RANDOM RANDOM_IN_RACK" yaml:"replica_order,omitempty"`
	ReadModeSC    *string  `mapstructure:"read_mode_sc" validate:"omitempty,oneof=LINEARIZE ALLOW_REPLICA ALLOW_UNAVAILABLE SESSION" yaml:"read_mode_sc,omitempty"`
	ReadModeAP    *string  `mapstructure:"read_mode_ap" validate:"omitempty,oneof=ONE ALL" yaml:"read_mode_ap,omitempty"`

	// Batch tuning
	MaxConcurrentServers *int  `mapstructure:"max_concurrent_servers" yaml:"max_concurrent_servers,omitempty"`
	AllowInlineMemory    *bool `mapstructure:"allow_inline_memory" yaml:"allow_inline_memory,omitempty"`
	AllowInlineSSD       *bool `mapstructure:"allow_inline_ssd" yaml:"allow_inline_ssd,omitempty"`
	RecordQueueSize      *int  `mapstructure:"record_queue_size" yaml:"record_queue_size,omitempty"`

	// Durability
	SendKey        *bool `mapstructure:"send_key" yaml:"send_key,omitempty"`
	UseCompression *bool `mapstructure:"use_compression" yaml:"use_compression,omitempty"`
	DurableDelete  *bool `mapstructure:"durable_delete" yaml:"durable_delete,omitempty"`

	// Exceptions
	ExceptionPolicy *string `mapstructure:"exception_policy" validate:"omitempty,oneof=THROW_ON_ANY_ERROR RETURN_AS_MANY_RESULTS_AS_POSSIBLE" yaml:"exception_policy,omitempty"`
}

// SystemConfig holds the default SystemSettings plus any cluster-scoped
// overrides.
type SystemConfig struct {
	Default  SystemSettingsConfig            `mapstructure:"default" yaml:"default"`
	Clusters map[string]SystemSettingsConfig `mapstructure:"clusters" yaml:"clusters,omitempty"`
}

// SystemSettingsConfig mirrors SystemSettings: connections, circuit breaker,
// and tend-refresh tuning.
type SystemSettingsConfig struct {
	Connections    ConnectionsConfig    `mapstructure:"connections" yaml:"connections"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker" yaml:"circuit_breaker"`
	Refresh        RefreshConfig        `mapstructure:"refresh" yaml:"refresh"`
}

// ConnectionsConfig controls per-node connection pool sizing.
type ConnectionsConfig struct {
	Min      int `mapstructure:"min" validate:"omitempty,gte=0" yaml:"min"`
	Max      int `mapstructure:"max" validate:"omitempty,gtefield=Min" yaml:"max"`
	MaxIdle  int `mapstructure:"max_idle" validate:"omitempty,gte=0" yaml:"max_idle"`
}

// CircuitBreakerConfig controls node health circuit-breaking.
type CircuitBreakerConfig struct {
	TendIntervalsWindow int `mapstructure:"tend_intervals_window" validate:"omitempty,gt=0" yaml:"tend_intervals_window"`
	MaxErrorsWindow     int `mapstructure:"max_errors_window" validate:"omitempty,gt=0" yaml:"max_errors_window"`
}

// RefreshConfig controls cluster topology tend/refresh cadence.
type RefreshConfig struct {
	TendInterval time.Duration `mapstructure:"tend_interval" yaml:"tend_interval"`
}
