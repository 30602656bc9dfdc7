package shelfconfig

import (
	"strings"
	"time"
)

// GetDefaultConfig returns a fully populated default configuration: no
// behavior entries (the "DEFAULT" root is implicit in the registry) and a
// default SystemSettings with no cluster overrides.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in any zero-valued fields of cfg with their defaults.
// It is called after decoding so that a partially specified config file
// behaves the same as an equivalent, more verbose one.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyWatchDefaults(&cfg.Watch)
	applySystemDefaults(&cfg.System)
	normalizeBehaviorEnums(cfg.Behaviors)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	cfg.Format = strings.ToLower(cfg.Format)

	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyWatchDefaults(cfg *WatchConfig) {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Second
	}
}

func applySystemDefaults(cfg *SystemConfig) {
	applySystemSettingsDefaults(&cfg.Default)
	for name, cluster := range cfg.Clusters {
		applySystemSettingsDefaults(&cluster)
		cfg.Clusters[name] = cluster
	}
}

func applySystemSettingsDefaults(cfg *SystemSettingsConfig) {
	if cfg.Connections.Max == 0 {
		cfg.Connections.Max = 300
	}
	if cfg.Connections.MaxIdle == 0 {
		cfg.Connections.MaxIdle = 300
	}
	if cfg.CircuitBreaker.TendIntervalsWindow == 0 {
		cfg.CircuitBreaker.TendIntervalsWindow = 1
	}
	if cfg.CircuitBreaker.MaxErrorsWindow == 0 {
		cfg.CircuitBreaker.MaxErrorsWindow = 100
	}
	if cfg.Refresh.TendInterval == 0 {
		cfg.Refresh.TendInterval = time.Second
	}
}

// normalizeBehaviorEnums upper-cases the enum-valued override fields so
// that a config file written in any case validates consistently.
func normalizeBehaviorEnums(behaviors map[string]BehaviorConfig) {
	for _, behavior := range behaviors {
		for scope, settings := range behavior.Scopes {
			for i, category := range settings.ReplicaOrder {
				settings.ReplicaOrder[i] = strings.ToUpper(category)
			}
			if settings.ReadModeSC != nil {
				upper := strings.ToUpper(*settings.ReadModeSC)
				settings.ReadModeSC = &upper
			}
			if settings.ReadModeAP != nil {
				upper := strings.ToUpper(*settings.ReadModeAP)
				settings.ReadModeAP = &upper
			}
			if settings.ExceptionPolicy != nil {
				upper := strings.ToUpper(*settings.ExceptionPolicy)
				settings.ExceptionPolicy = &upper
			}
			behavior.Scopes[scope] = settings
		}
	}
}
