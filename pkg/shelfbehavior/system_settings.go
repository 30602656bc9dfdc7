package shelfbehavior

import "time"

// SystemSettings tunes the connection pool, circuit breaker, and cluster
// tend/refresh cadence — process-wide parameters with optional per-cluster
// overrides, resolved independently of the scope/BehaviorTree mechanism.
type SystemSettings struct {
	Connections    ConnectionSettings
	CircuitBreaker CircuitBreakerSettings
	Refresh        RefreshSettings
}

// ConnectionSettings controls per-node connection pool sizing.
type ConnectionSettings struct {
	Min     int
	Max     int
	MaxIdle int
}

// CircuitBreakerSettings controls node health circuit-breaking.
type CircuitBreakerSettings struct {
	TendIntervalsWindow int
	MaxErrorsWindow     int
}

// RefreshSettings controls cluster topology tend/refresh cadence.
type RefreshSettings struct {
	TendInterval time.Duration
}

// DefaultSystemSettings is the hard-coded default used when no section is
// overridden for a given cluster.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		Connections:    ConnectionSettings{Min: 1, Max: 300, MaxIdle: 300},
		CircuitBreaker: CircuitBreakerSettings{TendIntervalsWindow: 1, MaxErrorsWindow: 100},
		Refresh:        RefreshSettings{TendInterval: time.Second},
	}
}

// SystemSettingsOverride mirrors SystemSettings with whole-section
// replace-on-set semantics: a cluster override that sets Connections
// replaces the entire ConnectionSettings struct, never merges field by
// field, matching the "override, never merge" composition rule.
type SystemSettingsOverride struct {
	Connections    *ConnectionSettings
	CircuitBreaker *CircuitBreakerSettings
	Refresh        *RefreshSettings
}

func (o SystemSettingsOverride) applyTo(base SystemSettings) SystemSettings {
	out := base
	if o.Connections != nil {
		out.Connections = *o.Connections
	}
	if o.CircuitBreaker != nil {
		out.CircuitBreaker = *o.CircuitBreaker
	}
	if o.Refresh != nil {
		out.Refresh = *o.Refresh
	}
	return out
}

// SystemRegistry holds the default SystemSettings plus any cluster-scoped
// overrides, swapped atomically on reload just like the Behavior registry.
type SystemRegistry struct {
	Default  SystemSettings
	Clusters map[string]SystemSettingsOverride
}

// NewSystemRegistry builds a SystemRegistry from a default and a set of
// per-cluster overrides.
func NewSystemRegistry(def SystemSettings, clusters map[string]SystemSettingsOverride) *SystemRegistry {
	if clusters == nil {
		clusters = map[string]SystemSettingsOverride{}
	}
	return &SystemRegistry{Default: def, Clusters: clusters}
}

// Resolve returns the effective SystemSettings for clusterName: the
// default overlaid by that cluster's override sections, if any.
func (r *SystemRegistry) Resolve(clusterName string) SystemSettings {
	if r == nil {
		return DefaultSystemSettings()
	}
	if override, ok := r.Clusters[clusterName]; ok {
		return override.applyTo(r.Default)
	}
	return r.Default
}
