package shelfmetrics

import "time"

// BehaviorMetrics observes settings resolution: how often the tree
// reaches the scope-override path and how long resolution takes.
//
// Pass nil to disable collection with zero overhead.
type BehaviorMetrics interface {
	// RecordResolution records a completed settings resolution.
	//
	// Parameters:
	//   - behavior: the behavior name that was resolved
	//   - scope: the most specific scope that supplied an override, or
	//     "none" when only parent-chain defaults applied
	//   - duration: time taken to resolve
	RecordResolution(behavior, scope string, duration time.Duration)

	// RecordCacheHit records that a memoized resolution was reused.
	RecordCacheHit(behavior string)

	// RecordCacheMiss records that resolution had to run.
	RecordCacheMiss(behavior string)

	// SetRegistryGeneration publishes the current registry version after
	// a hot-swap of a named behavior.
	SetRegistryGeneration(gen int64)
}

// newPrometheusBehaviorMetrics is registered by
// pkg/shelfmetrics/prometheus/behavior.go during package initialization.
// The indirection avoids an import cycle between shelfmetrics and its
// prometheus implementation package.
var newPrometheusBehaviorMetrics func() BehaviorMetrics

// RegisterBehaviorMetricsConstructor registers the Prometheus behavior
// metrics constructor.
func RegisterBehaviorMetricsConstructor(constructor func() BehaviorMetrics) {
	newPrometheusBehaviorMetrics = constructor
}

// NewBehaviorMetrics creates a new Prometheus-backed BehaviorMetrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewBehaviorMetrics() BehaviorMetrics {
	if !IsEnabled() || newPrometheusBehaviorMetrics == nil {
		return nil
	}
	return newPrometheusBehaviorMetrics()
}
