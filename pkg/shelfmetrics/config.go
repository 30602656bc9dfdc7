package shelfmetrics

import "time"

// ConfigMetrics observes the declarative configuration plane: reload
// attempts, their outcome, and which source produced the active
// generation.
//
// Pass nil to disable collection with zero overhead.
type ConfigMetrics interface {
	// RecordReload records a completed config reload attempt.
	//
	// Parameters:
	//   - source: file, postgres, or sqlite
	//   - duration: time taken to load and validate
	//   - err: non-nil if the reload was rejected
	RecordReload(source string, duration time.Duration, err error)

	// SetGeneration publishes the currently active config generation.
	SetGeneration(source string, gen int64)
}

var newPrometheusConfigMetrics func() ConfigMetrics

// RegisterConfigMetricsConstructor registers the Prometheus config metrics
// constructor.
func RegisterConfigMetricsConstructor(constructor func() ConfigMetrics) {
	newPrometheusConfigMetrics = constructor
}

// NewConfigMetrics creates a new Prometheus-backed ConfigMetrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewConfigMetrics() ConfigMetrics {
	if !IsEnabled() || newPrometheusConfigMetrics == nil {
		return nil
	}
	return newPrometheusConfigMetrics()
}
