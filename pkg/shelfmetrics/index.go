package shelfmetrics

// IndexMetrics observes the in-memory badger-backed secondary-index cache
// maintained by pkg/shelfindex.
//
// Pass nil to disable collection with zero overhead.
type IndexMetrics interface {
	// RecordCacheHitRatio records the index cache hit ratio (0.0 to 1.0)
	// for a specific index kind.
	RecordCacheHitRatio(indexKind string, ratio float64)

	// RecordCacheHit records a single index lookup hit.
	RecordCacheHit(indexKind string)

	// RecordCacheMiss records a single index lookup miss.
	RecordCacheMiss(indexKind string)
}

var newPrometheusIndexMetrics func() IndexMetrics

// RegisterIndexMetricsConstructor registers the Prometheus index metrics
// constructor.
func RegisterIndexMetricsConstructor(constructor func() IndexMetrics) {
	newPrometheusIndexMetrics = constructor
}

// NewIndexMetrics creates a new Prometheus-backed IndexMetrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewIndexMetrics() IndexMetrics {
	if !IsEnabled() || newPrometheusIndexMetrics == nil {
		return nil
	}
	return newPrometheusIndexMetrics()
}
