package shelfmetrics

import "time"

// StreamMetrics observes record-stream pagination: page fetch latency and
// page sizes of a Chunked (scan) record stream. The navigable cursor
// stream records nothing.
//
// Pass nil to disable collection with zero overhead.
type StreamMetrics interface {
	// RecordPageFetch records a single page pulled from the cluster.
	RecordPageFetch(duration time.Duration, recordCount int)

	// RecordExhausted records that a stream reached its final page.
	RecordExhausted(totalPages int)

	// RecordClosed records that a stream was closed before exhaustion.
	RecordClosed(pagesConsumed int)
}

var newPrometheusStreamMetrics func() StreamMetrics

// RegisterStreamMetricsConstructor registers the Prometheus stream metrics
// constructor.
func RegisterStreamMetricsConstructor(constructor func() StreamMetrics) {
	newPrometheusStreamMetrics = constructor
}

// NewStreamMetrics creates a new Prometheus-backed StreamMetrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewStreamMetrics() StreamMetrics {
	if !IsEnabled() || newPrometheusStreamMetrics == nil {
		return nil
	}
	return newPrometheusStreamMetrics()
}
