package shelfmetrics

import "time"

// BatchMetrics observes BatchExecutor dispatch: per-request fan-out size,
// dispatch latency, and per-record outcomes.
//
// Pass nil to disable collection with zero overhead.
type BatchMetrics interface {
	// RecordDispatchStart increments the in-flight batch request counter.
	RecordDispatchStart(opKind string)

	// RecordDispatchEnd decrements the in-flight batch request counter and
	// records total dispatch duration.
	RecordDispatchEnd(opKind string, duration time.Duration, keyCount int)

	// RecordResult records a single record's outcome within a batch.
	//
	// Parameters:
	//   - opKind: Insert, Upsert, Update, Replace, Delete, Touch, Exists
	//   - resultCode: the record's result code
	//   - inDoubt: true when the write outcome is unknown after a network
	//     fault
	RecordResult(opKind, resultCode string, inDoubt bool)

	// RecordRetry records a retried attempt during transaction execution.
	RecordRetry(attempt int)
}

var newPrometheusBatchMetrics func() BatchMetrics

// RegisterBatchMetricsConstructor registers the Prometheus batch metrics
// constructor.
func RegisterBatchMetricsConstructor(constructor func() BatchMetrics) {
	newPrometheusBatchMetrics = constructor
}

// NewBatchMetrics creates a new Prometheus-backed BatchMetrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewBatchMetrics() BatchMetrics {
	if !IsEnabled() || newPrometheusBatchMetrics == nil {
		return nil
	}
	return newPrometheusBatchMetrics()
}
