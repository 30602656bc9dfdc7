package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

func init() {
	shelfmetrics.RegisterBatchMetricsConstructor(func() shelfmetrics.BatchMetrics {
		return newBatchMetrics()
	})
}

type batchMetrics struct {
	inFlight    *prometheus.GaugeVec
	dispatchDur *prometheus.HistogramVec
	keysPerReq  *prometheus.HistogramVec
	results     *prometheus.CounterVec
	inDoubt     *prometheus.CounterVec
	retries     *prometheus.CounterVec
}

func newBatchMetrics() *batchMetrics {
	if !shelfmetrics.IsEnabled() {
		return nil
	}

	reg := shelfmetrics.GetRegistry()

	return &batchMetrics{
		inFlight: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shelf_batch_requests_in_flight",
				Help: "Number of batch requests currently dispatched",
			},
			[]string{"op_kind"},
		),
		dispatchDur: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelf_batch_dispatch_seconds",
				Help:    "Batch dispatch latency by operation kind",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op_kind"},
		),
		keysPerReq: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelf_batch_key_count",
				Help:    "Number of keys per batch request",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"op_kind"},
		),
		results: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_batch_record_results_total",
				Help: "Per-record results returned by batch execution",
			},
			[]string{"op_kind", "result_code"},
		),
		inDoubt: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_batch_in_doubt_total",
				Help: "Writes whose outcome is unknown after a network fault",
			},
			[]string{"op_kind"},
		),
		retries: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_batch_retries_total",
				Help: "Transaction retry attempts by attempt number",
			},
			[]string{"attempt"},
		),
	}
}

func (m *batchMetrics) RecordDispatchStart(opKind string) {
	if m == nil {
		return
	}
	m.inFlight.WithLabelValues(opKind).Inc()
}

func (m *batchMetrics) RecordDispatchEnd(opKind string, duration time.Duration, keyCount int) {
	if m == nil {
		return
	}
	m.inFlight.WithLabelValues(opKind).Dec()
	m.dispatchDur.WithLabelValues(opKind).Observe(duration.Seconds())
	m.keysPerReq.WithLabelValues(opKind).Observe(float64(keyCount))
}

func (m *batchMetrics) RecordResult(opKind, resultCode string, inDoubt bool) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(opKind, resultCode).Inc()
	if inDoubt {
		m.inDoubt.WithLabelValues(opKind).Inc()
	}
}

func (m *batchMetrics) RecordRetry(attempt int) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(itoa(attempt)).Inc()
}
