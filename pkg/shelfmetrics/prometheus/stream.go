package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

func init() {
	shelfmetrics.RegisterStreamMetricsConstructor(func() shelfmetrics.StreamMetrics {
		return newStreamMetrics()
	})
}

type streamMetrics struct {
	pageFetchDur   prometheus.Histogram
	pageRecordSize prometheus.Histogram
	exhausted      prometheus.Counter
	closedEarly    prometheus.Counter
	pagesConsumed  prometheus.Histogram
}

func newStreamMetrics() *streamMetrics {
	if !shelfmetrics.IsEnabled() {
		return nil
	}

	reg := shelfmetrics.GetRegistry()

	return &streamMetrics{
		pageFetchDur: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shelf_stream_page_fetch_seconds",
				Help:    "Latency of a single record-stream page fetch",
				Buckets: prometheus.DefBuckets,
			},
		),
		pageRecordSize: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shelf_stream_page_records",
				Help:    "Number of records returned per page",
				Buckets: []float64{1, 10, 50, 100, 250, 500, 1000},
			},
		),
		exhausted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "shelf_stream_exhausted_total",
				Help: "Streams that ran to their final page",
			},
		),
		closedEarly: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "shelf_stream_closed_early_total",
				Help: "Streams closed before reaching their final page",
			},
		),
		pagesConsumed: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shelf_stream_pages_consumed",
				Help:    "Pages consumed per stream lifetime",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
			},
		),
	}
}

func (m *streamMetrics) RecordPageFetch(duration time.Duration, recordCount int) {
	if m == nil {
		return
	}
	m.pageFetchDur.Observe(duration.Seconds())
	m.pageRecordSize.Observe(float64(recordCount))
}

func (m *streamMetrics) RecordExhausted(totalPages int) {
	if m == nil {
		return
	}
	m.exhausted.Inc()
	m.pagesConsumed.Observe(float64(totalPages))
}

func (m *streamMetrics) RecordClosed(pagesConsumed int) {
	if m == nil {
		return
	}
	m.closedEarly.Inc()
	m.pagesConsumed.Observe(float64(pagesConsumed))
}
