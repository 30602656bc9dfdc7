package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

func init() {
	shelfmetrics.RegisterIndexMetricsConstructor(func() shelfmetrics.IndexMetrics {
		return newIndexMetrics()
	})
}

// indexMetrics is the Prometheus implementation for the in-memory badger
// secondary-index cache metrics.
type indexMetrics struct {
	cacheHitRatio *prometheus.GaugeVec
	cacheMisses   *prometheus.CounterVec
	cacheHits     *prometheus.CounterVec
}

func newIndexMetrics() *indexMetrics {
	if !shelfmetrics.IsEnabled() {
		return nil
	}

	reg := shelfmetrics.GetRegistry()

	return &indexMetrics{
		cacheHitRatio: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shelf_index_cache_hit_ratio",
				Help: "In-memory secondary-index cache hit ratio (0.0 to 1.0) by index kind",
			},
			[]string{"index_kind"},
		),
		cacheMisses: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_index_cache_misses_total",
				Help: "Total number of secondary-index cache misses by index kind",
			},
			[]string{"index_kind"},
		),
		cacheHits: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_index_cache_hits_total",
				Help: "Total number of secondary-index cache hits by index kind",
			},
			[]string{"index_kind"},
		),
	}
}

func (m *indexMetrics) RecordCacheHitRatio(indexKind string, ratio float64) {
	if m == nil {
		return
	}
	m.cacheHitRatio.WithLabelValues(indexKind).Set(ratio)
}

func (m *indexMetrics) RecordCacheMiss(indexKind string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(indexKind).Inc()
}

func (m *indexMetrics) RecordCacheHit(indexKind string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(indexKind).Inc()
}
