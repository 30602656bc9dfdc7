package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

func init() {
	shelfmetrics.RegisterBehaviorMetricsConstructor(func() shelfmetrics.BehaviorMetrics {
		return newBehaviorMetrics()
	})
}

type behaviorMetrics struct {
	resolutions      *prometheus.HistogramVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	registryGenGauge prometheus.Gauge
}

func newBehaviorMetrics() *behaviorMetrics {
	if !shelfmetrics.IsEnabled() {
		return nil
	}

	reg := shelfmetrics.GetRegistry()

	return &behaviorMetrics{
		resolutions: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelf_behavior_resolution_seconds",
				Help:    "Settings resolution latency by behavior and resolved scope",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"behavior", "scope"},
		),
		cacheHits: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_behavior_resolution_cache_hits_total",
				Help: "Total number of memoized settings resolutions reused",
			},
			[]string{"behavior"},
		),
		cacheMisses: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_behavior_resolution_cache_misses_total",
				Help: "Total number of settings resolutions that had to run",
			},
			[]string{"behavior"},
		),
		registryGenGauge: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "shelf_behavior_registry_generation",
				Help: "Current generation of the behavior registry after the last hot-swap",
			},
		),
	}
}

func (m *behaviorMetrics) RecordResolution(behavior, scope string, duration time.Duration) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(behavior, scope).Observe(duration.Seconds())
}

func (m *behaviorMetrics) RecordCacheHit(behavior string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(behavior).Inc()
}

func (m *behaviorMetrics) RecordCacheMiss(behavior string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(behavior).Inc()
}

func (m *behaviorMetrics) SetRegistryGeneration(gen int64) {
	if m == nil {
		return
	}
	m.registryGenGauge.Set(float64(gen))
}
