package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

func init() {
	shelfmetrics.RegisterConfigMetricsConstructor(func() shelfmetrics.ConfigMetrics {
		return newConfigMetrics()
	})
}

type configMetrics struct {
	reloadDur  *prometheus.HistogramVec
	reloadFail *prometheus.CounterVec
	generation *prometheus.GaugeVec
}

func newConfigMetrics() *configMetrics {
	if !shelfmetrics.IsEnabled() {
		return nil
	}

	reg := shelfmetrics.GetRegistry()

	return &configMetrics{
		reloadDur: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelf_config_reload_seconds",
				Help:    "Config reload latency by source",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		reloadFail: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_config_reload_failures_total",
				Help: "Config reload attempts rejected by validation or the source",
			},
			[]string{"source"},
		),
		generation: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shelf_config_generation",
				Help: "Currently active config generation by source",
			},
			[]string{"source"},
		),
	}
}

func (m *configMetrics) RecordReload(source string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.reloadDur.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		m.reloadFail.WithLabelValues(source).Inc()
	}
}

func (m *configMetrics) SetGeneration(source string, gen int64) {
	if m == nil {
		return
	}
	m.generation.WithLabelValues(source).Set(float64(gen))
}
