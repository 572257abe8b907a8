package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the serve surface.
type Metrics struct {
	ResolvesTotal   *prometheus.CounterVec
	ResolveDuration prometheus.Histogram
	LastSync        prometheus.Gauge
}

// NewMetrics creates and registers the collectors on the registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResolvesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canisterenv",
			Name:      "resolves_total",
			Help:      "Resolution attempts by outcome.",
		}, []string{"outcome"}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "canisterenv",
			Name:      "resolve_duration_seconds",
			Help:      "Time spent resolving canister IDs.",
			Buckets:   prometheus.DefBuckets,
		}),
		LastSync: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "canisterenv",
			Name:      "last_sync_timestamp_seconds",
			Help:      "Unix time of the last successful sync.",
		}),
	}

	reg.MustRegister(m.ResolvesTotal, m.ResolveDuration, m.LastSync)

	return m
}

// Observe records one resolution attempt with its measured duration.
// Failed attempts are counted but contribute no duration sample, so
// the histogram only measures completed resolutions.
func (m *Metrics) Observe(elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	if err != nil {
		m.ResolvesTotal.WithLabelValues("error").Inc()
		return
	}

	m.ResolvesTotal.WithLabelValues("ok").Inc()
	m.ResolveDuration.Observe(elapsed.Seconds())
	m.LastSync.SetToCurrentTime()
}

// ObserveResolve records one resolution attempt timed from start.
func (m *Metrics) ObserveResolve(start time.Time, err error) {
	m.Observe(time.Since(start), err)
}
