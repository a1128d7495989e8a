package registry

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the prometheus collectors the cache reports into. The
// embedding application decides where they are registered; a nil Metrics
// in Options disables reporting entirely.
type Metrics struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Evictions prometheus.Counter
	Entries   prometheus.Gauge
}

// NewMetrics builds the cache collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shaderstudio_registry_hits_total",
			Help: "Number of cache lookups served from an unexpired entry.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shaderstudio_registry_misses_total",
			Help: "Number of cache lookups for absent or expired entries.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shaderstudio_registry_evictions_total",
			Help: "Number of entries removed by expiry, capacity pressure or invalidation.",
		}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shaderstudio_registry_entries",
			Help: "Current number of cached modules.",
		}),
	}
	reg.MustRegister(m.Hits, m.Misses, m.Evictions, m.Entries)
	return m
}
