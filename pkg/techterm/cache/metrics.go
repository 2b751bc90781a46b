package cache

import "github.com/prometheus/client_golang/prometheus"

// Lookup and store outcomes used as the result label
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultSkip  = "skip"
	ResultError = "error"
	ResultOK    = "ok"
)

// Metrics holds the cache collectors
type Metrics struct {
	Lookups *prometheus.CounterVec
	Stores  *prometheus.CounterVec
}

// NewMetrics creates the cache collectors and registers them on reg when it is not nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techterm_cache_lookups_total",
				Help: "Cache lookups by layer and result (hit, miss, skip, error).",
			},
			[]string{"layer", "result"},
		),
		Stores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techterm_cache_stores_total",
				Help: "Cache stores by layer and result (ok, error).",
			},
			[]string{"layer", "result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Lookups, m.Stores)
	}
	return m
}

func (m *Metrics) lookup(layer, result string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(layer, result).Inc()
}

func (m *Metrics) store(layer, result string) {
	if m == nil {
		return
	}
	m.Stores.WithLabelValues(layer, result).Inc()
}
