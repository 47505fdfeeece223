// Package metrics exports Prometheus metrics about signals.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AnatoleLucet/sigstream"
)

// Collector holds the signal metrics, labeled by signal name.
type Collector struct {
	emissions    *prometheus.CounterVec
	replays      *prometheus.CounterVec
	lastEmission *prometheus.GaugeVec
	coalesced    *prometheus.HistogramVec
}

// NewCollector creates the signal metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		emissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sigstream",
			Subsystem: "signal",
			Name:      "emissions_total",
			Help:      "Total number of live emissions observed on a signal",
		}, []string{"signal"}),
		replays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sigstream",
			Subsystem: "signal",
			Name:      "replays_total",
			Help:      "Total number of replayed sequence items observed on a signal",
		}, []string{"signal"}),
		lastEmission: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sigstream",
			Subsystem: "signal",
			Name:      "last_emission_timestamp_seconds",
			Help:      "Unix time of the last live emission observed on a signal",
		}, []string{"signal"}),
		coalesced: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sigstream",
			Subsystem: "throttle",
			Name:      "coalesced_values",
			Help:      "Number of values received by a throttle window that propagated",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}, []string{"signal"}),
	}

	for _, collector := range []prometheus.Collector{c.emissions, c.replays, c.lastEmission, c.coalesced} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Instrument subscribes to s and records its emissions under name.
func Instrument[T any](c *Collector, name string, s *sigstream.Signal[T]) *sigstream.Subscription {
	emissions := c.emissions.WithLabelValues(name)
	replays := c.replays.WithLabelValues(name)
	last := c.lastEmission.WithLabelValues(name)

	return s.SubscribeEmission(func(e sigstream.Emission[T]) {
		if e.IsReplay() {
			replays.Inc()
			return
		}

		emissions.Inc()
		last.Set(float64(e.Time.UnixNano()) / 1e9)
	})
}

// ThrottleOption records the coalescing of a throttled signal under name.
func (c *Collector) ThrottleOption(name string) sigstream.ThrottleOption {
	observer := c.coalesced.WithLabelValues(name)

	return sigstream.WithOnFlush(func(coalesced int) {
		observer.Observe(float64(coalesced))
	})
}
