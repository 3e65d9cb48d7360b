// Package metrics provides Prometheus metrics for the provisioning pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for provisioning outcomes.
type Metrics struct {
	Provisions  *prometheus.CounterVec
	Duration    prometheus.Histogram
	Revocations prometheus.Counter
}

// New registers the provisioning collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Provisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "subguard_provisions_total",
			Help: "Provisioning attempts by outcome.",
		}, []string{"outcome"}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "subguard_provision_duration_seconds",
			Help:    "End-to-end provisioning pipeline duration.",
			Buckets: prometheus.DefBuckets,
		}),
		Revocations: factory.NewCounter(prometheus.CounterOpts{
			Name: "subguard_revocations_total",
			Help: "Subdomains revoked.",
		}),
	}
}

// RecordProvision counts one pipeline run with its outcome label.
func (m *Metrics) RecordProvision(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Provisions.WithLabelValues(outcome).Inc()
	m.Duration.Observe(elapsed.Seconds())
}

// RecordRevocation counts one successful revocation.
func (m *Metrics) RecordRevocation() {
	if m == nil {
		return
	}
	m.Revocations.Inc()
}
