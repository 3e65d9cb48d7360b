// Package metrics provides Prometheus metrics for the ratelimit module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for rate limit checks.
type Metrics struct {
	Checks     *prometheus.CounterVec
	Rejections prometheus.Counter
}

// New registers the ratelimit collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "subguard_ratelimit_checks_total",
			Help: "Rate limit checks by outcome.",
		}, []string{"outcome"}),
		Rejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "subguard_ratelimit_rejections_total",
			Help: "Provisioning attempts rejected by the rate limiter.",
		}),
	}
}

// RecordCheck counts one check with its outcome ("allowed" or "rejected").
func (m *Metrics) RecordCheck(outcome string) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(outcome).Inc()
	if outcome == "rejected" {
		m.Rejections.Inc()
	}
}
