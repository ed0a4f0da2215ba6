package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PurchaseMetrics records checkout outcomes.
type PurchaseMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewPurchaseMetrics registers the purchase metrics on the provided registerer.
func NewPurchaseMetrics(reg prometheus.Registerer) *PurchaseMetrics {
	if reg == nil {
		return &PurchaseMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "purchase_duration_seconds",
		Help:    "Duration of purchase submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purchase_total",
		Help: "Purchase submissions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(duration, outcomes)
	return &PurchaseMetrics{
		duration: duration,
		outcomes: outcomes,
	}
}

// Observe records one submission with its outcome and duration.
func (p *PurchaseMetrics) Observe(outcome string, duration time.Duration) {
	if p == nil || p.outcomes == nil {
		return
	}
	label := normalizeLabel(outcome)
	p.outcomes.WithLabelValues(label).Inc()
	p.duration.WithLabelValues(label).Observe(duration.Seconds())
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
