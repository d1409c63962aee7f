package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records upstream submits and cart commit outcomes.
type StorefrontMetrics struct {
	upstreamDuration  *prometheus.HistogramVec
	upstreamResponses *prometheus.CounterVec
	commits           *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of requests to the legacy storefront endpoints in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	responses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_responses_total",
		Help: "Upstream responses grouped by matched outcome.",
	}, []string{"op", "outcome"})
	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_commits_total",
		Help: "Quantity field commits grouped by result.",
	}, []string{"result"})
	reg.MustRegister(duration, responses, commits)
	return &StorefrontMetrics{
		upstreamDuration:  duration,
		upstreamResponses: responses,
		commits:           commits,
	}
}

// ObserveUpstream records one upstream round trip.
func (m *StorefrontMetrics) ObserveUpstream(op, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	if m.upstreamDuration != nil {
		m.upstreamDuration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
	}
	if m.upstreamResponses != nil {
		m.upstreamResponses.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
	}
}

// IncCommit increments the commit counter for the given result.
func (m *StorefrontMetrics) IncCommit(result string) {
	if m == nil || m.commits == nil {
		return
	}
	m.commits.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
