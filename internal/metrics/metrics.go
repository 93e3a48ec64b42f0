// Package metrics provides Prometheus metrics for environapi.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "environapi"

var (
	// GenerateTotal counts trend table generations.
	GenerateTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generate_total",
			Help:      "Total number of trend tables generated",
		},
	)

	// GenerateDuration measures trend table generation time.
	GenerateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Duration of trend table generation in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// GeneratedTicks observes the number of ticks per generated table.
	GeneratedTicks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generated_ticks",
			Help:      "Distribution of ticks per generated table",
			Buckets:   []float64{0, 96, 192, 672, 2880, 8784, 35136},
		},
	)

	// SummariesTotal counts summaries by metric and outcome.
	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Total number of summaries computed",
		},
		[]string{"metric", "status"},
	)

	// RefreshToggles counts refresh button presses.
	RefreshToggles = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_toggles_total",
			Help:      "Total number of refresh toggles",
		},
	)

	// HTTPRequestsTotal counts HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures HTTP request handling time.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
