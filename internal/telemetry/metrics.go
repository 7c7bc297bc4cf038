package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the cart funnel. Counters are labeled
// by commit mode so add-to-cart and buy-now traffic can be segmented.
type Metrics struct {
	// Commit outcomes
	LinesCreated     prometheus.Counter
	QuantityMerges   prometheus.Counter
	CheckoutStaged   prometheus.Counter
	CommitRejected   *prometheus.CounterVec

	// Line value at add-time, in whole rupiah
	LineValue prometheus.Histogram
}

// NewMetrics creates and registers all cart metrics on the default registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "etalase"
	}

	subsystem := "cart"

	return &Metrics{
		LinesCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "lines_created_total",
				Help:      "Total new cart lines appended",
			},
		),
		QuantityMerges: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quantity_merges_total",
				Help:      "Total merges into an existing cart line",
			},
		),
		CheckoutStaged: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_staged_total",
				Help:      "Total buy-now payloads staged for checkout",
			},
		),
		CommitRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commit_rejected_total",
				Help:      "Total rejected commits by error code",
			},
			[]string{"code"},
		),
		LineValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "line_value_rupiah",
				Help:      "Line subtotal at add-time in whole rupiah",
				Buckets:   prometheus.ExponentialBuckets(10000, 4, 8),
			},
		),
	}
}
