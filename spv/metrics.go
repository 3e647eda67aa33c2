package spv

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const MetricsSubsytem = "spv"

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Height of the best canonical header.
	BestHeight metrics.Gauge
	// Number of headers admitted.
	HeadersSubmitted metrics.Counter
	// Number of header submissions rejected, by reason.
	HeadersRejected metrics.Counter
	// Number of admissions that rebound previously canonical heights.
	Reorgs metrics.Counter
	// Histogram of rebind depths, in heights.
	ReorgDepth metrics.Histogram
	// Number of completed verifications, by kind and result.
	Verifications metrics.Counter
}

// PrometheusMetrics returns Metrics build using Prometheus client library.
func PrometheusMetrics(namespace string) *Metrics {
	return &Metrics{
		BestHeight: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsytem,
			Name:      "best_height",
			Help:      "Height of the best canonical header.",
		}, []string{}),
		HeadersSubmitted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsytem,
			Name:      "headers_submitted",
			Help:      "Number of headers admitted.",
		}, []string{}),
		HeadersRejected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsytem,
			Name:      "headers_rejected",
			Help:      "Number of header submissions rejected, by reason.",
		}, []string{"reason"}),
		Reorgs: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsytem,
			Name:      "reorgs",
			Help:      "Number of admissions that rebound previously canonical heights.",
		}, []string{}),
		ReorgDepth: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsytem,
			Name:      "reorg_depth",
			Help:      "Rebind depths, in heights.",
			Buckets:   stdprometheus.ExponentialBuckets(1, 2, 8),
		}, []string{}),
		Verifications: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsytem,
			Name:      "verifications",
			Help:      "Number of completed verifications, by kind and result.",
		}, []string{"kind", "result"}),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		BestHeight:       discard.NewGauge(),
		HeadersSubmitted: discard.NewCounter(),
		HeadersRejected:  discard.NewCounter(),
		Reorgs:           discard.NewCounter(),
		ReorgDepth:       discard.NewHistogram(),
		Verifications:    discard.NewCounter(),
	}
}
