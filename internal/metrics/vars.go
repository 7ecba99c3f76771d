package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PoolsAssessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dexdepth_pools_assessed_total",
		Help: "Number of pools run through depth assessment",
	})

	QuoteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dexdepth_quote_failures_total",
		Help: "Number of oracle probes that failed",
	})

	QuoteLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dexdepth_quote_latency_seconds",
		Help:    "Time to obtain one oracle quote",
		Buckets: prometheus.DefBuckets,
	})

	Verdicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dexdepth_verdicts_total",
		Help: "Assessment verdicts by category",
	}, []string{"category"})
)

func init() {
	prometheus.MustRegister(
		PoolsAssessed,
		QuoteFailures,
		QuoteLatency,
		Verdicts,
	)
}
