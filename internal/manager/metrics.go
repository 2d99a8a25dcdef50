package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "co2d",
			Subsystem: "predictor",
			Name:      "predictions_total",
			Help:      "Predictions by outcome",
		},
		[]string{"outcome"},
	)

	predictionCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "co2d",
			Subsystem: "predictor",
			Name:      "cache_hits_total",
			Help:      "Predictions answered from the cache",
		},
	)

	artifactLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "co2d",
			Subsystem: "artifacts",
			Name:      "loads_total",
			Help:      "Artifact set loads by result",
		},
		[]string{"result"},
	)

	artifactInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "co2d",
			Subsystem: "artifacts",
			Name:      "info",
			Help:      "Currently served artifact set (value is always 1)",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, predictionCacheHits, artifactLoadsTotal, artifactInfo)
}
