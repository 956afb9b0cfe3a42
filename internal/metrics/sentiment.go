package metrics

import "github.com/prometheus/client_golang/prometheus"

// Sentiment Prometheus metrics.
var (
	SentimentPredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reviewdex",
			Name:      "sentiment_predictions_total",
			Help:      "Total number of sentiment predictions by label",
		},
		[]string{"label"},
	)

	SentimentInferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "reviewdex",
			Name:      "sentiment_inference_duration_seconds",
			Help:      "Sentiment inference duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	SentimentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reviewdex",
			Name:      "sentiment_cache_total",
			Help:      "Sentiment memo cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ModelInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "reviewdex",
			Name:      "sentiment_model_info",
			Help:      "Loaded sentiment model; value is the feature space size",
		},
		[]string{"classes"},
	)
)

var sentimentMetricsRegistered bool

// RegisterSentimentMetrics registers Prometheus sentiment metrics. Must be called once from main.
func RegisterSentimentMetrics() {
	if sentimentMetricsRegistered {
		return
	}
	prometheus.MustRegister(SentimentPredictionsTotal)
	prometheus.MustRegister(SentimentInferenceDuration)
	prometheus.MustRegister(SentimentCacheTotal)
	prometheus.MustRegister(ModelInfo)
	sentimentMetricsRegistered = true
}
