package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the service's Prometheus collectors. The correction core does
// not record anything itself; everything is counted here at the edge.
type Metrics struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	tokens     *prometheus.CounterVec
	modelWords prometheus.Gauge
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hindispell_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hindispell_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}, []string{"route"}),
		tokens: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hindispell_tokens_total",
			Help: "Word tokens seen by outcome: known, corrected or uncorrected",
		}, []string{"outcome"}),
		modelWords: f.NewGauge(prometheus.GaugeOpts{
			Name: "hindispell_model_words",
			Help: "Distinct words in the loaded frequency index",
		}),
	}
}
