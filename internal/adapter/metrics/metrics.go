package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics collects the api-mode counters: request volume and
// latency per handler, plus a dedicated counter for claim conflicts
// (lost races are expected and worth watching as a rate).
type ServerMetrics struct {
	Requests       *prometheus.CounterVec
	LatencyMS      *prometheus.HistogramVec
	ClaimConflicts prometheus.Counter
}

func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cafeops",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cafeops",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"handler"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cafeops",
		Subsystem: service,
		Name:      "claim_conflicts_total",
		Help:      "Total number of claim attempts lost to a concurrent claim.",
	})

	prometheus.MustRegister(requests, latency, conflicts)
	return &ServerMetrics{Requests: requests, LatencyMS: latency, ClaimConflicts: conflicts}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
