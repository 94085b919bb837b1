package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rise"

var (
	RequestsHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sdk_requests",
			Help:      "Time taken to process requests to external services",
			Buckets:   []float64{.005, .01, .025, .05, .075, .1, .15, .2, .25, .5, 1, 2.5, 5, 10, 15, 30, 60},
		},
		[]string{"client", "method", "error"},
	)

	HandlersHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_handlers",
			Help:      "Time taken to serve incoming http requests",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"route", "code"},
	)

	AnalysisStatusCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_status_transitions",
			Help:      "Number of startup analysis status transitions",
		},
		[]string{"status"},
	)

	RealtimeClientsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_clients",
			Help:      "Number of connected realtime clients",
		},
	)
)

func CollectRequestsMetric(client, method string, err error, start time.Time) {
	RequestsHistogram.
		WithLabelValues(client, method, errLabelValue(err)).
		Observe(time.Since(start).Seconds())
}

func CollectHandlerMetric(route string, code int, start time.Time) {
	HandlersHistogram.
		WithLabelValues(route, statusLabelValue(code)).
		Observe(time.Since(start).Seconds())
}

func CollectAnalysisStatus(status string) {
	AnalysisStatusCounter.WithLabelValues(status).Inc()
}

// errLabelValue returns string representation of error label value
func errLabelValue(err error) string {
	if err != nil {
		return "true"
	}
	return "false"
}

func statusLabelValue(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
