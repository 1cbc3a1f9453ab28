package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	askTotal    *prometheus.CounterVec
	askDuration *prometheus.HistogramVec
	askInFlight prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	askTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "ask_total",
			Help:      "Total ask requests handled by status.",
		},
		[]string{"service", "status"},
	)
	askDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "ask_duration_seconds",
			Help:      "Ask request duration in seconds by status.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
		},
		[]string{"service", "status"},
	)
	askInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "ask_in_flight",
			Help:      "Number of in-flight ask requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(askTotal, askDuration, askInFlight)

	return &WorkerMetrics{
		registry:    registry,
		askTotal:    askTotal,
		askDuration: askDuration,
		askInFlight: askInFlight,
	}
}

func (m *WorkerMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartAsk() {
	m.askInFlight.Inc()
}

func (m *WorkerMetrics) FinishAsk(service string, duration time.Duration, err error) {
	m.askInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.askTotal.WithLabelValues(service, status).Inc()
	m.askDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}
