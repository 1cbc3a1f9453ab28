package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

// PipelineMetrics implements ports.PipelineObserver on Prometheus collectors.
type PipelineMetrics struct {
	service string

	runsTotal      *prometheus.CounterVec
	stageDuration  *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	searchAttempts *prometheus.CounterVec
}

func NewPipelineMetrics(service string, registerer prometheus.Registerer) *PipelineMetrics {
	runsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total pipeline runs by final state and outcome.",
		},
		[]string{"service", "state", "outcome"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"service", "stage"},
	)
	cacheLookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content_cache",
			Name:      "lookups_total",
			Help:      "Content cache lookups by result.",
		},
		[]string{"service", "result"},
	)
	searchAttempts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "attempts_total",
			Help:      "Site-scoped search attempts by domain and result.",
		},
		[]string{"service", "domain", "result"},
	)

	registerer.MustRegister(runsTotal, stageDuration, cacheLookups, searchAttempts)

	return &PipelineMetrics{
		service:        service,
		runsTotal:      runsTotal,
		stageDuration:  stageDuration,
		cacheLookups:   cacheLookups,
		searchAttempts: searchAttempts,
	}
}

func (m *PipelineMetrics) ObserveStage(stage domain.PipelineState, d time.Duration) {
	m.stageDuration.WithLabelValues(m.service, string(stage)).Observe(d.Seconds())
}

func (m *PipelineMetrics) ObserveSearchAttempt(site string, found bool) {
	result := "empty"
	if found {
		result = "found"
	}
	if site == "" {
		site = "unknown"
	}
	m.searchAttempts.WithLabelValues(m.service, site, result).Inc()
}

func (m *PipelineMetrics) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(m.service, result).Inc()
}

func (m *PipelineMetrics) ObserveRun(state domain.PipelineState, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	if state == "" {
		state = "unknown"
	}
	m.runsTotal.WithLabelValues(m.service, string(state), outcome).Inc()
}
