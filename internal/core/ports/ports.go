package ports

import (
	"time"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

// PipelineObserver receives pipeline events for metrics.
type PipelineObserver interface {
	ObserveStage(stage domain.PipelineState, d time.Duration)
	ObserveSearchAttempt(site string, found bool)
	ObserveCacheLookup(hit bool)
	ObserveRun(state domain.PipelineState, err error)
}

type NopObserver struct{}

func (NopObserver) ObserveStage(domain.PipelineState, time.Duration) {}
func (NopObserver) ObserveSearchAttempt(string, bool)                {}
func (NopObserver) ObserveCacheLookup(bool)                          {}
func (NopObserver) ObserveRun(domain.PipelineState, error)           {}
