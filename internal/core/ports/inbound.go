package ports

import (
	"context"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

// QuestionAnswerer is the inbound contract for the retrieval-and-ranking pipeline.
type QuestionAnswerer interface {
	Run(ctx context.Context, question string) (*domain.PipelineResult, error)
}

// QueryPlanner exposes query construction without running a search.
type QueryPlanner interface {
	Plan(question string) domain.QueryPlan
}
