package usecase

import (
	"context"
	"log/slog"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/ports"
)

const (
	defaultSearchCountry = "US"
	defaultSearchCount   = 10
)

type SearchAttempt struct {
	Domain     string `json:"domain"`
	Query      string `json:"query"`
	Candidates int    `json:"candidates"`
	Error      string `json:"error,omitempty"`
}

// SearchOutcome is the result of walking the fallback domain chain. Candidates is empty
// when every domain came back empty.
type SearchOutcome struct {
	Query      string                   `json:"query"`
	Domain     string                   `json:"domain"`
	Candidates []domain.SearchCandidate `json:"candidates"`
	Attempts   []SearchAttempt          `json:"attempts"`
}

type SearchUseCase struct {
	builder  *QueryBuilder
	searcher ports.WebSearcher
	country  string
	count    int
	observer ports.PipelineObserver
}

func NewSearchUseCase(
	builder *QueryBuilder,
	searcher ports.WebSearcher,
	country string,
	count int,
	observer ports.PipelineObserver,
) *SearchUseCase {
	if country == "" {
		country = defaultSearchCountry
	}
	if count <= 0 {
		count = defaultSearchCount
	}
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &SearchUseCase{
		builder:  builder,
		searcher: searcher,
		country:  country,
		count:    count,
		observer: observer,
	}
}

// Search builds the query plan for question and returns the first non-empty result set.
// The returned query is empty when nothing was found.
func (uc *SearchUseCase) Search(ctx context.Context, question string) (string, []domain.SearchCandidate, error) {
	outcome, err := uc.SearchPlan(ctx, uc.builder.Plan(question))
	if err != nil {
		return "", nil, err
	}
	return outcome.Query, outcome.Candidates, nil
}

// SearchPlan tries the primary domain and then each fallback in order. Collaborator
// errors count as empty results; only context cancellation is returned.
func (uc *SearchUseCase) SearchPlan(ctx context.Context, plan domain.QueryPlan) (SearchOutcome, error) {
	var outcome SearchOutcome
	for _, site := range plan.Domains() {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		query := plan.QueryFor(site)
		attempt := SearchAttempt{Domain: site, Query: query}

		results, err := uc.searcher.Search(ctx, query, uc.country, uc.count)
		if err != nil {
			attempt.Error = err.Error()
			slog.Warn("search_attempt_failed", "domain", site, "query", query, "error", err)
			results = nil
		}
		attempt.Candidates = len(results)
		outcome.Attempts = append(outcome.Attempts, attempt)
		uc.observer.ObserveSearchAttempt(site, len(results) > 0)

		if len(results) > 0 {
			slog.Info("search_attempt", "domain", site, "query", query, "candidates", len(results))
			outcome.Query = query
			outcome.Domain = site
			outcome.Candidates = results
			return outcome, nil
		}
		slog.Info("search_attempt", "domain", site, "query", query, "candidates", 0)
	}

	slog.Info("search_exhausted", "domains", len(outcome.Attempts))
	return outcome, nil
}
