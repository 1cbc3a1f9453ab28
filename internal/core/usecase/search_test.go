package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

func TestSearchUseCaseFallsBackInOrder(t *testing.T) {
	searcher := &searcherFake{
		bySite: map[string][]domain.SearchCandidate{
			"cms.gov": {mustCandidate("https://www.cms.gov/a.pdf", "CMS", "")},
		},
		errSite: map[string]error{"healthcare.gov": errFake},
	}
	observer := &observerFake{}
	uc := NewSearchUseCase(NewQueryBuilder(testDomainMap(), nil, ""), searcher, "", 0, observer)

	outcome, err := uc.SearchPlan(context.Background(), uc.builder.Plan("Molina Silver 2025"))
	if err != nil {
		t.Fatalf("SearchPlan() error = %v", err)
	}
	if outcome.Domain != "cms.gov" || len(outcome.Candidates) != 1 {
		t.Fatalf("expected cms.gov hit, got %+v", outcome)
	}
	if len(searcher.queries) != 3 {
		t.Fatalf("expected 3 search calls, got %v", searcher.queries)
	}
	wantPrefix := []string{"site:molinahealthcare.com", "site:healthcare.gov", "site:cms.gov"}
	for i, p := range wantPrefix {
		if searcher.queries[i][:len(p)] != p {
			t.Fatalf("query %d: expected prefix %q, got %q", i, p, searcher.queries[i])
		}
	}
	if outcome.Attempts[1].Error == "" {
		t.Fatalf("expected failed attempt to be recorded")
	}
	if !observer.attempts["cms.gov"] || observer.attempts["healthcare.gov"] {
		t.Fatalf("unexpected observed attempts: %v", observer.attempts)
	}
}

func TestSearchUseCaseStopsAtFirstHit(t *testing.T) {
	searcher := &searcherFake{
		bySite: map[string][]domain.SearchCandidate{
			"molinahealthcare.com": {mustCandidate("https://molinahealthcare.com/x.pdf", "x", "")},
			"healthcare.gov":       {mustCandidate("https://healthcare.gov/y.pdf", "y", "")},
		},
	}
	uc := NewSearchUseCase(NewQueryBuilder(testDomainMap(), nil, ""), searcher, "US", 10, nil)

	query, candidates, err := uc.Search(context.Background(), "Molina deductible")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(searcher.queries) != 1 {
		t.Fatalf("expected a single search call, got %d", len(searcher.queries))
	}
	if query != searcher.queries[0] || len(candidates) != 1 {
		t.Fatalf("unexpected result query=%q candidates=%d", query, len(candidates))
	}
}

func TestSearchUseCaseExhaustedIsNotAnError(t *testing.T) {
	searcher := &searcherFake{}
	uc := NewSearchUseCase(NewQueryBuilder(testDomainMap(), nil, ""), searcher, "US", 10, nil)

	query, candidates, err := uc.Search(context.Background(), "nothing matches")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if query != "" || len(candidates) != 0 {
		t.Fatalf("expected empty outcome, got %q %v", query, candidates)
	}
	if len(searcher.queries) != 2 {
		t.Fatalf("expected healthcare.gov and cms.gov to be tried, got %v", searcher.queries)
	}
}

func TestSearchUseCaseContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewSearchUseCase(NewQueryBuilder(testDomainMap(), nil, ""), &searcherFake{}, "US", 10, nil)
	_, _, err := uc.Search(ctx, "Molina")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
