package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

type searcherFake struct {
	bySite  map[string][]domain.SearchCandidate
	errSite map[string]error
	queries []string
}

func (f *searcherFake) Search(_ context.Context, query, _ string, _ int) ([]domain.SearchCandidate, error) {
	f.queries = append(f.queries, query)
	site := strings.TrimPrefix(strings.Fields(query)[0], "site:")
	if err := f.errSite[site]; err != nil {
		return nil, err
	}
	return f.bySite[site], nil
}

type storeFake struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	putErr  error
	flushes int
}

func newStoreFake() *storeFake {
	return &storeFake{data: map[string]string{}}
}

func (s *storeFake) Get(_ context.Context, url string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	text, ok := s.data[url]
	return text, ok, nil
}

func (s *storeFake) Put(_ context.Context, url, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.data[url] = text
	return nil
}

func (s *storeFake) Flush(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

func (s *storeFake) Close() error { return nil }

type extractorFake struct {
	texts map[string]string
	calls map[string]int
}

func (f *extractorFake) Extract(_ context.Context, url string, _ int) string {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[url]++
	return f.texts[url]
}

var embedVocabulary = []string{"deductible", "molina", "silver", "hmo", "2025", "florida"}

// keywordEmbedderFake counts vocabulary hits per text plus a small constant dimension so
// that no vector is all zeros.
type keywordEmbedderFake struct {
	calls    int
	err      error
	truncate bool
	// rejectBlank mimics hosted APIs that answer 400 to an empty input.
	rejectBlank bool
}

func (f *keywordEmbedderFake) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.rejectBlank {
		for _, text := range texts {
			if strings.TrimSpace(text) == "" {
				return nil, errors.New("400: input must not be empty")
			}
		}
	}
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		tokens := splitAlphaNumLower(text)
		vec := make([]float32, len(embedVocabulary)+1)
		for _, tok := range tokens {
			for i, word := range embedVocabulary {
				if tok == word {
					vec[i]++
				}
			}
		}
		vec[len(embedVocabulary)] = 0.1
		out = append(out, vec)
	}
	if f.truncate && len(out) > 1 {
		out = out[:len(out)-1]
	}
	return out, nil
}

type synthesizerFake struct {
	contexts []string
	err      error
	onAsk    func()
}

func (f *synthesizerFake) Ask(_ context.Context, contextText, question string) (string, error) {
	f.contexts = append(f.contexts, contextText)
	if f.onAsk != nil {
		f.onAsk()
	}
	if f.err != nil {
		return "", f.err
	}
	if contextText == "" {
		return "general answer: " + question, nil
	}
	return "grounded answer", nil
}

type observerFake struct {
	mu       sync.Mutex
	stages   []domain.PipelineState
	hits     int
	misses   int
	attempts map[string]bool
	runs     []domain.PipelineState
}

func (o *observerFake) ObserveStage(stage domain.PipelineState, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stages = append(o.stages, stage)
}

func (o *observerFake) ObserveSearchAttempt(site string, found bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attempts == nil {
		o.attempts = map[string]bool{}
	}
	o.attempts[site] = found
}

func (o *observerFake) ObserveCacheLookup(hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func (o *observerFake) ObserveRun(state domain.PipelineState, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs = append(o.runs, state)
}

var errFake = errors.New("fake failure")

func testDomainMap() domain.DomainMap {
	return domain.NewDomainMap([]domain.InsurerDomains{
		{Name: "Molina", Domains: []string{"molinahealthcare.com", "molinamarketplace.com"}},
		{Name: "Ambetter", Domains: []string{"ambetterhealth.com"}},
		{Name: "Florida Blue", Domains: []string{"floridablue.com"}},
	})
}

func mustCandidate(url, title, description string, snippets ...string) domain.SearchCandidate {
	c, err := domain.NewSearchCandidate(url, title, description, snippets)
	if err != nil {
		panic(err)
	}
	return c
}
