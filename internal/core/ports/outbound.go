package ports

import (
	"context"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

// WebSearcher runs a web search and returns PDF candidates only.
type WebSearcher interface {
	Search(ctx context.Context, query, country string, count int) ([]domain.SearchCandidate, error)
}

// ContentExtractor returns the extracted text of a document URL, truncated to maxChars.
// An empty string signals extraction failure.
type ContentExtractor interface {
	Extract(ctx context.Context, url string, maxChars int) string
}

// Embedder maps texts to fixed-dimension vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// AnswerSynthesizer produces the final answer. An empty context must still yield a
// best-effort answer.
type AnswerSynthesizer interface {
	Ask(ctx context.Context, contextText, question string) (string, error)
}

// ContentStore persists extracted document text keyed by URL.
type ContentStore interface {
	Get(ctx context.Context, url string) (string, bool, error)
	Put(ctx context.Context, url, text string) error
	Flush(ctx context.Context) error
	Close() error
}
