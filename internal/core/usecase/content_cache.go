package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/ports"
)

const DefaultContentMaxChars = 20000

// FetchFunc extracts text for url; an empty result means the fetch failed.
type FetchFunc func(ctx context.Context, url string, maxChars int) string

// ContentCache is a fetch-or-return-cached view over a ContentStore. Only non-blank text
// is stored, so failed extractions are retried on the next lookup.
type ContentCache struct {
	store    ports.ContentStore
	observer ports.PipelineObserver
}

func NewContentCache(store ports.ContentStore, observer ports.PipelineObserver) *ContentCache {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &ContentCache{store: store, observer: observer}
}

func (c *ContentCache) GetOrFetch(ctx context.Context, url string, fetch FetchFunc, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = DefaultContentMaxChars
	}

	cached, ok, err := c.store.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("read content cache: %w", err)
	}
	if ok && strings.TrimSpace(cached) != "" {
		c.observer.ObserveCacheLookup(true)
		slog.Debug("cache_hit", "url", url)
		return cached, nil
	}

	c.observer.ObserveCacheLookup(false)
	slog.Info("cache_fetch", "url", url)
	text := fetch(ctx, url, maxChars)
	if strings.TrimSpace(text) == "" {
		slog.Warn("content_extraction_empty", "url", url)
		return text, nil
	}

	if err := c.store.Put(ctx, url, text); err != nil {
		return "", fmt.Errorf("write content cache: %w", err)
	}
	if err := c.store.Flush(ctx); err != nil {
		return "", fmt.Errorf("flush content cache: %w", err)
	}
	return text, nil
}

// FetchFromExtractor adapts a ContentExtractor to a FetchFunc.
func FetchFromExtractor(extractor ports.ContentExtractor) FetchFunc {
	return func(ctx context.Context, url string, maxChars int) string {
		return extractor.Extract(ctx, url, maxChars)
	}
}
