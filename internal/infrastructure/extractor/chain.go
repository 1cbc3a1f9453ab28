package extractor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/ports"
)

type namedExtractor struct {
	name      string
	extractor ports.ContentExtractor
}

// Chain tries extractors in order and returns the first non-blank text.
type Chain struct {
	steps []namedExtractor
}

func NewChain() *Chain {
	return &Chain{}
}

func (c *Chain) With(name string, extractor ports.ContentExtractor) *Chain {
	if extractor != nil {
		c.steps = append(c.steps, namedExtractor{name: name, extractor: extractor})
	}
	return c
}

func (c *Chain) Len() int {
	return len(c.steps)
}

func (c *Chain) Extract(ctx context.Context, url string, maxChars int) string {
	for _, step := range c.steps {
		if ctx.Err() != nil {
			return ""
		}
		text := step.extractor.Extract(ctx, url, maxChars)
		if strings.TrimSpace(text) != "" {
			slog.Debug("extractor_hit", "extractor", step.name, "url", url)
			return text
		}
		slog.Info("extractor_miss", "extractor", step.name, "url", url)
	}
	return ""
}
