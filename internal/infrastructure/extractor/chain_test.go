package extractor

import (
	"context"
	"testing"
)

type staticExtractor struct {
	text  string
	calls int
}

func (s *staticExtractor) Extract(context.Context, string, int) string {
	s.calls++
	return s.text
}

func TestChainReturnsFirstNonBlank(t *testing.T) {
	first := &staticExtractor{text: "  "}
	second := &staticExtractor{text: "pdf text"}
	third := &staticExtractor{text: "unused"}

	chain := NewChain().With("contents", first).With("pdf", second).With("other", third)
	if got := chain.Extract(context.Background(), "u", 100); got != "pdf text" {
		t.Fatalf("unexpected text %q", got)
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 0 {
		t.Fatalf("unexpected calls: %d %d %d", first.calls, second.calls, third.calls)
	}
}

func TestChainAllEmpty(t *testing.T) {
	chain := NewChain().With("a", &staticExtractor{}).With("nil", nil)
	if chain.Len() != 1 {
		t.Fatalf("expected nil extractor to be skipped")
	}
	if got := chain.Extract(context.Background(), "u", 100); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
