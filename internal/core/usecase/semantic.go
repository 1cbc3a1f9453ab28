package usecase

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/ports"
)

const cosineEpsilon = 1e-9

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	escapedNewline    = regexp.MustCompile(`\\[nrt]`)
	tablePipePattern  = regexp.MustCompile(`\|+`)
	separatorPattern  = regexp.MustCompile(`[-=_:]{3,}`)
	repeatedFree      = regexp.MustCompile(`(?i)\bfree\b(?:\s+\bfree\b)+`)
	disallowedPattern = regexp.MustCompile(`[^A-Za-z0-9$%.,:;()/\- ]+`)
	multiSpacePattern = regexp.MustCompile(`\s{2,}`)
)

// CleanDocumentText strips extraction noise (HTML, markdown tables, escaped newlines,
// repeated "Free" cells) so that embeddings see prose only.
func CleanDocumentText(text string) string {
	if text == "" {
		return ""
	}
	text = htmlTagPattern.ReplaceAllString(text, " ")
	text = escapedNewline.ReplaceAllString(text, " ")
	text = tablePipePattern.ReplaceAllString(text, " ")
	text = separatorPattern.ReplaceAllString(text, " ")
	text = repeatedFree.ReplaceAllString(text, "Free")
	text = disallowedPattern.ReplaceAllString(text, " ")
	text = multiSpacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SemanticScores embeds query and docs and returns the cosine similarity of every doc to
// the query. Empty docs are embedded as-is and still receive a score.
func SemanticScores(ctx context.Context, embedder ports.Embedder, query string, docs []string) ([]float64, error) {
	scores := make([]float64, len(docs))
	if len(docs) == 0 || strings.TrimSpace(query) == "" {
		return scores, nil
	}

	// Blank documents score 0 and are never sent to the embedder.
	positions := make([]int, 0, len(docs))
	texts := make([]string, 0, len(docs))
	for i, d := range docs {
		if strings.TrimSpace(d) == "" {
			continue
		}
		positions = append(positions, i)
		texts = append(texts, d)
	}
	if len(texts) == 0 {
		return scores, nil
	}

	queryVectors, err := embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(queryVectors) != 1 {
		return nil, fmt.Errorf("embed query: expected 1 vector, got %d", len(queryVectors))
	}

	docVectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed documents: %w", err)
	}
	if len(docVectors) != len(texts) {
		return nil, fmt.Errorf("embed documents: vectors/docs mismatch: %d/%d", len(docVectors), len(texts))
	}

	for i, v := range docVectors {
		sim, err := cosineSimilarity(queryVectors[0], v)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", positions[i], err)
		}
		scores[positions[i]] = sim
	}
	return scores, nil
}

func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dimension mismatch: %d/%d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	sim := dot / ((math.Sqrt(na) + cosineEpsilon) * (math.Sqrt(nb) + cosineEpsilon))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, fmt.Errorf("non-finite similarity")
	}
	return sim, nil
}
