package domain

import (
	"fmt"
	"math"
	"strings"
)

// SearchCandidate is one PDF result returned by the web search collaborator.
type SearchCandidate struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Snippets    []string `json:"snippets,omitempty"`
}

func NewSearchCandidate(url, title, description string, snippets []string) (SearchCandidate, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return SearchCandidate{}, WrapError(ErrInvalidInput, "new search candidate", fmt.Errorf("empty url"))
	}
	cleaned := make([]string, 0, len(snippets))
	for _, s := range snippets {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return SearchCandidate{
		URL:         url,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Snippets:    cleaned,
	}, nil
}

// MetadataText is the title and description joined, used by the metadata semantic pass.
func (c SearchCandidate) MetadataText() string {
	return strings.TrimSpace(c.Title + " " + c.Description)
}

// LexicalText is the title, description and snippets joined, used by BM25.
func (c SearchCandidate) LexicalText() string {
	parts := make([]string, 0, 2+len(c.Snippets))
	parts = append(parts, c.Title, c.Description)
	parts = append(parts, c.Snippets...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ScoreVector holds the named scores of one candidate. Raw scores are unbounded,
// normalized ones lie in [0,1].
type ScoreVector struct {
	BM25           float64 `json:"bm25"`
	SemMeta        float64 `json:"sem_meta"`
	SemContent     float64 `json:"sem_content"`
	SemMetaNorm    float64 `json:"sem_meta_norm"`
	SemContentNorm float64 `json:"sem_content_norm"`
	Hybrid         float64 `json:"hybrid"`
}

func NewScoreVector(bm25, semMeta, semContent, semMetaNorm, semContentNorm, hybrid float64) (ScoreVector, error) {
	for name, v := range map[string]float64{
		"bm25":             bm25,
		"sem_meta":         semMeta,
		"sem_content":      semContent,
		"sem_meta_norm":    semMetaNorm,
		"sem_content_norm": semContentNorm,
		"hybrid":           hybrid,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ScoreVector{}, WrapError(ErrInvalidInput, "new score vector", fmt.Errorf("%s is not finite", name))
		}
	}
	return ScoreVector{
		BM25:           bm25,
		SemMeta:        semMeta,
		SemContent:     semContent,
		SemMetaNorm:    semMetaNorm,
		SemContentNorm: semContentNorm,
		Hybrid:         hybrid,
	}, nil
}

// RankedCandidate joins a candidate with its scores for the duration of one run.
type RankedCandidate struct {
	Candidate SearchCandidate `json:"candidate"`
	Scores    ScoreVector     `json:"scores"`
	// Content is the cleaned extracted text used for the content pass.
	Content string `json:"-"`
}
