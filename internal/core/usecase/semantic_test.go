package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCleanDocumentText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"html", "<p>Deductible: <b>$500</b></p>", "Deductible: $500"},
		{"table", "| Service | Cost |\n|---|---|\n| Visit | $30 |", "Service Cost Visit $30"},
		{"escaped newlines", `Line one\nLine two\tend`, "Line one Line two end"},
		{"free run", "Preventive care Free Free FREE free", "Preventive care Free"},
		{"allow list", "Copay ★ 20% • after deductible™", "Copay 20% after deductible"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanDocumentText(tc.in); got != tc.want {
				t.Fatalf("CleanDocumentText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSemanticScoresRanksByCosine(t *testing.T) {
	embedder := &keywordEmbedderFake{}
	scores, err := SemanticScores(context.Background(), embedder, "molina deductible", []string{
		"molina deductible summary",
		"gold premium",
		"",
	})
	if err != nil {
		t.Fatalf("SemanticScores() error = %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0] <= scores[1] {
		t.Fatalf("expected matching doc first, got %v", scores)
	}
	if math.IsNaN(scores[2]) {
		t.Fatalf("empty doc must still be scored, got NaN")
	}
	if embedder.calls != 2 {
		t.Fatalf("expected one query and one batch embed call, got %d", embedder.calls)
	}
}

func TestSemanticScoresNoDocsSkipsEmbedding(t *testing.T) {
	embedder := &keywordEmbedderFake{}
	scores, err := SemanticScores(context.Background(), embedder, "q", nil)
	if err != nil || len(scores) != 0 {
		t.Fatalf("expected empty scores, got %v %v", scores, err)
	}
	if embedder.calls != 0 {
		t.Fatalf("expected no embed calls, got %d", embedder.calls)
	}
}

func TestSemanticScoresBlankInputsScoreZero(t *testing.T) {
	embedder := &keywordEmbedderFake{rejectBlank: true}
	scores, err := SemanticScores(context.Background(), embedder, "molina deductible", []string{"", "molina deductible", "  "})
	if err != nil {
		t.Fatalf("SemanticScores() error = %v", err)
	}
	if scores[0] != 0 || scores[2] != 0 || scores[1] <= 0 {
		t.Fatalf("expected blank docs at 0 and the match positive, got %v", scores)
	}

	embedder = &keywordEmbedderFake{rejectBlank: true}
	scores, err = SemanticScores(context.Background(), embedder, "", []string{"molina", "silver"})
	if err != nil || len(scores) != 2 || scores[0] != 0 || scores[1] != 0 {
		t.Fatalf("expected zeros for a blank query, got %v %v", scores, err)
	}
	if embedder.calls != 0 {
		t.Fatalf("blank query must not reach the embedder, got %d calls", embedder.calls)
	}
}

func TestSemanticScoresErrors(t *testing.T) {
	_, err := SemanticScores(context.Background(), &keywordEmbedderFake{err: errFake}, "q", []string{"a"})
	if !errors.Is(err, errFake) {
		t.Fatalf("expected embed error, got %v", err)
	}

	_, err = SemanticScores(context.Background(), &keywordEmbedderFake{truncate: true}, "q", []string{"a", "b"})
	if err == nil || !strings.Contains(err.Error(), "mismatch") {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestCosineSimilarity(t *testing.T) {
	sim, err := cosineSimilarity([]float32{1, 0}, []float32{1, 0})
	if err != nil {
		t.Fatalf("cosineSimilarity() error = %v", err)
	}
	if math.Abs(sim-1) > 1e-6 {
		t.Fatalf("expected ~1, got %f", sim)
	}

	sim, err = cosineSimilarity([]float32{0, 0}, []float32{1, 0})
	if err != nil || sim != 0 {
		t.Fatalf("expected 0 for zero vector, got %f %v", sim, err)
	}

	if _, err := cosineSimilarity([]float32{1}, []float32{1, 0}); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
}
