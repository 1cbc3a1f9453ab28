package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

func TestWriteRankingReport(t *testing.T) {
	best := domain.RankedCandidate{
		Candidate: domain.SearchCandidate{URL: "https://a/best.pdf", Title: "Best"},
		Scores:    domain.ScoreVector{BM25: 2.5, Hybrid: 1},
	}
	result := &domain.PipelineResult{
		Question: "What is the deductible?",
		Query:    "site:a 2025 Florida",
		State:    domain.StateAnswerFromDocument,
		Trace:    []domain.PipelineState{domain.StateQueryBuilt, domain.StateAnswerFromDocument},
		Ranked: []domain.RankedCandidate{
			best,
			{Candidate: domain.SearchCandidate{URL: "https://a/other.pdf", Title: "Other"}},
		},
		Best:    &best,
		Sources: []string{"https://a/best.pdf"},
		Answer:  "$0",
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := Write(path, result); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	checks := []struct {
		sheet, cell, want string
	}{
		{RankingSheet, "A1", "rank"},
		{RankingSheet, "B2", "https://a/best.pdf"},
		{RankingSheet, "J2", "TRUE"},
		{RankingSheet, "J3", "FALSE"},
		{RankingSheet, "D2", "2.5"},
		{RunSheet, "B1", "What is the deductible?"},
		{RunSheet, "B8", "answer_from_document"},
		{RunSheet, "B11", "$0"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s) error = %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Fatalf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}
}

func TestWriteNilResult(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "r.xlsx"), nil); err == nil {
		t.Fatalf("expected error")
	}
}
