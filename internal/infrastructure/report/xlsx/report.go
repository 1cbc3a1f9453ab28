package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

const (
	RankingSheet = "Ranking"
	RunSheet     = "Run"
)

var rankingHeader = []string{
	"rank", "url", "title", "bm25", "sem_meta", "sem_content",
	"sem_meta_norm", "sem_content_norm", "hybrid", "selected",
}

// Write saves the ranking table and the run summary of result to path.
func Write(path string, result *domain.PipelineResult) error {
	if result == nil {
		return fmt.Errorf("write report: nil result")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", RankingSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, RankingSheet, 1, toAny(rankingHeader)); err != nil {
		return err
	}

	selected := make(map[string]struct{}, len(result.Sources))
	for _, s := range result.Sources {
		selected[s] = struct{}{}
	}
	for i, rc := range result.Ranked {
		_, isSelected := selected[rc.Candidate.URL]
		row := []any{
			i + 1,
			rc.Candidate.URL,
			rc.Candidate.Title,
			rc.Scores.BM25,
			rc.Scores.SemMeta,
			rc.Scores.SemContent,
			rc.Scores.SemMetaNorm,
			rc.Scores.SemContentNorm,
			rc.Scores.Hybrid,
			isSelected,
		}
		if err := writeRow(f, RankingSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(RunSheet); err != nil {
		return fmt.Errorf("create run sheet: %w", err)
	}
	trace := make([]string, 0, len(result.Trace))
	for _, s := range result.Trace {
		trace = append(trace, string(s))
	}
	summary := [][]any{
		{"question", result.Question},
		{"insurer", result.Plan.Insurer},
		{"plan", result.Plan.Plan},
		{"year", result.Plan.Year},
		{"query", result.Query},
		{"domain", result.Domain},
		{"candidates", result.CandidateCount},
		{"state", string(result.State)},
		{"trace", strings.Join(trace, " > ")},
		{"sources", strings.Join(result.Sources, "\n")},
		{"answer", result.Answer},
	}
	for i, row := range summary {
		if err := writeRow(f, RunSheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
