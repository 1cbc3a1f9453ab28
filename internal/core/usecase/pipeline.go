package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/ports"
)

const (
	DefaultAnswerContextChars = 6000

	// SynthesisFailedAnswer stands in for the answer when the synthesis collaborator fails.
	SynthesisFailedAnswer = "Answer synthesis failed; the ranked sources are still listed."
)

type PipelineConfig struct {
	LexicalTopK        int
	FinalTopK          int
	WeightMeta         float64
	WeightContent      float64
	BM25               BM25Params
	ContentMaxChars    int
	AnswerContextChars int
}

func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		LexicalTopK:        DefaultLexicalTopK,
		FinalTopK:          DefaultFinalTopK,
		WeightMeta:         DefaultWeightMeta,
		WeightContent:      DefaultWeightContent,
		BM25:               DefaultBM25Params(),
		ContentMaxChars:    DefaultContentMaxChars,
		AnswerContextChars: DefaultAnswerContextChars,
	}
}

func (c PipelineConfig) normalize() PipelineConfig {
	def := DefaultPipelineConfig()
	if c.LexicalTopK <= 0 {
		c.LexicalTopK = def.LexicalTopK
	}
	if c.FinalTopK <= 0 {
		c.FinalTopK = def.FinalTopK
	}
	if c.ContentMaxChars <= 0 {
		c.ContentMaxChars = def.ContentMaxChars
	}
	if c.AnswerContextChars <= 0 {
		c.AnswerContextChars = def.AnswerContextChars
	}
	c.BM25 = c.BM25.normalize()
	return c
}

// PipelineUseCase answers one question end to end: build the query, search the
// fallback chain, fill the content cache, rank and synthesize.
type PipelineUseCase struct {
	builder     *QueryBuilder
	search      *SearchUseCase
	cache       *ContentCache
	fetch       FetchFunc
	embedder    ports.Embedder
	synthesizer ports.AnswerSynthesizer
	cfg         PipelineConfig
	observer    ports.PipelineObserver
}

func NewPipelineUseCase(
	builder *QueryBuilder,
	search *SearchUseCase,
	cache *ContentCache,
	extractor ports.ContentExtractor,
	embedder ports.Embedder,
	synthesizer ports.AnswerSynthesizer,
	cfg PipelineConfig,
	observer ports.PipelineObserver,
) *PipelineUseCase {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &PipelineUseCase{
		builder:     builder,
		search:      search,
		cache:       cache,
		fetch:       FetchFromExtractor(extractor),
		embedder:    embedder,
		synthesizer: synthesizer,
		cfg:         cfg.normalize(),
		observer:    observer,
	}
}

func (uc *PipelineUseCase) Plan(question string) domain.QueryPlan {
	return uc.builder.Plan(question)
}

func (uc *PipelineUseCase) Run(ctx context.Context, question string) (*domain.PipelineResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "pipeline run", fmt.Errorf("question is required"))
	}

	run := &pipelineRun{
		result:   &domain.PipelineResult{Question: question, Sources: []string{}},
		observer: uc.observer,
	}
	err := uc.run(ctx, run)
	uc.observer.ObserveRun(run.result.State, err)
	if err != nil {
		slog.Error("pipeline_failed", "state", run.result.State, "error", err)
		return nil, err
	}
	slog.Info("pipeline_done",
		"state", run.result.State,
		"candidates", run.result.CandidateCount,
		"sources", len(run.result.Sources),
	)
	return run.result, nil
}

func (uc *PipelineUseCase) run(ctx context.Context, run *pipelineRun) error {
	result := run.result

	run.step(domain.StateQueryBuilt, func() {
		result.Plan = uc.builder.Plan(result.Question)
	})

	var outcome SearchOutcome
	if err := run.stage(domain.StateSearching, func() error {
		var err error
		outcome, err = uc.search.SearchPlan(ctx, result.Plan)
		return err
	}); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	result.Query = outcome.Query
	result.Domain = outcome.Domain
	result.CandidateCount = len(outcome.Candidates)

	if len(outcome.Candidates) == 0 {
		run.enter(domain.StateNotFound)
		return run.stage(domain.StateAnswerFromAgentOnly, func() error {
			return uc.synthesize(ctx, result, "")
		})
	}

	run.enter(domain.StateFound)
	return uc.rankAndAnswer(ctx, run, outcome.Candidates)
}

func (uc *PipelineUseCase) rankAndAnswer(ctx context.Context, run *pipelineRun, candidates []domain.SearchCandidate) error {
	result := run.result

	contents := make([]string, len(candidates))
	if err := run.stage(domain.StateCaching, func() error {
		for i, c := range candidates {
			text, err := uc.cache.GetOrFetch(ctx, c.URL, uc.fetch, uc.cfg.ContentMaxChars)
			if err != nil {
				return err
			}
			contents[i] = text
		}
		return nil
	}); err != nil {
		return fmt.Errorf("content cache: %w", err)
	}

	var (
		survivors []int
		bm25      []float64
	)
	run.step(domain.StateLexicalRank, func() {
		survivors, bm25 = LexicalTopK(result.Question, candidates, uc.cfg.LexicalTopK, uc.cfg.BM25)
	})

	query := CleanQuery(result.Question)
	metaTexts := make([]string, len(survivors))
	cleaned := make([]string, len(survivors))
	for i, idx := range survivors {
		metaTexts[i] = candidates[idx].MetadataText()
		cleaned[i] = CleanDocumentText(contents[idx])
	}

	var semMeta, semContent []float64
	if err := run.stage(domain.StateSemanticRank, func() error {
		var err error
		if semMeta, err = SemanticScores(ctx, uc.embedder, query, metaTexts); err != nil {
			return domain.NewStageError(domain.StateSemanticRank, fmt.Errorf("metadata pass: %w", err))
		}
		if semContent, err = SemanticScores(ctx, uc.embedder, query, cleaned); err != nil {
			return domain.NewStageError(domain.StateSemanticRank, fmt.Errorf("content pass: %w", err))
		}
		return nil
	}); err != nil {
		return err
	}

	var selected []domain.RankedCandidate
	if err := run.stage(domain.StateFusion, func() error {
		ranked, err := uc.fuse(candidates, survivors, cleaned, bm25, semMeta, semContent)
		if err != nil {
			return domain.NewStageError(domain.StateFusion, err)
		}
		result.Ranked = ranked
		k := uc.cfg.FinalTopK
		if k > len(ranked) {
			k = len(ranked)
		}
		selected = ranked[:k]
		return nil
	}); err != nil {
		return err
	}

	if len(selected) > 0 {
		best := selected[0]
		result.Best = &best
	}
	for _, rc := range selected {
		result.Sources = append(result.Sources, rc.Candidate.URL)
	}

	return run.stage(domain.StateAnswerFromDocument, func() error {
		return uc.synthesize(ctx, result, buildAnswerContext(selected, uc.cfg.AnswerContextChars))
	})
}

// synthesize fills result.Answer. A collaborator failure degrades to
// SynthesisFailedAnswer so the ranking still reaches the caller; only a
// cancelled or expired ctx fails the run.
func (uc *PipelineUseCase) synthesize(ctx context.Context, result *domain.PipelineResult, contextText string) error {
	answer, err := uc.synthesizer.Ask(ctx, contextText, result.Question)
	if err == nil {
		result.Answer = answer
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("synthesize answer: %w", ctxErr)
	}
	slog.Warn("synthesis_failed", "state", result.State, "sources", len(result.Sources), "error", err)
	result.Answer = SynthesisFailedAnswer
	result.AnswerError = err.Error()
	return nil
}

func (uc *PipelineUseCase) fuse(
	candidates []domain.SearchCandidate,
	survivors []int,
	cleaned []string,
	bm25, semMeta, semContent []float64,
) ([]domain.RankedCandidate, error) {
	if len(semMeta) != len(survivors) || len(semContent) != len(survivors) {
		return nil, fmt.Errorf("score vectors incomplete: survivors=%d meta=%d content=%d",
			len(survivors), len(semMeta), len(semContent))
	}
	hybrid, err := HybridScores(semMeta, semContent, uc.cfg.WeightMeta, uc.cfg.WeightContent)
	if err != nil {
		return nil, err
	}
	metaNorm := NormalizeScores(semMeta)
	contentNorm := NormalizeScores(semContent)

	ranked := make([]domain.RankedCandidate, len(survivors))
	for i, idx := range survivors {
		scores, err := domain.NewScoreVector(bm25[idx], semMeta[i], semContent[i], metaNorm[i], contentNorm[i], hybrid[i])
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", candidates[idx].URL, err)
		}
		ranked[i] = domain.RankedCandidate{
			Candidate: candidates[idx],
			Scores:    scores,
			Content:   cleaned[i],
		}
	}
	return TopKByScore(ranked, hybrid, len(ranked))
}

// buildAnswerContext renders the selected documents as "From <url>:\n<text>" blocks.
// Documents without text are skipped, so an all-empty selection yields "".
func buildAnswerContext(selected []domain.RankedCandidate, limit int) string {
	parts := make([]string, 0, len(selected))
	for _, rc := range selected {
		if strings.TrimSpace(rc.Content) == "" {
			continue
		}
		parts = append(parts, "From "+rc.Candidate.URL+":\n"+rc.Content)
	}
	return truncateRunes(strings.Join(parts, "\n\n"), limit)
}

type pipelineRun struct {
	result   *domain.PipelineResult
	observer ports.PipelineObserver
}

func (r *pipelineRun) enter(state domain.PipelineState) {
	r.result.State = state
	r.result.Trace = append(r.result.Trace, state)
}

// step runs a stage that cannot fail.
func (r *pipelineRun) step(state domain.PipelineState, fn func()) {
	r.enter(state)
	started := time.Now()
	fn()
	r.record(state, time.Since(started), nil)
}

func (r *pipelineRun) stage(state domain.PipelineState, fn func() error) error {
	r.enter(state)
	started := time.Now()
	err := fn()
	r.record(state, time.Since(started), err)
	return err
}

func (r *pipelineRun) record(state domain.PipelineState, elapsed time.Duration, err error) {
	r.result.Timings = append(r.result.Timings, domain.StageTiming{Stage: state, Duration: elapsed})
	r.observer.ObserveStage(state, elapsed)
	slog.Debug("stage_done", "stage", state, "duration_ms", elapsed.Milliseconds(), "ok", err == nil)
}
