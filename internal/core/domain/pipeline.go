package domain

import "time"

type PipelineState string

const (
	StateQueryBuilt          PipelineState = "query_built"
	StateSearching           PipelineState = "searching"
	StateFound               PipelineState = "found"
	StateNotFound            PipelineState = "not_found"
	StateCaching             PipelineState = "caching"
	StateLexicalRank         PipelineState = "lexical_rank"
	StateSemanticRank        PipelineState = "semantic_rank"
	StateFusion              PipelineState = "fusion"
	StateAnswerFromDocument  PipelineState = "answer_from_document"
	StateAnswerFromAgentOnly PipelineState = "answer_from_agent_only"
)

// Terminal reports whether no further transition follows s.
func (s PipelineState) Terminal() bool {
	return s == StateAnswerFromDocument || s == StateAnswerFromAgentOnly
}

type StageTiming struct {
	Stage    PipelineState `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// PipelineResult is the outcome of one question.
type PipelineResult struct {
	Question       string            `json:"question"`
	Plan           QueryPlan         `json:"plan"`
	Query          string            `json:"query,omitempty"`
	Domain         string            `json:"domain,omitempty"`
	CandidateCount int               `json:"candidate_count"`
	Ranked         []RankedCandidate `json:"ranked,omitempty"`
	Best           *RankedCandidate  `json:"best,omitempty"`
	Sources        []string          `json:"sources"`
	Answer         string            `json:"answer"`
	AnswerError    string            `json:"answer_error,omitempty"`
	State          PipelineState     `json:"state"`
	Trace          []PipelineState   `json:"trace"`
	Timings        []StageTiming     `json:"timings,omitempty"`
}

// Visited reports whether the run passed through state.
func (r *PipelineResult) Visited(state PipelineState) bool {
	for _, s := range r.Trace {
		if s == state {
			return true
		}
	}
	return false
}
