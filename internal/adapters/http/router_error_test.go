package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/config"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/observability/metrics"
)

type answererFake struct {
	err      error
	question string
}

func (f *answererFake) Run(_ context.Context, question string) (*domain.PipelineResult, error) {
	f.question = question
	if f.err != nil {
		return nil, f.err
	}
	return &domain.PipelineResult{
		Question: question,
		Answer:   "The deductible is $0.",
		State:    domain.StateAnswerFromDocument,
		Sources:  []string{"https://www.molinamarketplace.com/sbc-silver1.pdf"},
	}, nil
}

type plannerFake struct{}

func (plannerFake) Plan(question string) domain.QueryPlan {
	return domain.QueryPlan{Insurer: "Molina", Year: 2025, PrimaryDomain: "molinahealthcare.com"}
}

func newTestHandler(cfg config.Config, answerer *answererFake) http.Handler {
	return NewRouter(cfg, answerer, plannerFake{}, metrics.NewHTTPServerMetrics("api")).Handler()
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestAskReturnsPipelineResult(t *testing.T) {
	answerer := &answererFake{}
	handler := newTestHandler(config.Config{}, answerer)

	res := postJSON(t, handler, "/v1/ask", map[string]string{"question": "  What is the deductible?  "})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if answerer.question != "What is the deductible?" {
		t.Fatalf("expected trimmed question, got %q", answerer.question)
	}

	var result domain.PipelineResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.State != domain.StateAnswerFromDocument || len(result.Sources) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if res.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestAskMapsDomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "pipeline run", errors.New("bad")), http.StatusBadRequest},
		{"temporary", domain.WrapError(domain.ErrTemporary, "search", errors.New("503")), http.StatusServiceUnavailable},
		{"unauthorized upstream", domain.WrapError(domain.ErrUnauthorized, "search", errors.New("401")), http.StatusBadGateway},
		{"ranking stage", domain.NewStageError(domain.StateSemanticRank, errors.New("embed")), http.StatusBadGateway},
		{"cache corrupt", domain.WrapError(domain.ErrCacheCorrupt, "cache", errors.New("bad json")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(config.Config{}, &answererFake{err: tc.err})
			res := postJSON(t, handler, "/v1/ask", map[string]string{"question": "q"})
			if res.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, res.Code)
			}
			if !strings.Contains(res.Body.String(), "request_id") {
				t.Fatalf("expected request_id in error body: %s", res.Body.String())
			}
		})
	}
}

func TestAskRejectsBadRequests(t *testing.T) {
	answerer := &answererFake{}
	handler := newTestHandler(config.Config{}, answerer)

	res := postJSON(t, handler, "/v1/ask", map[string]string{"question": "   "})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank question, got %d", res.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid json, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/ask", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if answerer.question != "" {
		t.Fatalf("pipeline must not run for rejected requests")
	}
}

func TestPlanReturnsQueryPlan(t *testing.T) {
	handler := newTestHandler(config.Config{}, &answererFake{})
	res := postJSON(t, handler, "/v1/plan", map[string]string{"question": "Molina silver deductible"})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var plan domain.QueryPlan
	if err := json.NewDecoder(res.Body).Decode(&plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if plan.PrimaryDomain != "molinahealthcare.com" {
		t.Fatalf("unexpected plan %+v", plan)
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	handler := newTestHandler(config.Config{}, &answererFake{})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", res.Code)
	}

	res = httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("metrics expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "benefits_http_requests_total") {
		t.Fatalf("expected http request metrics after healthz")
	}
}
