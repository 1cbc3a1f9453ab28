package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/config"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/ports"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/observability/metrics"
)

const (
	serviceName     = "api"
	maxRequestBytes = 1 << 20
)

type Router struct {
	cfg      config.Config
	answerer ports.QuestionAnswerer
	planner  ports.QueryPlanner
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	answerer ports.QuestionAnswerer,
	planner ports.QueryPlanner,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:      cfg,
		answerer: answerer,
		planner:  planner,
		metrics:  httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/v1/ask", backpressureMiddleware(
		http.HandlerFunc(rt.ask),
		rt.cfg.APIBackpressureMaxInFlight,
		rt.cfg.APIBackpressureWait,
	))
	mux.HandleFunc("/v1/plan", rt.plan)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, rt.onRateLimited)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) onRateLimited(r *http.Request) {
	if rt.metrics != nil {
		rt.metrics.RecordRateLimited(serviceName, r.URL.Path)
	}
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type questionRequest struct {
	Question string `json:"question"`
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	question, ok := decodeQuestion(w, r)
	if !ok {
		return
	}

	result, err := rt.answerer.Run(r.Context(), question)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) plan(w http.ResponseWriter, r *http.Request) {
	question, ok := decodeQuestion(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rt.planner.Plan(question))
}

func decodeQuestion(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return "", false
	}

	var req questionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return "", false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return "", false
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return "", false
	}
	return question, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("ask_failed",
			"request_id", requestIDFromContext(r.Context()),
			"status", status,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{
		"error":      err.Error(),
		"request_id": requestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
