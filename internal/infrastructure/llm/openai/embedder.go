package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/embedding"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/resilience"
)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
}

// Embedder calls an OpenAI-compatible embeddings endpoint.
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	executor   *resilience.Executor
}

func NewEmbedder(cfg Config, executor *resilience.Executor) *Embedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &Embedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
		executor:   executor,
	}
}

// Dimensions is the requested vector size; 0 leaves it to the model.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// Embed sends only non-blank texts, since the API rejects empty inputs; blank positions
// get zero vectors.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	idx, kept := embedding.SplitBlank(texts)
	if len(kept) == 0 {
		return embedding.Zeros(len(texts), e.dimensions)
	}
	vectors, err := e.embed(ctx, kept)
	if err != nil {
		return nil, err
	}
	if len(kept) == len(texts) {
		return vectors, nil
	}
	return embedding.Scatter(len(texts), idx, vectors)
}

func (e *Embedder) embed(ctx context.Context, texts []string) ([][]float32, error) {
	req := openai.EmbeddingRequest{
		Input:          texts,
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	var resp openai.EmbeddingResponse
	err := e.executor.Execute(ctx, "openai.embed", func(callCtx context.Context) error {
		var err error
		resp, err = e.client.CreateEmbeddings(callCtx, req)
		if err != nil {
			return parseAPIError(err)
		}
		return nil
	}, resilience.ClassifyHTTPError)
	if err != nil {
		return nil, resilience.WrapTemporaryIfNeeded("openai embed", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embed: expected %d vectors, got %d", len(texts), len(resp.Data))
	}
	out := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(out) {
			return nil, fmt.Errorf("openai embed: index %d out of range", item.Index)
		}
		out[item.Index] = item.Embedding
	}
	for i, v := range out {
		if v == nil {
			return nil, fmt.Errorf("openai embed: missing vector %d", i)
		}
	}
	return out, nil
}

// parseAPIError maps go-openai errors onto resilience.HTTPStatusError so the shared
// classifier sees the status code.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &resilience.HTTPStatusError{
			Service:    "openai",
			Operation:  "embed",
			StatusCode: reqErr.HTTPStatusCode,
			Status:     fmt.Sprintf("%d", reqErr.HTTPStatusCode),
			Body:       string(reqErr.Body),
		}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &resilience.HTTPStatusError{
			Service:    "openai",
			Operation:  "embed",
			StatusCode: apiErr.HTTPStatusCode,
			Status:     fmt.Sprintf("%d", apiErr.HTTPStatusCode),
			Body:       apiErr.Message,
		}
	}

	return fmt.Errorf("openai embed request: %w", err)
}
