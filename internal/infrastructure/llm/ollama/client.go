package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/embedding"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/llm/prompt"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	genModel   string
	embedModel string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, genModel, embedModel string, executor *resilience.Executor) *Client {
	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

// Embed skips blank texts and fills their positions with zero vectors.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	idx, kept := embedding.SplitBlank(texts)
	if len(kept) == 0 {
		return embedding.Zeros(len(texts), 0)
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
	request := map[string]any{
		"model": e.client.embedModel,
		"input": texts,
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := e.client.postJSON(ctx, "/api/embed", request, &response, "embed"); err != nil {
		return nil, err
	}
	if len(response.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama embed: expected %d vectors, got %d", len(texts), len(response.Embeddings))
	}
	return response.Embeddings, nil
}

// Generator answers with a local Ollama model using the same prompts as the hosted agent.
type Generator struct {
	client       *Client
	contextChars int
}

func NewGenerator(client *Client, contextChars int) *Generator {
	return &Generator{client: client, contextChars: contextChars}
}

func (g *Generator) Ask(ctx context.Context, contextText, question string) (string, error) {
	return g.client.generateText(ctx, prompt.Answer(contextText, question, g.contextChars))
}

func (c *Client) generateText(ctx context.Context, text string) (string, error) {
	reqBody := map[string]any{
		"model":  c.genModel,
		"prompt": text,
		"stream": false,
	}
	var response struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}
