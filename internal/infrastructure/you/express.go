package you

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/llm/prompt"
)

const noAnswer = "No answer."

type expressRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type expressResponse struct {
	Output json.RawMessage `json:"output"`
}

// ExpressClient asks the You.com Express agent for the final answer.
type ExpressClient struct {
	client       *Client
	endpoint     string
	contextChars int
}

func NewExpressClient(client *Client, endpoint string, contextChars int) *ExpressClient {
	if endpoint == "" {
		endpoint = DefaultExpressURL
	}
	return &ExpressClient{client: client, endpoint: endpoint, contextChars: contextChars}
}

func (e *ExpressClient) Ask(ctx context.Context, contextText, question string) (string, error) {
	req := expressRequest{
		Agent: "express",
		Input: prompt.Answer(contextText, question, e.contextChars),
	}
	var resp expressResponse
	if err := e.client.postJSON(ctx, e.endpoint, req, authBearer, &resp, "express"); err != nil {
		return "", err
	}
	return parseExpressOutput(resp.Output)
}

// parseExpressOutput accepts either a list of {text} items or a bare string.
func parseExpressOutput(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return noAnswer, nil
	}

	switch trimmed[0] {
	case '[':
		var items []struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return "", fmt.Errorf("decode express output: %w", err)
		}
		if len(items) == 0 {
			return noAnswer, nil
		}
		return items[0].Text, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode express output: %w", err)
		}
		return s, nil
	default:
		return noAnswer, nil
	}
}
