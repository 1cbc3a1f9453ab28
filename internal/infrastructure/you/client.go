package you

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/resilience"
)

const (
	DefaultSearchURL   = "https://api.ydc-index.io/v1/search"
	DefaultContentsURL = "https://api.ydc-index.io/v1/contents"
	DefaultExpressURL  = "https://api.you.com/v1/agents/runs"
)

type authStyle int

const (
	authAPIKey authStyle = iota
	authBearer
)

// Client holds what the You.com endpoints share: key, HTTP client and resilience policy.
type Client struct {
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func NewClient(apiKey string, timeout time.Duration, executor *resilience.Executor) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any, operation string) error {
	target := endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, target, nil, authAPIKey, out, operation)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any, auth authStyle, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}
	return c.do(ctx, http.MethodPost, endpoint, body, auth, out, operation)
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, auth authStyle, out any, operation string) error {
	err := c.executor.Execute(ctx, "you."+operation, func(callCtx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(callCtx, method, target, reader)
		if err != nil {
			return fmt.Errorf("create %s request: %w", operation, err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		switch auth {
		case authBearer:
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		default:
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("you %s request: %w", operation, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			return &resilience.HTTPStatusError{
				Service:    "you",
				Operation:  operation,
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       string(msg),
			}
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
		return nil
	}, resilience.ClassifyHTTPError)
	return resilience.WrapTemporaryIfNeeded("you "+operation, err)
}
