package you

import (
	"context"
	"log/slog"
)

type contentsRequest struct {
	URLs   []string `json:"urls"`
	Format string   `json:"format"`
}

type contentsItem struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// ContentsClient extracts page text through the You.com contents API. Failures are
// logged and reported as empty text.
type ContentsClient struct {
	client   *Client
	endpoint string
}

func NewContentsClient(client *Client, endpoint string) *ContentsClient {
	if endpoint == "" {
		endpoint = DefaultContentsURL
	}
	return &ContentsClient{client: client, endpoint: endpoint}
}

func (c *ContentsClient) Extract(ctx context.Context, url string, maxChars int) string {
	var items []contentsItem
	req := contentsRequest{URLs: []string{url}, Format: "markdown"}
	if err := c.client.postJSON(ctx, c.endpoint, req, authAPIKey, &items, "contents"); err != nil {
		slog.Warn("contents_extract_failed", "url", url, "error", err)
		return ""
	}
	if len(items) == 0 {
		return ""
	}

	text := items[0].Markdown
	if text == "" {
		text = items[0].HTML
	}
	return truncateRunes(text, maxChars)
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
