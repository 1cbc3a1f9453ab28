package you

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

type searchResponse struct {
	Results struct {
		Web []searchHit `json:"web"`
	} `json:"results"`
}

type searchHit struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Snippets    []string `json:"snippets"`
}

// SearchClient calls the You.com web search API and keeps PDF hits only.
type SearchClient struct {
	client   *Client
	endpoint string
}

func NewSearchClient(client *Client, endpoint string) *SearchClient {
	if endpoint == "" {
		endpoint = DefaultSearchURL
	}
	return &SearchClient{client: client, endpoint: endpoint}
}

func (s *SearchClient) Search(ctx context.Context, query, country string, count int) ([]domain.SearchCandidate, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("count", strconv.Itoa(count))
	params.Set("country", country)

	var resp searchResponse
	if err := s.client.getJSON(ctx, s.endpoint, params, &resp, "search"); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(resp.Results.Web))
	out := make([]domain.SearchCandidate, 0, len(resp.Results.Web))
	for _, hit := range resp.Results.Web {
		if !isPDFURL(hit.URL) {
			continue
		}
		candidate, err := domain.NewSearchCandidate(hit.URL, hit.Title, hit.Description, hit.Snippets)
		if err != nil {
			continue
		}
		if _, dup := seen[candidate.URL]; dup {
			continue
		}
		seen[candidate.URL] = struct{}{}
		out = append(out, candidate)
	}

	slog.Debug("you_search", "query", query, "hits", len(resp.Results.Web), "pdfs", len(out))
	return out, nil
}

func isPDFURL(raw string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(raw)), ".pdf")
}
