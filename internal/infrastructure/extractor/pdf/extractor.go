package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	pdfreader "github.com/ledongthuc/pdf"
)

const (
	minPDFBytes     = 500
	defaultMaxBytes = 25 << 20
)

// Extractor downloads a PDF and extracts its plain text locally.
type Extractor struct {
	httpClient *http.Client
	maxBytes   int64
}

func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Extractor{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   defaultMaxBytes,
	}
}

func (e *Extractor) Extract(ctx context.Context, url string, maxChars int) string {
	body, err := e.download(ctx, url)
	if err != nil {
		slog.Warn("pdf_download_failed", "url", url, "error", err)
		return ""
	}
	text, err := plainText(body)
	if err != nil {
		slog.Warn("pdf_parse_failed", "url", url, "error", err)
		return ""
	}
	return truncateRunes(strings.TrimSpace(text), maxChars)
}

func (e *Extractor) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch status: %s", resp.Status)
	}
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "pdf") {
		return nil, fmt.Errorf("not a pdf: content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) < minPDFBytes {
		return nil, fmt.Errorf("pdf too small: %d bytes", len(body))
	}
	return body, nil
}

// plainText converts the parser's panics on malformed files into errors.
func plainText(body []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdfreader.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return buf.String(), nil
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
