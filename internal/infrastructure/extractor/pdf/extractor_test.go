package pdf

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractorRejectsNonPDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(bytes.Repeat([]byte("a"), 1000))
	}))
	defer server.Close()

	if got := NewExtractor(0).Extract(context.Background(), server.URL+"/x.pdf", 100); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestExtractorRejectsTinyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 tiny"))
	}))
	defer server.Close()

	if got := NewExtractor(0).Extract(context.Background(), server.URL+"/x.pdf", 100); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestExtractorMalformedPDFIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("garbage "), 200)...))
	}))
	defer server.Close()

	if got := NewExtractor(0).Extract(context.Background(), server.URL+"/x.pdf", 100); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestExtractorHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if got := NewExtractor(0).Extract(context.Background(), server.URL+"/x.pdf", 100); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
