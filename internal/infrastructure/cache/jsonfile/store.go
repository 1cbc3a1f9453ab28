package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

const DefaultPath = "pdf_text_cache.json"

// Store keeps the whole URL -> text map in memory and rewrites the file on Flush. The
// file is replaced atomically (temp file in the same directory, fsync, rename). A single
// writer process is assumed.
type Store struct {
	path string

	mu    sync.RWMutex
	data  map[string]string
	dirty bool
}

// Open loads path. A missing file is an empty cache; an unreadable or malformed file is
// reported as domain.ErrCacheCorrupt rather than silently reset.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, domain.WrapError(domain.ErrCacheCorrupt, "read content cache", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		slog.Warn("content_cache_empty_file", "path", path)
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, domain.WrapError(domain.ErrCacheCorrupt, "decode content cache "+path, err)
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	slog.Info("content_cache_loaded", "path", path, "entries", len(s.data))
	return s, nil
}

func (s *Store) Get(_ context.Context, url string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.data[url]
	return text, ok, nil
}

func (s *Store) Put(_ context.Context, url, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[url] = text
	s.dirty = true
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *Store) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.writeLocked(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *Store) Close() error {
	return s.Flush(context.Background())
}

func (s *Store) writeLocked() error {
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal content cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
