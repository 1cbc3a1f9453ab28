package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store keeps extracted text in the content_cache table. Writes are durable once Put
// returns, so Flush has nothing to do.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2025110801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS content_cache (
	url TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_content_cache_fetched_at ON content_cache(fetched_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, url string) (string, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `
SELECT text
FROM content_cache
WHERE url = $1
`, url).Scan(&text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select cached content: %w", err)
	}
	return text, true, nil
}

func (s *Store) Put(ctx context.Context, url, text string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO content_cache (url, text, fetched_at)
VALUES ($1, $2, $3)
ON CONFLICT (url) DO UPDATE SET text = EXCLUDED.text, fetched_at = EXCLUDED.fetched_at
`, url, text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert cached content: %w", err)
	}
	return nil
}

func (s *Store) Flush(context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
