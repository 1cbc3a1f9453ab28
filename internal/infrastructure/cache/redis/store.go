package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
)

const DefaultKeyPrefix = "content_cache:"

type Config struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// Store keeps extracted text in Redis under KeyPrefix+URL.
type Store struct {
	client rueidis.Client
	prefix string
}

func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}
	return newStoreWithClient(client, cfg.KeyPrefix), nil
}

func newStoreWithClient(client rueidis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Do(ctx, s.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, url string) (string, bool, error) {
	text, err := s.client.Do(ctx, s.client.B().Get().Key(s.prefix+url).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return text, true, nil
}

func (s *Store) Put(ctx context.Context, url, text string) error {
	cmd := s.client.B().Set().Key(s.prefix + url).Value(text).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Flush(context.Context) error {
	return nil
}

func (s *Store) Close() error {
	s.client.Close()
	return nil
}
