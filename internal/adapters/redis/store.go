package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/canopyhq/canopy/pkg/domain"
)

// Store implements ports.SurfaceStore using Redis. Surfaces are stored as
// JSON values with the set of known ids kept in a side index, so List does
// not need SCAN.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for surfaces. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for surfaces.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "canopy:surface:",
		ttl:    0,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(surfaceID string) string {
	return s.prefix + surfaceID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the surface to Redis.
func (s *Store) Save(ctx context.Context, surface *domain.Surface) error {
	data, err := json.Marshal(surface)
	if err != nil {
		return fmt.Errorf("failed to marshal surface: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(surface.SurfaceID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), surface.SurfaceID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the surface from Redis. The JSON round-trip doubles as
// copy-on-read isolation.
func (s *Store) Load(ctx context.Context, surfaceID string) (*domain.Surface, error) {
	val, err := s.client.Get(ctx, s.key(surfaceID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSurfaceNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var surface domain.Surface
	if err := json.Unmarshal([]byte(val), &surface); err != nil {
		return nil, fmt.Errorf("failed to unmarshal surface: %w", err)
	}
	if surface.Components == nil {
		surface.Components = make(map[string]domain.Component)
	}
	if surface.DataModel == nil {
		surface.DataModel = make(map[string]any)
	}

	return &surface, nil
}

// Delete removes the surface.
func (s *Store) Delete(ctx context.Context, surfaceID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(surfaceID))
	pipe.SRem(ctx, s.indexKey(), surfaceID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns known surface ids. Expired keys (TTL mode) are pruned from
// the index lazily.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list surfaces: %w", err)
	}

	if s.ttl == 0 {
		return ids, nil
	}

	live := make([]string, 0, len(ids))
	for _, id := range ids {
		n, err := s.client.Exists(ctx, s.key(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check surface %s: %w", id, err)
		}
		if n == 0 {
			s.client.SRem(ctx, s.indexKey(), id)
			continue
		}
		live = append(live, id)
	}
	return live, nil
}

// Clear removes all surfaces and the index.
func (s *Store) Clear(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to list surfaces: %w", err)
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, s.key(id))
	}
	pipe.Del(ctx, s.indexKey())

	_, err = pipe.Exec(ctx)
	return err
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
