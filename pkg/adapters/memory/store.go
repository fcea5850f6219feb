package memory

import (
	"context"
	"sync"

	"github.com/canopyhq/canopy/pkg/domain"
)

// Store implements ports.SurfaceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Surface
	mu   sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		data: make(map[string]*domain.Surface),
	}
}

// Save persists the surface in memory.
func (s *Store) Save(ctx context.Context, surface *domain.Surface) error {
	// Deep copy on write so the caller can keep mutating its record.
	copied := surface.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[surface.SurfaceID] = copied
	return nil
}

// Load retrieves the surface from memory.
func (s *Store) Load(ctx context.Context, surfaceID string) (*domain.Surface, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	surface, ok := s.data[surfaceID]
	if !ok {
		return nil, domain.ErrSurfaceNotFound
	}

	// Copy on read so the caller can't mutate store state through the pointer.
	return surface.Clone(), nil
}

// Delete removes the surface.
func (s *Store) Delete(ctx context.Context, surfaceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, surfaceID)
	return nil
}

// List returns the stored surface ids.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// Clear removes all surfaces.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*domain.Surface)
	return nil
}
