package ports

import (
	"context"

	"github.com/canopyhq/canopy/pkg/domain"
)

// SurfaceStore defines the interface for persisting surface state.
//
// The processor owns exactly one store; implementations must guarantee that
// a loaded surface is isolated from the stored one (copy on read or
// serialization round-trip), so a renderer never observes a half-applied
// message through a shared pointer.
type SurfaceStore interface {
	// Save persists the surface under its id.
	Save(ctx context.Context, surface *domain.Surface) error

	// Load retrieves a surface by id.
	// Returns domain.ErrSurfaceNotFound if the surface does not exist.
	Load(ctx context.Context, surfaceID string) (*domain.Surface, error)

	// Delete removes the surface. Deleting an unknown id is not an error.
	Delete(ctx context.Context, surfaceID string) error

	// List returns the ids of all stored surfaces.
	List(ctx context.Context) ([]string, error)

	// Clear removes all surfaces (session reset; not part of the wire protocol).
	Clear(ctx context.Context) error
}
