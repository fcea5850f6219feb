package render

import (
	"context"

	"github.com/canopyhq/canopy/pkg/domain"
)

// SurfaceSource is the read side a renderer pulls from. It is implemented
// by processor.Processor; renderers never mutate state and always receive
// isolated snapshots.
type SurfaceSource interface {
	// GetSurface returns a snapshot of one surface, or domain.ErrSurfaceNotFound.
	GetSurface(ctx context.Context, surfaceID string) (*domain.Surface, error)

	// Surfaces returns a snapshot of all surfaces.
	Surfaces(ctx context.Context) (map[string]*domain.Surface, error)
}

// Renderer turns a surface's current state into backend-specific output.
//
// Implementations must be pure with respect to surface state: rendering the
// same state twice yields identical output. An unknown surface renders as
// empty output, not an error; the only errors surfaced are store/transport
// faults from the SurfaceSource.
type Renderer interface {
	// Backend names the output format (e.g. "html", "markdown").
	Backend() string

	// RenderSurface renders one surface on demand (pull model).
	RenderSurface(ctx context.Context, surfaceID string) (string, error)
}

// MaxDepth bounds child recursion so cyclic component references terminate.
// The bound is generous: real surfaces nest a handful of levels.
const MaxDepth = 64
