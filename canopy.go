package canopy

import (
	"context"
	"log/slog"

	"github.com/canopyhq/canopy/internal/logging"
	"github.com/canopyhq/canopy/pkg/adapters/memory"
	"github.com/canopyhq/canopy/pkg/datamodel"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/ports"
	"github.com/canopyhq/canopy/pkg/processor"
	"github.com/canopyhq/canopy/pkg/render"
	"github.com/canopyhq/canopy/pkg/render/html"
	"github.com/canopyhq/canopy/pkg/render/markdown"
)

// Engine is the high-level entry point for the Canopy library.
// It wraps the message processor and provides a simplified API for hosts.
type Engine struct {
	processor *processor.Processor
	store     ports.SurfaceStore
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a custom SurfaceStore, bypassing the default in-memory one.
func WithStore(store ports.SurfaceStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Canopy Engine.
// By default it keeps surface state in memory; use WithStore for persistence.
func New(opts ...Option) *Engine {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = memory.New()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.processor = processor.New(eng.store, processor.WithLogger(eng.logger))
	return eng
}

// Apply processes a single protocol message against the surface state.
func (e *Engine) Apply(ctx context.Context, msg domain.Message) error {
	return e.processor.Apply(ctx, msg)
}

// ApplyAll processes an ordered batch of protocol messages.
func (e *Engine) ApplyAll(ctx context.Context, messages []domain.Message) error {
	return e.processor.ApplyAll(ctx, messages)
}

// GetSurface returns a snapshot of one surface.
// Returns domain.ErrSurfaceNotFound for unknown or deleted ids.
func (e *Engine) GetSurface(ctx context.Context, surfaceID string) (*domain.Surface, error) {
	return e.processor.GetSurface(ctx, surfaceID)
}

// Surfaces returns snapshots of all known surfaces, keyed by id.
func (e *Engine) Surfaces(ctx context.Context) (map[string]*domain.Surface, error) {
	return e.processor.Surfaces(ctx)
}

// DataModel returns the data model of one surface. Unknown surfaces yield an
// empty model, mirroring how bindings resolve to defaults.
func (e *Engine) DataModel(ctx context.Context, surfaceID string) (*datamodel.Model, error) {
	return e.processor.DataModel(ctx, surfaceID)
}

// Clear removes all surfaces.
func (e *Engine) Clear(ctx context.Context) error {
	return e.processor.Clear(ctx)
}

// Watch returns a channel that receives the id of every surface a message
// touches. The channel closes when ctx is done.
func (e *Engine) Watch(ctx context.Context) <-chan string {
	return e.processor.Watch(ctx)
}

// Renderers builds the built-in render backends (HTML and Markdown) reading
// from this engine. baseURL rewrites relative image URLs in the HTML backend;
// empty means the default.
func (e *Engine) Renderers(baseURL string) []render.Renderer {
	var htmlOpts []html.Option
	if baseURL != "" {
		htmlOpts = append(htmlOpts, html.WithBaseURL(baseURL))
	}
	return []render.Renderer{
		html.New(e.processor, htmlOpts...),
		markdown.New(e.processor),
	}
}
