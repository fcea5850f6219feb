package processor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/canopyhq/canopy/internal/logging"
	"github.com/canopyhq/canopy/internal/metrics"
	"github.com/canopyhq/canopy/pkg/datamodel"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/ports"
)

// Processor applies an ordered stream of protocol messages to the surface
// store. Each message is one synchronous, atomic transition; the processor
// never reorders, batches, or deduplicates. Application is serialized by an
// internal mutex so a renderer reading through the store always observes a
// fully applied message.
type Processor struct {
	store  ports.SurfaceStore
	logger *slog.Logger

	mu sync.Mutex

	watchMu  sync.Mutex
	watchers map[chan string]struct{}
}

// Option configures the Processor.
type Option func(*Processor)

// WithLogger configures a structured logger for producer-noise warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// New creates a Processor backed by the given store.
func New(store ports.SurfaceStore, opts ...Option) *Processor {
	p := &Processor{
		store:    store,
		logger:   logging.NewNop(),
		watchers: make(map[chan string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ApplyAll applies messages one at a time, in order. Applying a batch is
// indistinguishable from applying its messages individually.
func (p *Processor) ApplyAll(ctx context.Context, messages []domain.Message) error {
	for _, msg := range messages {
		if err := p.Apply(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// Apply applies a single message. Malformed envelopes (no recognized action)
// are ignored: producers are untrusted and a bad message is noise, not a
// fault. Only store failures are returned.
func (p *Processor) Apply(ctx context.Context, msg domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case msg.BeginRendering != nil:
		return p.handleBeginRendering(ctx, msg.BeginRendering)
	case msg.SurfaceUpdate != nil:
		return p.handleSurfaceUpdate(ctx, msg.SurfaceUpdate)
	case msg.DataModelUpdate != nil:
		return p.handleDataModelUpdate(ctx, msg.DataModelUpdate)
	case msg.DeleteSurface != nil:
		return p.handleDeleteSurface(ctx, msg.DeleteSurface)
	}

	metrics.MessagesIgnored.Inc()
	p.logger.Warn("Ignoring malformed message: no recognized action")
	return nil
}

// handleBeginRendering creates or fully replaces the surface record. This is
// a hard reset, distinct from the incremental surfaceUpdate.
func (p *Processor) handleBeginRendering(ctx context.Context, msg *domain.BeginRendering) error {
	surfaceID := orDefault(msg.SurfaceID)

	surface := domain.NewSurface(surfaceID)
	surface.RootID = msg.Root
	surface.CatalogID = msg.CatalogID
	surface.Styles = msg.Styles

	if err := p.store.Save(ctx, surface); err != nil {
		return fmt.Errorf("failed to save surface %s: %w", surfaceID, err)
	}

	metrics.MessagesApplied.WithLabelValues("beginRendering").Inc()
	p.notify(surfaceID)
	return nil
}

// handleSurfaceUpdate patches individual components, auto-creating the
// surface (preserving nothing to preserve) when it does not exist yet.
func (p *Processor) handleSurfaceUpdate(ctx context.Context, msg *domain.SurfaceUpdate) error {
	surfaceID := orDefault(msg.SurfaceID)

	surface, err := p.loadOrCreate(ctx, surfaceID)
	if err != nil {
		return err
	}

	for _, comp := range msg.Components {
		if comp.ID == "" {
			continue
		}
		if _, err := comp.DecodeCatalog(); err != nil {
			// Stored anyway: validation is advisory, rendering degrades
			// to empty output for records it cannot decode.
			p.logger.Warn("Component properties do not match catalog record",
				"surface_id", surfaceID,
				"component_id", comp.ID,
				"err", err,
			)
		}
		surface.PutComponent(comp)
	}

	if err := p.store.Save(ctx, surface); err != nil {
		return fmt.Errorf("failed to save surface %s: %w", surfaceID, err)
	}

	metrics.MessagesApplied.WithLabelValues("surfaceUpdate").Inc()
	p.notify(surfaceID)
	return nil
}

func (p *Processor) handleDataModelUpdate(ctx context.Context, msg *domain.DataModelUpdate) error {
	surfaceID := orDefault(msg.SurfaceID)

	surface, err := p.loadOrCreate(ctx, surfaceID)
	if err != nil {
		return err
	}

	model := datamodel.FromTree(surface.DataModel)
	model.Update(msg.Path, msg.Contents)
	surface.DataModel = model.Tree()

	if err := p.store.Save(ctx, surface); err != nil {
		return fmt.Errorf("failed to save surface %s: %w", surfaceID, err)
	}

	metrics.MessagesApplied.WithLabelValues("dataModelUpdate").Inc()
	p.notify(surfaceID)
	return nil
}

// handleDeleteSurface removes the surface entirely. No tombstone is kept: a
// deleted id is indistinguishable from a never-seen one, so a later update
// silently recreates a fresh surface.
func (p *Processor) handleDeleteSurface(ctx context.Context, msg *domain.DeleteSurface) error {
	if msg.SurfaceID == "" {
		metrics.MessagesIgnored.Inc()
		p.logger.Warn("Ignoring deleteSurface without surfaceId")
		return nil
	}

	if err := p.store.Delete(ctx, msg.SurfaceID); err != nil {
		return fmt.Errorf("failed to delete surface %s: %w", msg.SurfaceID, err)
	}

	metrics.MessagesApplied.WithLabelValues("deleteSurface").Inc()
	p.notify(msg.SurfaceID)
	return nil
}

func (p *Processor) loadOrCreate(ctx context.Context, surfaceID string) (*domain.Surface, error) {
	surface, err := p.store.Load(ctx, surfaceID)
	if err == nil {
		return surface, nil
	}
	if err != domain.ErrSurfaceNotFound {
		return nil, fmt.Errorf("failed to load surface %s: %w", surfaceID, err)
	}
	return domain.NewSurface(surfaceID), nil
}

// GetSurface returns an isolated snapshot of the surface, or
// domain.ErrSurfaceNotFound.
func (p *Processor) GetSurface(ctx context.Context, surfaceID string) (*domain.Surface, error) {
	return p.store.Load(ctx, surfaceID)
}

// Surfaces returns an isolated snapshot of all surfaces. Mutating the
// returned map or records never affects internal state.
func (p *Processor) Surfaces(ctx context.Context) (map[string]*domain.Surface, error) {
	ids, err := p.store.List(ctx)
	if err != nil {
		return nil, err
	}

	surfaces := make(map[string]*domain.Surface, len(ids))
	for _, id := range ids {
		surface, err := p.store.Load(ctx, id)
		if err != nil {
			if err == domain.ErrSurfaceNotFound {
				// Deleted between List and Load; skip.
				continue
			}
			return nil, err
		}
		surfaces[id] = surface
	}
	return surfaces, nil
}

// DataModel returns an isolated data-model view for the surface. An unknown
// surface yields an empty model, matching the render path's "missing data
// degrades to defaults" behaviour.
func (p *Processor) DataModel(ctx context.Context, surfaceID string) (*datamodel.Model, error) {
	surface, err := p.store.Load(ctx, surfaceID)
	if err != nil {
		if err == domain.ErrSurfaceNotFound {
			return datamodel.New(), nil
		}
		return nil, err
	}
	return datamodel.FromTree(surface.DataModel), nil
}

// Clear resets all surface state. Session reset, not part of the wire
// protocol.
func (p *Processor) Clear(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Clear(ctx)
}

func orDefault(surfaceID string) string {
	if surfaceID == "" {
		return domain.DefaultSurfaceID
	}
	return surfaceID
}
