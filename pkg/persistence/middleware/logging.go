package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.SurfaceStore
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs every store operation
// with its duration. Not-found on Load is logged at debug: renderers probe
// for unknown surfaces as part of normal operation.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.SurfaceStore) ports.SurfaceStore {
		return &loggingMiddleware{
			next:   next,
			logger: logger,
		}
	}
}

func (m *loggingMiddleware) Save(ctx context.Context, surface *domain.Surface) error {
	start := time.Now()
	err := m.next.Save(ctx, surface)
	m.log(ctx, "save", surface.SurfaceID, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, surfaceID string) (*domain.Surface, error) {
	start := time.Now()
	surface, err := m.next.Load(ctx, surfaceID)
	if err == domain.ErrSurfaceNotFound {
		m.logger.DebugContext(ctx, "Surface store operation",
			"op", "load", "surface_id", surfaceID, "duration", time.Since(start), "found", false)
		return surface, err
	}
	m.log(ctx, "load", surfaceID, start, err)
	return surface, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, surfaceID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, surfaceID)
	m.log(ctx, "delete", surfaceID, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return ids, err
}

func (m *loggingMiddleware) Clear(ctx context.Context) error {
	start := time.Now()
	err := m.next.Clear(ctx)
	m.log(ctx, "clear", "", start, err)
	return err
}

func (m *loggingMiddleware) log(ctx context.Context, op, surfaceID string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if surfaceID != "" {
		attrs = append(attrs, "surface_id", surfaceID)
	}
	if err != nil {
		attrs = append(attrs, "err", err)
		m.logger.ErrorContext(ctx, "Surface store operation failed", attrs...)
		return
	}
	m.logger.DebugContext(ctx, "Surface store operation", attrs...)
}
