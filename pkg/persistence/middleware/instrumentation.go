package middleware

import (
	"context"
	"time"

	"github.com/canopyhq/canopy/internal/metrics"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/ports"
)

type instrumentationMiddleware struct {
	next ports.SurfaceStore
}

// NewInstrumentationMiddleware creates a middleware that records Prometheus
// counters and latency histograms for every store operation. A Load miss is
// reported as outcome "not_found", not as an error.
func NewInstrumentationMiddleware() Middleware {
	return func(next ports.SurfaceStore) ports.SurfaceStore {
		return &instrumentationMiddleware{next: next}
	}
}

func (m *instrumentationMiddleware) Save(ctx context.Context, surface *domain.Surface) error {
	start := time.Now()
	err := m.next.Save(ctx, surface)
	observe("save", start, err)
	return err
}

func (m *instrumentationMiddleware) Load(ctx context.Context, surfaceID string) (*domain.Surface, error) {
	start := time.Now()
	surface, err := m.next.Load(ctx, surfaceID)
	if err == domain.ErrSurfaceNotFound {
		metrics.StoreOps.WithLabelValues("load", "not_found").Inc()
		metrics.StoreOpDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
		return surface, err
	}
	observe("load", start, err)
	return surface, err
}

func (m *instrumentationMiddleware) Delete(ctx context.Context, surfaceID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, surfaceID)
	observe("delete", start, err)
	return err
}

func (m *instrumentationMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	observe("list", start, err)
	return ids, err
}

func (m *instrumentationMiddleware) Clear(ctx context.Context) error {
	start := time.Now()
	err := m.next.Clear(ctx)
	observe("clear", start, err)
	return err
}

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.StoreOps.WithLabelValues(op, outcome).Inc()
	metrics.StoreOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
