package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/adapters/memory"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/persistence/middleware"
	"github.com/canopyhq/canopy/pkg/ports"
)

// Wrapped stores must still satisfy the full store contract.
func TestLoggingMiddleware_Contract(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	store := middleware.NewLoggingMiddleware(logger)(memory.New())
	ports.RunSurfaceStoreContract(t, store)
}

func TestInstrumentationMiddleware_Contract(t *testing.T) {
	store := middleware.NewInstrumentationMiddleware()(memory.New())
	ports.RunSurfaceStoreContract(t, store)
}

func TestLoggingMiddleware_LogsOperations(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := middleware.NewLoggingMiddleware(logger)(memory.New())

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.NewSurface("logged")))

	out := buf.String()
	assert.Contains(t, out, "op=save")
	assert.Contains(t, out, "surface_id=logged")
}

func TestChain_OrderAndDelegation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.Chain(memory.New(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewInstrumentationMiddleware(),
	)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.NewSurface("chained")))

	loaded, err := store.Load(ctx, "chained")
	require.NoError(t, err)
	assert.Equal(t, "chained", loaded.SurfaceID)
	assert.Contains(t, buf.String(), "op=save")
}
