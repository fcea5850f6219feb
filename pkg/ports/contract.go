package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/domain"
)

// RunSurfaceStoreContract runs a suite of tests to verify that a
// SurfaceStore implementation adheres to the defined interface contract.
func RunSurfaceStoreContract(t *testing.T, store SurfaceStore) {
	ctx := context.Background()
	surfaceID := "contract-test-surface-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		surface := domain.NewSurface(surfaceID)
		surface.RootID = "root"
		surface.PutComponent(domain.Component{
			ID:        "root",
			Component: map[string]any{"Text": map[string]any{"text": "hello"}},
		})
		surface.DataModel["name"] = "Rose"

		err := store.Save(ctx, surface)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, surfaceID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, surfaceID, loaded.SurfaceID)
		assert.Equal(t, "root", loaded.RootID)
		assert.Equal(t, []string{"root"}, loaded.Order)
		assert.Equal(t, "Rose", loaded.DataModel["name"])
		if assert.Contains(t, loaded.Components, "root") {
			name, props := loaded.Components["root"].Type()
			assert.Equal(t, domain.TypeText, name)
			assert.Equal(t, "hello", props["text"])
		}
	})

	t.Run("Load Isolation", func(t *testing.T) {
		loaded, err := store.Load(ctx, surfaceID)
		require.NoError(t, err)

		// Mutating a loaded copy must not leak into the store.
		loaded.DataModel["name"] = "tampered"
		loaded.PutComponent(domain.Component{ID: "extra", Component: map[string]any{"Divider": map[string]any{}}})

		fresh, err := store.Load(ctx, surfaceID)
		require.NoError(t, err)
		assert.Equal(t, "Rose", fresh.DataModel["name"])
		assert.NotContains(t, fresh.Components, "extra")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+surfaceID)
		assert.ErrorIs(t, err, domain.ErrSurfaceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, domain.NewSurface(surfaceID))
		require.NoError(t, err)

		err = store.Delete(ctx, surfaceID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, surfaceID)
		assert.ErrorIs(t, err, domain.ErrSurfaceNotFound, "Load after Delete should return ErrSurfaceNotFound")

		// Deleting an unknown id is a no-op, not an error.
		assert.NoError(t, store.Delete(ctx, surfaceID))
	})

	t.Run("List and Clear", func(t *testing.T) {
		id1 := surfaceID + "-1"
		id2 := surfaceID + "-2"
		require.NoError(t, store.Save(ctx, domain.NewSurface(id1)))
		require.NoError(t, store.Save(ctx, domain.NewSurface(id2)))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)

		require.NoError(t, store.Clear(ctx))

		ids, err = store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, id1)
		assert.NotContains(t, ids, id2)
	})
}
