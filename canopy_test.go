package canopy_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy"
	"github.com/canopyhq/canopy/pkg/adapters/memory"
	"github.com/canopyhq/canopy/pkg/domain"
)

func helloMessages() []domain.Message {
	return []domain.Message{
		{BeginRendering: &domain.BeginRendering{SurfaceID: "default", Root: "msg"}},
		{SurfaceUpdate: &domain.SurfaceUpdate{SurfaceID: "default", Components: []domain.Component{
			{ID: "msg", Component: map[string]any{"Text": map[string]any{"text": "Hello, world!"}}},
		}}},
	}
}

func TestEngine_ApplyAndRender(t *testing.T) {
	ctx := context.Background()
	eng := canopy.New()

	require.NoError(t, eng.ApplyAll(ctx, helloMessages()))

	for _, renderer := range eng.Renderers("") {
		out, err := renderer.RenderSurface(ctx, "default")
		require.NoError(t, err)
		assert.Contains(t, out, "Hello, world!", "backend %s", renderer.Backend())
	}
}

func TestEngine_WithCustomStore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	eng := canopy.New(canopy.WithStore(store))

	require.NoError(t, eng.ApplyAll(ctx, helloMessages()))

	// The injected store holds the state the engine wrote.
	surface, err := store.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "msg", surface.RootID)
}

func TestEngine_SurfacesAndClear(t *testing.T) {
	ctx := context.Background()
	eng := canopy.New()

	require.NoError(t, eng.ApplyAll(ctx, helloMessages()))

	surfaces, err := eng.Surfaces(ctx)
	require.NoError(t, err)
	assert.Len(t, surfaces, 1)

	require.NoError(t, eng.Clear(ctx))

	surfaces, err = eng.Surfaces(ctx)
	require.NoError(t, err)
	assert.Empty(t, surfaces)
}

func TestEngine_DataModel(t *testing.T) {
	ctx := context.Background()
	eng := canopy.New()

	name := "Ada"
	require.NoError(t, eng.Apply(ctx, domain.Message{
		DataModelUpdate: &domain.DataModelUpdate{SurfaceID: "s", Contents: []domain.DataModelEntry{
			{Key: "name", ValueString: &name},
		}},
	}))

	model, err := eng.DataModel(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "Ada", model.Get("/name", nil))
}

func ExampleNew() {
	eng := canopy.New()
	ctx := context.Background()

	if err := eng.ApplyAll(ctx, []domain.Message{
		{BeginRendering: &domain.BeginRendering{SurfaceID: "default", Root: "hello"}},
		{SurfaceUpdate: &domain.SurfaceUpdate{SurfaceID: "default", Components: []domain.Component{
			{ID: "hello", Component: map[string]any{"Text": map[string]any{"text": "Hello, world!"}}},
		}}},
	}); err != nil {
		panic(err)
	}

	html, _ := eng.Renderers("")[0].RenderSurface(ctx, "default")
	fmt.Println(html)
	// Output: <div class="a2ui-surface"><p class="a2ui-text">Hello, world!</p></div>
}
