package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/adapters/memory"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/processor"
	"github.com/canopyhq/canopy/pkg/render/html"
)

func strPtr(s string) *string { return &s }

func component(id, typeName string, props map[string]any) domain.Component {
	return domain.Component{
		ID:        id,
		Component: map[string]any{typeName: props},
	}
}

// newSource applies the messages to a fresh engine and returns it as a
// render source.
func newSource(t *testing.T, messages []domain.Message) *processor.Processor {
	t.Helper()
	p := processor.New(memory.New())
	require.NoError(t, p.ApplyAll(context.Background(), messages))
	return p
}

func contactCardMessages() []domain.Message {
	return []domain.Message{
		{BeginRendering: &domain.BeginRendering{SurfaceID: "default", Root: "card"}},
		{SurfaceUpdate: &domain.SurfaceUpdate{SurfaceID: "default", Components: []domain.Component{
			component("title", domain.TypeHeading, map[string]any{"text": "Contact", "level": 1}),
			component("name", domain.TypeText, map[string]any{"text": map[string]any{"path": "/contact/name"}}),
			component("avatar", domain.TypeImage, map[string]any{"url": "/img/rose.png", "alt": "Portrait of Rose"}),
			component("actions", domain.TypeRow, map[string]any{"children": map[string]any{"explicitList": []any{"call", "nope"}}}),
			component("call", domain.TypeButton, map[string]any{"label": "Call now"}),
			component("sep", domain.TypeDivider, map[string]any{}),
			component("card", domain.TypeColumn, map[string]any{"children": map[string]any{"explicitList": []any{"title", "name", "avatar", "actions", "sep"}}}),
		}}},
		{DataModelUpdate: &domain.DataModelUpdate{SurfaceID: "default", Contents: []domain.DataModelEntry{
			{Key: "contact", ValueMap: []domain.DataModelEntry{{Key: "name", ValueString: strPtr("Rose")}}},
		}}},
	}
}

func TestRenderer_ContactCardGolden(t *testing.T) {
	source := newSource(t, contactCardMessages())
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), "default")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "contact_card", []byte(out))
}

func TestRenderer_IsIdempotent(t *testing.T) {
	source := newSource(t, contactCardMessages())
	r := html.New(source)

	first, err := r.RenderSurface(context.Background(), "default")
	require.NoError(t, err)
	second, err := r.RenderSurface(context.Background(), "default")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderer_UnknownSurfaceRendersEmpty(t *testing.T) {
	source := newSource(t, nil)
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderer_EmptySurface(t *testing.T) {
	source := newSource(t, []domain.Message{
		{BeginRendering: &domain.BeginRendering{SurfaceID: "bare"}},
	})
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), "bare")
	require.NoError(t, err)
	assert.Equal(t, `<div class="a2ui-surface"></div>`, out)
}

func TestRenderer_TextUsageHint(t *testing.T) {
	source := newSource(t, []domain.Message{
		{SurfaceUpdate: &domain.SurfaceUpdate{Components: []domain.Component{
			component("t", domain.TypeText, map[string]any{"text": "Section", "usageHint": "h3"}),
		}}},
	})
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), domain.DefaultSurfaceID)
	require.NoError(t, err)
	assert.Contains(t, out, `<p class="a2ui-title">Section</p>`)
}

func TestRenderer_EscapesUntrustedText(t *testing.T) {
	source := newSource(t, []domain.Message{
		{SurfaceUpdate: &domain.SurfaceUpdate{Components: []domain.Component{
			component("t", domain.TypeText, map[string]any{"text": `<script>alert("x")</script>`}),
		}}},
	})
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), domain.DefaultSurfaceID)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderer_HeadingLevelClamped(t *testing.T) {
	source := newSource(t, []domain.Message{
		{SurfaceUpdate: &domain.SurfaceUpdate{Components: []domain.Component{
			component("deep", domain.TypeHeading, map[string]any{"text": "Deep", "level": 9}),
			component("zero", domain.TypeHeading, map[string]any{"text": "Zero"}),
		}}},
	})
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), domain.DefaultSurfaceID)
	require.NoError(t, err)
	assert.Contains(t, out, `<h6 class="a2ui-heading">Deep</h6>`)
	assert.Contains(t, out, `<h2 class="a2ui-heading">Zero</h2>`, "missing level defaults to 2")
}

func TestRenderer_ImageBaseURLRewrite(t *testing.T) {
	source := newSource(t, []domain.Message{
		{SurfaceUpdate: &domain.SurfaceUpdate{Components: []domain.Component{
			component("rel", domain.TypeImage, map[string]any{"url": "/a.png", "alt": "a"}),
			component("abs", domain.TypeImage, map[string]any{"url": "https://cdn.example.com/b.png", "alt": "b"}),
		}}},
	})
	r := html.New(source, html.WithBaseURL("https://surfaces.example.com/"))

	out, err := r.RenderSurface(context.Background(), domain.DefaultSurfaceID)
	require.NoError(t, err)
	assert.Contains(t, out, `src="https://surfaces.example.com/a.png"`)
	assert.Contains(t, out, `src="https://cdn.example.com/b.png"`, "absolute URLs pass through")
}

func TestRenderer_ButtonDefaultLabel(t *testing.T) {
	source := newSource(t, []domain.Message{
		{SurfaceUpdate: &domain.SurfaceUpdate{Components: []domain.Component{
			component("b", domain.TypeButton, map[string]any{}),
		}}},
	})
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), domain.DefaultSurfaceID)
	require.NoError(t, err)
	assert.Contains(t, out, `<button class="a2ui-button">Button</button>`)
}

func TestRenderer_UnknownComponentTypeRendersNothing(t *testing.T) {
	source := newSource(t, []domain.Message{
		{SurfaceUpdate: &domain.SurfaceUpdate{Components: []domain.Component{
			component("v", "VideoPlayer", map[string]any{"url": "x"}),
			component("t", domain.TypeText, map[string]any{"text": "still here"}),
		}}},
	})
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), domain.DefaultSurfaceID)
	require.NoError(t, err)
	assert.Equal(t, `<div class="a2ui-surface"><p class="a2ui-text">still here</p></div>`, out)
}

func TestRenderer_CycleTerminates(t *testing.T) {
	source := newSource(t, []domain.Message{
		{SurfaceUpdate: &domain.SurfaceUpdate{Components: []domain.Component{
			component("a", domain.TypeRow, map[string]any{"children": map[string]any{"explicitList": []any{"b"}}}),
			component("b", domain.TypeRow, map[string]any{"children": map[string]any{"explicitList": []any{"a"}}}),
		}}},
	})
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), domain.DefaultSurfaceID)
	require.NoError(t, err)
	// Each top-level walk stops when it would revisit an active ancestor.
	assert.Equal(t, `<div class="a2ui-surface"><div class="a2ui-row"><div class="a2ui-row"></div></div><div class="a2ui-row"><div class="a2ui-row"></div></div></div>`, out)
}

func TestRenderer_SharedChildRendersUnderEachParent(t *testing.T) {
	source := newSource(t, []domain.Message{
		{SurfaceUpdate: &domain.SurfaceUpdate{Components: []domain.Component{
			component("shared", domain.TypeText, map[string]any{"text": "x"}),
			component("left", domain.TypeCard, map[string]any{"child": "shared"}),
			component("right", domain.TypeCard, map[string]any{"child": "shared"}),
		}}},
	})
	r := html.New(source)

	out, err := r.RenderSurface(context.Background(), domain.DefaultSurfaceID)
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="a2ui-card"><p class="a2ui-text">x</p></div><div class="a2ui-card"><p class="a2ui-text">x</p></div>`)
}

func TestRenderer_RenderAll_SortedBySurfaceID(t *testing.T) {
	source := newSource(t, []domain.Message{
		{SurfaceUpdate: &domain.SurfaceUpdate{SurfaceID: "zeta", Components: []domain.Component{
			component("t", domain.TypeText, map[string]any{"text": "last"}),
		}}},
		{SurfaceUpdate: &domain.SurfaceUpdate{SurfaceID: "alpha", Components: []domain.Component{
			component("t", domain.TypeText, map[string]any{"text": "first"}),
		}}},
	})
	r := html.New(source)

	out, err := r.RenderAll(context.Background())
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "last"))
}

func TestCSS_ContainsComponentClasses(t *testing.T) {
	css := html.CSS()
	for _, class := range []string{".a2ui-surface", ".a2ui-card", ".a2ui-row", ".a2ui-button"} {
		assert.Contains(t, css, class)
	}
}
