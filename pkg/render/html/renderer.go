package html

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/canopyhq/canopy/internal/metrics"
	"github.com/canopyhq/canopy/pkg/datamodel"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/render"
)

// DefaultButtonLabel is used when a button carries no resolvable label.
const DefaultButtonLabel = "Button"

// Renderer is the reference HTML backend.
//
// It renders every component currently in the surface's map, in insertion
// order, not only those reachable from rootId. The root is advisory: some
// producers omit it or reference components only transitively, and the
// reference behaviour is to show everything. Root-first traversal would
// silently drop components never attached to the root.
type Renderer struct {
	source  render.SurfaceSource
	baseURL string
}

// Option configures the Renderer.
type Option func(*Renderer)

// WithBaseURL sets the base used to rewrite site-relative image URLs.
// Absolute URLs always pass through unchanged.
func WithBaseURL(baseURL string) Option {
	return func(r *Renderer) {
		r.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// New creates an HTML renderer reading from the given source.
func New(source render.SurfaceSource, opts ...Option) *Renderer {
	r := &Renderer{
		source:  source,
		baseURL: "http://localhost:10004",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Backend implements render.Renderer.
func (r *Renderer) Backend() string { return "html" }

// RenderSurface renders one surface to an HTML fragment. An unknown surface
// renders as the empty string. Output is pure: the same surface state
// always produces identical HTML.
func (r *Renderer) RenderSurface(ctx context.Context, surfaceID string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.RenderDuration.WithLabelValues("html").Observe(time.Since(start).Seconds())
		metrics.RendersTotal.WithLabelValues("html").Inc()
	}()

	surface, err := r.source.GetSurface(ctx, surfaceID)
	if err != nil {
		if err == domain.ErrSurfaceNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to load surface %s: %w", surfaceID, err)
	}

	return r.renderSurface(surface), nil
}

// RenderAll renders every surface, concatenated in lexicographic surface-id
// order (surface ids carry no global ordering on the wire).
func (r *Renderer) RenderAll(ctx context.Context) (string, error) {
	surfaces, err := r.source.Surfaces(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list surfaces: %w", err)
	}

	ids := make([]string, 0, len(surfaces))
	for id := range surfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(r.renderSurface(surfaces[id]))
	}
	return b.String(), nil
}

func (r *Renderer) renderSurface(surface *domain.Surface) string {
	model := datamodel.FromTree(surface.DataModel)

	var b strings.Builder
	b.WriteString(`<div class="a2ui-surface">`)
	for _, id := range surface.Order {
		comp, ok := surface.Components[id]
		if !ok {
			continue
		}
		b.WriteString(r.renderComponent(comp, surface.Components, model, newWalk()))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// walk tracks the active render path so cyclic references terminate. The
// visited set is path-scoped: a shared child may appear under many parents,
// but never under itself.
type walk struct {
	active map[string]bool
	depth  int
}

func newWalk() *walk {
	return &walk{active: make(map[string]bool)}
}

func (w *walk) enter(id string) bool {
	if w.depth >= render.MaxDepth || w.active[id] {
		return false
	}
	w.active[id] = true
	w.depth++
	return true
}

func (w *walk) leave(id string) {
	delete(w.active, id)
	w.depth--
}

func (r *Renderer) renderComponent(comp domain.Component, components map[string]domain.Component, model *datamodel.Model, w *walk) string {
	if !w.enter(comp.ID) {
		return ""
	}
	defer w.leave(comp.ID)

	record, err := comp.DecodeCatalog()
	if err != nil {
		return ""
	}

	switch props := record.(type) {
	case domain.TextProps:
		return r.renderText(props, model)
	case domain.HeadingProps:
		return r.renderHeading(props, model)
	case domain.ImageProps:
		return r.renderImage(props, model)
	case domain.CardProps:
		return r.renderCard(props, components, model, w)
	case domain.RowProps:
		return r.renderContainer("a2ui-row", props.Children, components, model, w)
	case domain.ColumnProps:
		return r.renderContainer("a2ui-column", props.Children, components, model, w)
	case domain.ListProps:
		return r.renderContainer("a2ui-list", props.Children, components, model, w)
	case domain.ButtonProps:
		return r.renderButton(props, model)
	case domain.DividerProps:
		return `<hr class="a2ui-divider" />`
	}

	// Unknown catalog entry: tolerated, renders nothing.
	return ""
}

func (r *Renderer) renderText(props domain.TextProps, model *datamodel.Model) string {
	text := html.EscapeString(model.Resolve(props.Text, ""))
	cssClass := "a2ui-text"
	if props.UsageHint == "h3" {
		cssClass = "a2ui-title"
	}
	return fmt.Sprintf(`<p class="%s">%s</p>`, cssClass, text)
}

func (r *Renderer) renderHeading(props domain.HeadingProps, model *datamodel.Model) string {
	text := html.EscapeString(model.Resolve(props.Text, ""))
	level := props.Level
	if level == 0 {
		level = 2
	}
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return fmt.Sprintf(`<h%d class="a2ui-heading">%s</h%d>`, level, text, level)
}

func (r *Renderer) renderImage(props domain.ImageProps, model *datamodel.Model) string {
	url := model.Resolve(props.URL, "")
	alt := html.EscapeString(model.Resolve(props.Alt, ""))

	if strings.HasPrefix(url, "/") {
		url = r.baseURL + url
	}

	return fmt.Sprintf(`<img src="%s" alt="%s" class="a2ui-image" />`, html.EscapeString(url), alt)
}

func (r *Renderer) renderCard(props domain.CardProps, components map[string]domain.Component, model *datamodel.Model, w *walk) string {
	childHTML := ""
	if child, ok := components[props.Child]; ok {
		childHTML = r.renderComponent(child, components, model, w)
	}
	return fmt.Sprintf(`<div class="a2ui-card">%s</div>`, childHTML)
}

func (r *Renderer) renderContainer(cssClass string, children domain.ChildrenRef, components map[string]domain.Component, model *datamodel.Model, w *walk) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s">`, cssClass)
	for _, childID := range children.ExplicitList {
		child, ok := components[childID]
		if !ok {
			// Missing reference: renders as nothing, present children keep
			// their listed order.
			continue
		}
		b.WriteString(r.renderComponent(child, components, model, w))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (r *Renderer) renderButton(props domain.ButtonProps, model *datamodel.Model) string {
	label := html.EscapeString(model.Resolve(props.Label, DefaultButtonLabel))
	return fmt.Sprintf(`<button class="a2ui-button">%s</button>`, label)
}
