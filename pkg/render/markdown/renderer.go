package markdown

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/canopyhq/canopy/internal/metrics"
	"github.com/canopyhq/canopy/pkg/datamodel"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/render"
)

// Renderer is a Markdown backend, mainly used by the CLI for terminal
// previews (the output feeds glamour). It follows the same contract as the
// HTML reference renderer: flat-map rendering in insertion order, bounded
// recursion, empty output for unknown surfaces.
type Renderer struct {
	source render.SurfaceSource
}

// New creates a Markdown renderer reading from the given source.
func New(source render.SurfaceSource) *Renderer {
	return &Renderer{source: source}
}

// Backend implements render.Renderer.
func (r *Renderer) Backend() string { return "markdown" }

// RenderSurface renders one surface to Markdown.
func (r *Renderer) RenderSurface(ctx context.Context, surfaceID string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.RenderDuration.WithLabelValues("markdown").Observe(time.Since(start).Seconds())
		metrics.RendersTotal.WithLabelValues("markdown").Inc()
	}()

	surface, err := r.source.GetSurface(ctx, surfaceID)
	if err != nil {
		if err == domain.ErrSurfaceNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to load surface %s: %w", surfaceID, err)
	}

	model := datamodel.FromTree(surface.DataModel)

	var b strings.Builder
	for _, id := range surface.Order {
		comp, ok := surface.Components[id]
		if !ok {
			continue
		}
		b.WriteString(r.renderComponent(comp, surface.Components, model, make(map[string]bool), 0))
	}
	return b.String(), nil
}

func (r *Renderer) renderComponent(comp domain.Component, components map[string]domain.Component, model *datamodel.Model, active map[string]bool, depth int) string {
	if depth >= render.MaxDepth || active[comp.ID] {
		return ""
	}
	active[comp.ID] = true
	defer delete(active, comp.ID)

	record, err := comp.DecodeCatalog()
	if err != nil {
		return ""
	}

	switch props := record.(type) {
	case domain.TextProps:
		text := model.Resolve(props.Text, "")
		if props.UsageHint == "h3" {
			return "**" + text + "**\n\n"
		}
		return text + "\n\n"
	case domain.HeadingProps:
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
		return strings.Repeat("#", level) + " " + model.Resolve(props.Text, "") + "\n\n"
	case domain.ImageProps:
		url := model.Resolve(props.URL, "")
		alt := model.Resolve(props.Alt, "")
		return fmt.Sprintf("![%s](%s)\n\n", alt, url)
	case domain.CardProps:
		child, ok := components[props.Child]
		if !ok {
			return ""
		}
		return quote(r.renderComponent(child, components, model, active, depth+1))
	case domain.RowProps:
		return r.renderChildren(props.Children, components, model, active, depth)
	case domain.ColumnProps:
		return r.renderChildren(props.Children, components, model, active, depth)
	case domain.ListProps:
		var b strings.Builder
		for _, childID := range props.Children.ExplicitList {
			child, ok := components[childID]
			if !ok {
				continue
			}
			item := strings.TrimRight(r.renderComponent(child, components, model, active, depth+1), "\n")
			if item == "" {
				continue
			}
			b.WriteString("- " + strings.ReplaceAll(item, "\n", " ") + "\n")
		}
		if b.Len() == 0 {
			return ""
		}
		return b.String() + "\n"
	case domain.ButtonProps:
		return "`[ " + model.Resolve(props.Label, "Button") + " ]`\n\n"
	case domain.DividerProps:
		return "---\n\n"
	}

	return ""
}

func (r *Renderer) renderChildren(children domain.ChildrenRef, components map[string]domain.Component, model *datamodel.Model, active map[string]bool, depth int) string {
	var b strings.Builder
	for _, childID := range children.ExplicitList {
		child, ok := components[childID]
		if !ok {
			continue
		}
		b.WriteString(r.renderComponent(child, components, model, active, depth+1))
	}
	return b.String()
}

// quote prefixes each non-empty line with "> " (Markdown blockquote).
func quote(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n") + "\n\n"
}
