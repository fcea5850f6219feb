/*
Package canopy is a message-driven surface state engine for agent-generated
user interfaces, following the A2UI v0.8 streaming protocol.

Agents stream small JSON messages (begin rendering, surface updates, data
model updates, delete surface) and Canopy folds them into per-surface state:
a flat component map, an insertion order, and a path-addressed data model.
Renderers then turn any surface snapshot into HTML or Markdown on demand.

# Concept

Canopy separates state accumulation from presentation. The engine is the
single writer: it applies messages in delivery order, so the same stream
always produces the same surfaces. Renderers are pure readers over snapshots,
which keeps them safe to call at any time, from any number of consumers.

# Key Features

  - Deterministic updates: messages apply in order, malformed ones are skipped without poisoning the stream.
  - Hexagonal architecture: the core is decoupled from storage (memory, Redis) and transports (HTTP, MCP, CLI).
  - Pull-model rendering: views are computed from state when asked, never pushed.
  - Bounded rendering: reference cycles and runaway depth cannot hang a renderer.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/canopyhq/canopy"
		"github.com/canopyhq/canopy/pkg/domain"
	)

	func main() {
		eng := canopy.New()
		ctx := context.Background()

		text := domain.Component{
			ID:        "hello",
			Component: map[string]any{"Text": map[string]any{"text": "Hello, world!"}},
		}
		err := eng.ApplyAll(ctx, []domain.Message{
			{BeginRendering: &domain.BeginRendering{SurfaceID: "default", Root: "hello"}},
			{SurfaceUpdate: &domain.SurfaceUpdate{SurfaceID: "default", Components: []domain.Component{text}}},
		})
		if err != nil {
			log.Fatal(err)
		}

		html, _ := eng.Renderers("")[0].RenderSurface(ctx, "default")
		fmt.Println(html)
	}
*/
package canopy
