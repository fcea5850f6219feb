package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/render"
)

// Engine defines the interface required by the MCP server to interact with
// the canopy core.
type Engine interface {
	ApplyAll(ctx context.Context, messages []domain.Message) error
	GetSurface(ctx context.Context, surfaceID string) (*domain.Surface, error)
	Surfaces(ctx context.Context) (map[string]*domain.Surface, error)
}

// ApplyResponse reports how many messages were applied.
type ApplyResponse struct {
	Applied int `json:"applied" jsonschema_description:"Number of messages applied"`
}

// RenderResponse carries rendered surface output.
type RenderResponse struct {
	SurfaceID string `json:"surfaceId" jsonschema_description:"The rendered surface id"`
	Format    string `json:"format" jsonschema_description:"The output format"`
	Output    string `json:"output" jsonschema_description:"The rendered output; empty if the surface is unknown"`
}

// ListResponse lists the known surface ids.
type ListResponse struct {
	SurfaceIDs []string `json:"surfaceIds" jsonschema_description:"Ids of all known surfaces"`
}

// Server wraps the canopy engine and exposes it as an MCP Server, so agent
// hosts can push UI messages and pull rendered views as tools.
type Server struct {
	engine    Engine
	renderers map[string]render.Renderer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, renderers []render.Renderer, version string) *Server {
	s := &Server{
		engine:    engine,
		renderers: make(map[string]render.Renderer, len(renderers)),
		mcpServer: server.NewMCPServer("canopy-mcp", version),
	}
	for _, r := range renderers {
		s.renderers[r.Backend()] = r
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: apply_messages
	applyTool := mcp.NewTool("apply_messages",
		mcp.WithDescription("Apply an ordered array of A2UI protocol messages to the surface state."),
		mcp.WithString("messages", mcp.Required(), mcp.Description("JSON array of protocol message envelopes")),
		mcp.WithOutputSchema[ApplyResponse](),
	)
	s.mcpServer.AddTool(applyTool, mcp.NewStructuredToolHandler(s.handleApplyMessages))

	// TOOL: render_surface
	renderTool := mcp.NewTool("render_surface",
		mcp.WithDescription("Render the current state of a surface. Unknown surfaces render as empty output."),
		mcp.WithString("surface_id", mcp.Required(), mcp.Description("The surface id to render")),
		mcp.WithString("format", mcp.Description("Output format: 'html' (default) or 'markdown'")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRenderSurface))

	// TOOL: list_surfaces
	listTool := mcp.NewTool("list_surfaces",
		mcp.WithDescription("List the ids of all known surfaces."),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListSurfaces))

	// TOOL: delete_surface
	deleteTool := mcp.NewTool("delete_surface",
		mcp.WithDescription("Delete a surface and all its state. Deleting an unknown id is a no-op."),
		mcp.WithString("surface_id", mcp.Required(), mcp.Description("The surface id to delete")),
		mcp.WithOutputSchema[ApplyResponse](),
	)
	s.mcpServer.AddTool(deleteTool, mcp.NewStructuredToolHandler(s.handleDeleteSurface))
}

// Handler methods for structured tools

func (s *Server) handleApplyMessages(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ApplyResponse, error) {
	raw, _ := args["messages"].(string)

	var messages []domain.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return ApplyResponse{}, fmt.Errorf("invalid messages payload: %w", err)
	}

	if err := s.engine.ApplyAll(ctx, messages); err != nil {
		return ApplyResponse{}, fmt.Errorf("apply failed: %w", err)
	}

	return ApplyResponse{Applied: len(messages)}, nil
}

func (s *Server) handleRenderSurface(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RenderResponse, error) {
	surfaceID, _ := args["surface_id"].(string)
	format, _ := args["format"].(string)
	if format == "" {
		format = "html"
	}

	renderer, ok := s.renderers[format]
	if !ok {
		return RenderResponse{}, fmt.Errorf("unknown format %q", format)
	}

	out, err := renderer.RenderSurface(ctx, surfaceID)
	if err != nil {
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}

	return RenderResponse{
		SurfaceID: surfaceID,
		Format:    format,
		Output:    out,
	}, nil
}

func (s *Server) handleListSurfaces(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	surfaces, err := s.engine.Surfaces(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}

	ids := make([]string, 0, len(surfaces))
	for id := range surfaces {
		ids = append(ids, id)
	}
	return ListResponse{SurfaceIDs: ids}, nil
}

func (s *Server) handleDeleteSurface(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ApplyResponse, error) {
	surfaceID, _ := args["surface_id"].(string)
	if surfaceID == "" {
		return ApplyResponse{}, fmt.Errorf("surface_id is required")
	}

	err := s.engine.ApplyAll(ctx, []domain.Message{
		{DeleteSurface: &domain.DeleteSurface{SurfaceID: surfaceID}},
	})
	if err != nil {
		return ApplyResponse{}, fmt.Errorf("delete failed: %w", err)
	}
	return ApplyResponse{Applied: 1}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: canopy://surfaces
	s.mcpServer.AddResource(mcp.NewResource("canopy://surfaces", "Current Surface State",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		surfaces, err := s.engine.Surfaces(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot surfaces: %w", err)
		}
		jsonBytes, _ := json.Marshal(surfaces)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "canopy://surfaces",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
