package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/canopyhq/canopy/internal/logging"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/render"
	htmlrender "github.com/canopyhq/canopy/pkg/render/html"
)

// Engine defines the interface the HTTP adapter needs from the canopy core.
type Engine interface {
	ApplyAll(ctx context.Context, messages []domain.Message) error
	GetSurface(ctx context.Context, surfaceID string) (*domain.Surface, error)
	Surfaces(ctx context.Context) (map[string]*domain.Surface, error)
	Clear(ctx context.Context) error
	Watch(ctx context.Context) <-chan string
}

// Server exposes the message stream and the pull-model render API over HTTP.
type Server struct {
	engine    Engine
	renderers map[string]render.Renderer
	logger    *slog.Logger

	staticDir  string
	corsOrigin string
}

// Option configures the Server.
type Option func(*Server)

// WithStaticDir serves files from dir at the root path (client assets,
// sample images referenced by relative URLs).
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// WithCORSOrigin sets the Access-Control-Allow-Origin header value.
// Defaults to "*": the reference clients are browser apps on other ports.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithLogger configures a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the engine and renderers.
func NewHandler(engine Engine, renderers []render.Renderer, opts ...Option) http.Handler {
	s := &Server{
		engine:     engine,
		renderers:  make(map[string]render.Renderer, len(renderers)),
		logger:     logging.NewNop(),
		corsOrigin: "*",
	}
	for _, r := range renderers {
		s.renderers[r.Backend()] = r
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.corsMiddleware)

	r.Get("/healthz", s.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v0", func(r chi.Router) {
		r.Post("/messages", s.PostMessages)
		r.Post("/reset", s.Reset)
		r.Get("/surfaces", s.ListSurfaces)
		r.Get("/surfaces/{surfaceID}", s.GetSurface)
		r.Get("/surfaces/{surfaceID}/view", s.RenderSurface)
		r.Get("/events", s.SubscribeEvents)
		r.Get("/styles.css", s.Styles)
	})

	if s.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.staticDir)))
	}

	return r
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// PostMessages handles POST /v0/messages: an ordered array of protocol
// envelopes, applied in delivery order.
func (s *Server) PostMessages(w http.ResponseWriter, r *http.Request) {
	var messages []domain.Message
	if err := json.NewDecoder(r.Body).Decode(&messages); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.engine.ApplyAll(r.Context(), messages); err != nil {
		s.logger.Error("Failed to apply messages", "err", err)
		http.Error(w, "Failed to apply messages", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, map[string]any{"applied": len(messages)})
}

// Reset handles POST /v0/reset (session reset, not part of the wire protocol).
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Clear(r.Context()); err != nil {
		s.logger.Error("Failed to reset surfaces", "err", err)
		http.Error(w, "Failed to reset surfaces", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSurfaces handles GET /v0/surfaces.
func (s *Server) ListSurfaces(w http.ResponseWriter, r *http.Request) {
	surfaces, err := s.engine.Surfaces(r.Context())
	if err != nil {
		s.logger.Error("Failed to list surfaces", "err", err)
		http.Error(w, "Failed to list surfaces", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, surfaces)
}

// GetSurface handles GET /v0/surfaces/{surfaceID}: the raw surface record,
// for introspection/debug UIs showing state next to rendered output.
func (s *Server) GetSurface(w http.ResponseWriter, r *http.Request) {
	surfaceID := chi.URLParam(r, "surfaceID")

	surface, err := s.engine.GetSurface(r.Context(), surfaceID)
	if err != nil {
		if err == domain.ErrSurfaceNotFound {
			http.Error(w, "Surface not found", http.StatusNotFound)
			return
		}
		s.logger.Error("Failed to load surface", "surface_id", surfaceID, "err", err)
		http.Error(w, "Failed to load surface", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, surface)
}

// RenderSurface handles GET /v0/surfaces/{surfaceID}/view?format=html.
// Rendering is on demand; an unknown surface yields an empty body, matching
// the renderer contract.
func (s *Server) RenderSurface(w http.ResponseWriter, r *http.Request) {
	surfaceID := chi.URLParam(r, "surfaceID")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown format %q", format), http.StatusBadRequest)
		return
	}

	out, err := renderer.RenderSurface(r.Context(), surfaceID)
	if err != nil {
		s.logger.Error("Render failed", "surface_id", surfaceID, "format", format, "err", err)
		http.Error(w, "Render failed", http.StatusInternalServerError)
		return
	}

	switch format {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	fmt.Fprint(w, out)
}

// SubscribeEvents handles GET /v0/events (SSE). Each event carries the id
// of a surface a message touched; consumers re-fetch the view they care
// about.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events := s.engine.Watch(r.Context())

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case surfaceID, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: surface\ndata: %s\n\n", surfaceID)
			flusher.Flush()
		}
	}
}

// Styles handles GET /v0/styles.css: the default component stylesheet.
func (s *Server) Styles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	fmt.Fprint(w, htmlrender.CSS())
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "err", err)
	}
}
