// Package http exposes the routing app over HTTP so a simulator or a native
// host shell can hand activations over the wire.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is the part of the composition root the bridge drives.
type App interface {
	Open(ctx context.Context, raw string) (domain.Intent, error)
	Continue(ctx context.Context, act domain.Activation) (domain.Intent, error)
	Ready(ctx context.Context) domain.Intent
	Notify(ctx context.Context, ev domain.LifecycleEvent)
	Navigate(ctx context.Context, section, screen string, payload any) error
	States(ctx context.Context) (map[string]string, error)
}

// DeepLinkRequest is the body of POST /links/deep.
type DeepLinkRequest struct {
	URL string `json:"url"`
}

// UniversalLinkRequest is the body of POST /links/universal.
type UniversalLinkRequest struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// LifecycleRequest is the body of POST /lifecycle.
type LifecycleRequest struct {
	Event domain.LifecycleEvent `json:"event"`
}

// NavigateRequest is the body of POST /sections/{section}/navigate.
type NavigateRequest struct {
	Screen string `json:"screen"`
}

// IntentResponse carries a resolved intent, or null with the rejection reason.
type IntentResponse struct {
	Intent *domain.IntentEnvelope `json:"intent"`
	Error  string                 `json:"error,omitempty"`
}

// Server serves the bridge routes.
type Server struct {
	App     App
	Streams *StreamManager
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a bridge for app.
func NewServer(app App, opts ...Option) *Server {
	s := &Server{
		App:     app,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "http")
	s.Streams.logger = s.logger
	return s
}

// NewHandler creates an HTTP handler for app.
func NewHandler(app App, opts ...Option) http.Handler {
	return NewServer(app, opts...).Handler()
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.Health)
	r.Route("/links", func(r chi.Router) {
		r.Post("/deep", s.OpenDeepLink)
		r.Post("/universal", s.ContinueUniversalLink)
	})
	r.Post("/pending/drain", s.DrainPending)
	r.Post("/lifecycle", s.Lifecycle)
	r.Get("/sections", s.Sections)
	r.Post("/sections/{section}/navigate", s.Navigate)
	r.Get("/events", s.SubscribeEvents)
	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// OpenDeepLink handles POST /links/deep.
func (s *Server) OpenDeepLink(w http.ResponseWriter, r *http.Request) {
	var body DeepLinkRequest
	if !s.decode(w, r, &body) {
		return
	}
	in, err := s.App.Open(r.Context(), body.URL)
	s.writeIntent(w, in, err)
}

// ContinueUniversalLink handles POST /links/universal. An omitted type is
// taken as a web browsing handoff.
func (s *Server) ContinueUniversalLink(w http.ResponseWriter, r *http.Request) {
	var body UniversalLinkRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Type == "" {
		body.Type = domain.ActivationBrowsingWeb
	}
	in, err := s.App.Continue(r.Context(), domain.Activation{Type: body.Type, URL: body.URL})
	s.writeIntent(w, in, err)
}

// DrainPending handles POST /pending/drain: the host reports its UI is up.
func (s *Server) DrainPending(w http.ResponseWriter, r *http.Request) {
	s.writeIntent(w, s.App.Ready(r.Context()), nil)
}

// Lifecycle handles POST /lifecycle.
func (s *Server) Lifecycle(w http.ResponseWriter, r *http.Request) {
	var body LifecycleRequest
	if !s.decode(w, r, &body) {
		return
	}
	switch body.Event {
	case domain.LifecycleBecameActive, domain.LifecycleWillResignActive:
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown lifecycle event %q", body.Event))
		return
	}
	s.App.Notify(r.Context(), body.Event)
	w.WriteHeader(http.StatusAccepted)
}

// Sections handles GET /sections.
func (s *Server) Sections(w http.ResponseWriter, r *http.Request) {
	states, err := s.App.States(r.Context())
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, states)
}

// Navigate handles POST /sections/{section}/navigate.
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	var body NavigateRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.App.Navigate(r.Context(), chi.URLParam(r, "section"), body.Screen, nil); err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) writeIntent(w http.ResponseWriter, in domain.Intent, err error) {
	if err != nil {
		status := http.StatusUnprocessableEntity
		var rerr *domain.ResolveError
		if !errors.As(err, &rerr) {
			status = http.StatusInternalServerError
		}
		s.writeJSON(w, status, IntentResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, IntentResponse{Intent: domain.Envelope(in)})
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
