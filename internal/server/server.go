// Package server provides the HTTP control surface for airnav: status,
// settings, recorded events, the route map, the working-buffer preview
// stream and the websocket bridge to the hosting UI.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ayusman/airnav/internal/app"
	"github.com/ayusman/airnav/internal/server/api"
)

// Config holds the server configuration. Every field besides the
// router is optional; endpoints register only when their collaborator
// is present.
type Config struct {
	StaticDir string
	App       *app.App
	Bridge    *Bridge
}

// Server is the HTTP server for the airnav control surface.
type Server struct {
	config Config
	router *mux.Router
	start  time.Time
}

// New creates a Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		router: mux.NewRouter(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	if s.config.App != nil {
		statusHandler := api.NewStatusHandler(s.config.App)
		settingsHandler := api.NewSettingsHandler(s.config.App)
		eventsHandler := api.NewEventsHandler(s.config.App.Store())
		routesHandler := api.NewRoutesHandler(s.config.App)

		s.router.HandleFunc("/api/status", statusHandler.Get).Methods(http.MethodGet)
		s.router.HandleFunc("/api/settings", settingsHandler.List).Methods(http.MethodGet)
		s.router.HandleFunc("/api/settings/{key}", settingsHandler.Update).Methods(http.MethodPut)
		s.router.HandleFunc("/api/events", eventsHandler.List).Methods(http.MethodGet)
		s.router.HandleFunc("/api/routes", routesHandler.List).Methods(http.MethodGet)

		previewHandler := NewPreviewHandler(s.config.App.Engine())
		s.router.Handle("/api/preview", previewHandler).Methods(http.MethodGet)
	}

	if s.config.Bridge != nil {
		s.router.Handle("/api/bridge", s.config.Bridge)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.router.PathPrefix("/").Handler(fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
