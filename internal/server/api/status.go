// Package api provides the HTTP handlers for the airnav control
// surface: status, settings, recorded events and the route map.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/airnav/internal/app"
)

// StatusHandler reports the combined engine and app state.
type StatusHandler struct {
	app *app.App
}

// NewStatusHandler creates a StatusHandler over the given app.
func NewStatusHandler(a *app.App) *StatusHandler {
	return &StatusHandler{app: a}
}

// Get handles GET /api/status.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Status())
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
