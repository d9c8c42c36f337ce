package api

import (
	"net/http"

	"github.com/ayusman/airnav/internal/app"
	"github.com/ayusman/airnav/internal/nav"
)

// RoutesHandler exposes the swipe adjacency table and the screen the
// dispatcher currently believes is active.
type RoutesHandler struct {
	app *app.App
}

// NewRoutesHandler creates a RoutesHandler over the given app.
func NewRoutesHandler(a *app.App) *RoutesHandler {
	return &RoutesHandler{app: a}
}

type routesResponse struct {
	Current nav.Route `json:"current"`
	Routes  nav.Map   `json:"routes"`
}

// List handles GET /api/routes.
func (h *RoutesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, routesResponse{
		Current: h.app.Dispatcher().Route(),
		Routes:  h.app.Dispatcher().Routes(),
	})
}
