package api

import (
	"net/http"
	"strconv"

	"github.com/ayusman/airnav/internal/store"
)

// EventsHandler serves the recorded gesture history.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates an EventsHandler over the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

type listEventsResponse struct {
	Events []*store.GestureEvent `json:"events"`
}

// List handles GET /api/events, newest first. An optional limit query
// parameter caps the result.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Limit must be a positive integer")
			return
		}
		limit = n
	}

	events, err := h.store.Events().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	writeJSON(w, http.StatusOK, listEventsResponse{Events: events})
}
