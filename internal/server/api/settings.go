package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ayusman/airnav/internal/app"
	"github.com/ayusman/airnav/internal/motion"
	"github.com/ayusman/airnav/internal/store"
)

// SettingsHandler reads and updates the persisted tuning. Updates are
// applied to the live engine in the same call.
type SettingsHandler struct {
	app *app.App
}

// NewSettingsHandler creates a SettingsHandler over the given app.
func NewSettingsHandler(a *app.App) *SettingsHandler {
	return &SettingsHandler{app: a}
}

type settingsResponse struct {
	Enabled           bool    `json:"enabled"`
	LumaThreshold     float64 `json:"lumaThreshold"`
	MinChangedSamples int     `json:"minChangedSamples"`
}

type updateSettingRequest struct {
	Value interface{} `json:"value"`
}

func (h *SettingsHandler) current() settingsResponse {
	settings := h.app.Store().Settings()
	return settingsResponse{
		Enabled:           h.app.IsEnabled(),
		LumaThreshold:     settings.GetFloat(store.SettingLumaThreshold, motion.DefaultLumaThreshold),
		MinChangedSamples: settings.GetInt(store.SettingMinChanged, motion.DefaultMinChangedSamples),
	}
}

// List handles GET /api/settings and returns the effective values.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.current())
}

// Update handles PUT /api/settings/{key}. The key must be a known
// setting; the value is validated, applied live and persisted.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req updateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	settings := h.app.Store().Settings()

	switch key {
	case store.SettingEngineEnabled:
		enabled, ok := req.Value.(bool)
		if !ok {
			writeError(w, http.StatusBadRequest, "Value must be a boolean")
			return
		}
		if err := h.app.SetEnabled(enabled); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to start the gesture engine")
			return
		}

	case store.SettingLumaThreshold:
		threshold, ok := req.Value.(float64)
		if !ok || threshold <= 0 || threshold > 255 {
			writeError(w, http.StatusBadRequest, "Value must be a number between 1 and 255")
			return
		}
		if err := settings.SetFloat(store.SettingLumaThreshold, threshold); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
		h.app.Engine().SetLumaThreshold(threshold)

	case store.SettingMinChanged:
		raw, ok := req.Value.(float64)
		if !ok || raw < 1 {
			writeError(w, http.StatusBadRequest, "Value must be a positive number")
			return
		}
		if err := settings.SetInt(store.SettingMinChanged, int(raw)); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
		h.app.Engine().SetMinChanged(int(raw))

	default:
		writeError(w, http.StatusNotFound, "Unknown setting")
		return
	}

	writeJSON(w, http.StatusOK, h.current())
}
