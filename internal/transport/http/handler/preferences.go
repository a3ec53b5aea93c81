package handler

import (
	"encoding/json"
	"net/http"

	"github.com/elastiquality/notify-api/internal/application/preference"
	"github.com/elastiquality/notify-api/internal/domain"
	"github.com/elastiquality/notify-api/internal/transport/http/middleware"
)

// PreferenceHandler handles the caller's own notification preferences.
type PreferenceHandler struct {
	svc preference.Service
}

func NewPreferenceHandler(svc preference.Service) *PreferenceHandler {
	return &PreferenceHandler{svc: svc}
}

func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	prefs, err := h.svc.Get(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *PreferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var prefs domain.NotificationPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	merged, err := h.svc.Update(r.Context(), claims.UserID, prefs)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, merged)
}
