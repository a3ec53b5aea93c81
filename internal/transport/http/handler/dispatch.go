package handler

import (
	"encoding/json"
	"net/http"

	"github.com/elastiquality/notify-api/internal/application/dispatch"
	"github.com/elastiquality/notify-api/internal/domain"
	"github.com/elastiquality/notify-api/internal/transport/http/middleware"
)

// DispatchHandler exposes the notification dispatch endpoint.
type DispatchHandler struct {
	svc dispatch.Service
}

func NewDispatchHandler(svc dispatch.Service) *DispatchHandler {
	return &DispatchHandler{svc: svc}
}

func (h *DispatchHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.svc.Dispatch(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if out.Skipped {
		writeJSON(w, http.StatusOK, DispatchEnvelope{Skipped: true, Reason: out.Reason})
		return
	}
	writeJSON(w, http.StatusOK, DispatchEnvelope{Success: true})
}
