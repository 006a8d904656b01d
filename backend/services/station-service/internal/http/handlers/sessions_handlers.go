package handlers

import (
	"math"
	"net/http"

	"go.uber.org/zap"

	"evstation/backend/services/station-service/internal/models"
	"evstation/backend/services/station-service/internal/service"
)

const (
	msgSessionNotFound = "EV Session not found"
	msgChargerNotFound = "Charger not found"
)

// SessionsHandlers serves the session list and owner actions.
type SessionsHandlers struct {
	svc    *service.StationService
	logger *zap.Logger
}

// NewSessionsHandlers returns handler set.
func NewSessionsHandlers(svc *service.StationService, logger *zap.Logger) *SessionsHandlers {
	return &SessionsHandlers{svc: svc, logger: logger}
}

type actionResponse struct {
	Message string                 `json:"message"`
	Session models.ChargingSession `json:"session"`
	NewLog  models.AILogEntry      `json:"newLog"`
}

// List handles GET /api/sessions.
func (h *SessionsHandlers) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetSessions())
}

// SetPriority handles POST /api/sessions/priority.
func (h *SessionsHandlers) SetPriority(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	evID, ok := fields.String("evId")
	if !ok {
		writeError(w, http.StatusNotFound, msgSessionNotFound)
		return
	}

	result, err := h.svc.SetPriority(r.Context(), evID, models.Priority(fields.Text("newPriority")))
	if err != nil {
		h.fail(w, err, msgSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{
		Message: "Priority updated successfully",
		Session: result.Session,
		NewLog:  result.Log,
	})
}

// ToggleAI handles POST /api/sessions/toggle-ai.
func (h *SessionsHandlers) ToggleAI(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chargerID, ok := chargerNumber(fields["chargerId"])
	if !ok {
		writeError(w, http.StatusNotFound, msgChargerNotFound)
		return
	}

	result, err := h.svc.ToggleAI(r.Context(), chargerID)
	if err != nil {
		h.fail(w, err, msgChargerNotFound)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{
		Message: "AI Toggled successfully",
		Session: result.Session,
		NewLog:  result.Log,
	})
}

// Pause handles POST /api/sessions/pause.
func (h *SessionsHandlers) Pause(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	evID, ok := fields.String("evId")
	if !ok {
		writeError(w, http.StatusNotFound, msgSessionNotFound)
		return
	}

	result, err := h.svc.PauseSession(r.Context(), evID)
	if err != nil {
		h.fail(w, err, msgSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{
		Message: "Charging paused successfully",
		Session: result.Session,
		NewLog:  result.Log,
	})
}

func (h *SessionsHandlers) fail(w http.ResponseWriter, err error, notFoundMessage string) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, notFoundMessage)
		return
	}
	h.logger.Error("session action failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// chargerNumber accepts only integral JSON numbers, matching strict equality against charger numbers.
func chargerNumber(v interface{}) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
