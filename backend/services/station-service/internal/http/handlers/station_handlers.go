package handlers

import (
	"net/http"

	"evstation/backend/services/station-service/internal/service"
)

// StationHandlers serves station-wide reads.
type StationHandlers struct {
	svc *service.StationService
}

// NewStationHandlers returns handler set.
func NewStationHandlers(svc *service.StationService) *StationHandlers {
	return &StationHandlers{svc: svc}
}

// StationData handles GET /api/station-data.
func (h *StationHandlers) StationData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetStationData())
}

// Revenue handles GET /api/revenue.
func (h *StationHandlers) Revenue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetRevenue())
}

// Logs handles GET /api/logs.
func (h *StationHandlers) Logs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetLogs())
}
