package service

import (
	"time"

	"evstation/backend/services/station-service/internal/models"
)

const seedAlertMessage = "⚠️ **Grid Load High** — slowing non-urgent charging."

// SeedStation returns the demo station metrics.
func SeedStation() models.StationData {
	return models.StationData{
		TotalEVs:             12,
		ChargersInUse:        8,
		ChargersAvailable:    4,
		GridLoad:             75,
		LoadLimit:            100,
		PowerConsumed:        55.0,
		AIStatus:             "Active - Load Balancing",
		RevenueToday:         450.75,
		EnergyCostToday:      112.30,
		CostSavingsAI:        35.10,
		PeakAvoidanceSavings: 15.50,
	}
}

// SeedSessions returns the demo sessions in dashboard order.
func SeedSessions() []models.ChargingSession {
	return []models.ChargingSession{
		{ID: "EV-12", Charger: 1, Battery: 65, Target: 80, Departure: "06:30 PM", Priority: models.PriorityLow, Status: "Slowing (Grid)", Power: 5.5},
		{ID: "EV-07", Charger: 3, Battery: 85, Target: 95, Departure: "07:50 PM", Priority: models.PriorityHigh, Status: "Boosting", Power: 15.0},
		{ID: "EV-03", Charger: 5, Battery: 12, Target: 100, Departure: "10:00 PM", Priority: models.PriorityLow, Status: "Active (Slow)", Power: 3.0},
		{ID: "EV-19", Charger: 8, Battery: 45, Target: 90, Departure: "09:30 PM", Priority: models.PriorityMedium, Status: "Charging Normal", Power: 7.7},
		{ID: "EV-21", Charger: 2, Battery: 20, Target: 80, Departure: "08:00 PM", Priority: models.PriorityMedium, Status: "Charging Normal", Power: 7.0},
	}
}

// SeedLogs returns the startup log, stamped at startedAt.
func SeedLogs(startedAt time.Time) []models.AILogEntry {
	return []models.AILogEntry{
		{Time: startedAt.Format(models.LogTimeLayout), Type: models.LogTypeAlert, Message: seedAlertMessage},
	}
}

// NewSeededState builds the state container the service starts with.
func NewSeededState(startedAt time.Time) *StationState {
	return NewStationState(SeedStation(), SeedSessions(), SeedLogs(startedAt))
}
