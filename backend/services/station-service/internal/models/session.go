package models

// Priority is the owner-selected charging priority.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Display statuses set by owner actions. Seeded sessions carry other free-text values.
const (
	StatusAIActive      = "AI Active"
	StatusAIOff         = "AI OFF (Manual Control)"
	StatusPausedByOwner = "Paused by Owner"
)

// ChargingSession is one EV plugged into a charger.
type ChargingSession struct {
	ID         string   `json:"id"`
	Charger    int      `json:"charger"`
	Battery    int      `json:"battery"`
	Target     int      `json:"target"`
	Departure  string   `json:"departure"`
	Priority   Priority `json:"priority"`
	Status     string   `json:"status"`
	Power      float64  `json:"power"`
	AIDisabled bool     `json:"aiDisabled"`
}
