package models

// LogType classifies AI log entries.
type LogType string

const (
	LogTypeAlert  LogType = "Alert"
	LogTypeAction LogType = "Action"
)

// LogTimeLayout renders log timestamps as 24h wall-clock time without a date.
const LogTimeLayout = "15:04:05"

// AILogEntry is one line of the AI activity feed. Messages may contain **bold** markers.
type AILogEntry struct {
	Time    string  `json:"time"`
	Type    LogType `json:"type"`
	Message string  `json:"message"`
}
