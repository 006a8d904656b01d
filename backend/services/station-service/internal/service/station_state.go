package service

import (
	"sync"

	"evstation/backend/services/station-service/internal/models"
)

// StationState owns the station metrics, session list and AI log for the lifetime of the process.
// All access goes through a single mutex so every operation applies fully before the next starts.
type StationState struct {
	mu       sync.Mutex
	station  models.StationData
	sessions []models.ChargingSession
	logs     []models.AILogEntry
}

// NewStationState copies the provided values into a new state container.
// logs are expected most-recent-first.
func NewStationState(station models.StationData, sessions []models.ChargingSession, logs []models.AILogEntry) *StationState {
	return &StationState{
		station:  station,
		sessions: append([]models.ChargingSession(nil), sessions...),
		logs:     append([]models.AILogEntry(nil), logs...),
	}
}

// Station returns a copy of the station metrics.
func (s *StationState) Station() models.StationData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.station
}

// Sessions returns a copy of the session list in insertion order.
func (s *StationState) Sessions() []models.ChargingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.ChargingSession, len(s.sessions))
	copy(result, s.sessions)
	return result
}

// Logs returns a copy of the log list, most recent first.
func (s *StationState) Logs() []models.AILogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.AILogEntry, len(s.logs))
	copy(result, s.logs)
	return result
}

// apply runs fn while holding the state lock.
func (s *StationState) apply(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// sessionByIDLocked returns the first session with the given id.
func (s *StationState) sessionByIDLocked(id string) *models.ChargingSession {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return &s.sessions[i]
		}
	}
	return nil
}

// sessionByChargerLocked returns the first session plugged into the given charger.
func (s *StationState) sessionByChargerLocked(charger int) *models.ChargingSession {
	for i := range s.sessions {
		if s.sessions[i].Charger == charger {
			return &s.sessions[i]
		}
	}
	return nil
}

func (s *StationState) prependLogLocked(entry models.AILogEntry) {
	s.logs = append(s.logs, models.AILogEntry{})
	copy(s.logs[1:], s.logs)
	s.logs[0] = entry
}
