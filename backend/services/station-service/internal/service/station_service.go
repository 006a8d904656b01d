package service

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"evstation/backend/services/station-service/internal/events"
	"evstation/backend/services/station-service/internal/models"
)

const (
	// highPriorityLoadIncrease is added to grid load each time a session is set to High.
	highPriorityLoadIncrease = 5
	// boostPower is the fixed charging power of a boosted session, kW.
	boostPower = 15.0
	// savingsSolar is the fixed daily solar saving reported with revenue.
	savingsSolar = 10.50
)

// ActionResult is returned by owner actions.
type ActionResult struct {
	Session models.ChargingSession
	Log     models.AILogEntry
}

// StationService implements the dashboard reads and owner actions on top of StationState.
type StationService struct {
	state     *StationState
	clock     clock.Clock
	publisher events.Publisher
	logger    *zap.Logger
}

// NewStationService builds service. A nil publisher discards events.
func NewStationService(state *StationState, clk clock.Clock, publisher events.Publisher, logger *zap.Logger) *StationService {
	if clk == nil {
		clk = clock.WallClock
	}
	if publisher == nil {
		publisher = events.Nop
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StationService{
		state:     state,
		clock:     clk,
		publisher: publisher,
		logger:    logger,
	}
}

// GetStationData returns current station metrics.
func (s *StationService) GetStationData() models.StationData {
	return s.state.Station()
}

// GetSessions returns all sessions.
func (s *StationService) GetSessions() []models.ChargingSession {
	return s.state.Sessions()
}

// GetLogs returns the AI log, most recent first.
func (s *StationService) GetLogs() []models.AILogEntry {
	return s.state.Logs()
}

// GetRevenue returns station metrics with profit figures derived from them.
func (s *StationService) GetRevenue() models.RevenueReport {
	station := s.state.Station()
	profit := station.RevenueToday - station.EnergyCostToday + station.CostSavingsAI
	return models.RevenueReport{
		StationData:  station,
		TotalProfit:  formatAmount(profit),
		SavingsSolar: formatAmount(savingsSolar),
	}
}

// SetPriority changes the priority of session evID. Setting High also boosts the session
// and raises grid load; that boost is logged separately and not returned.
func (s *StationService) SetPriority(ctx context.Context, evID string, priority models.Priority) (ActionResult, error) {
	var (
		result  ActionResult
		added   []models.AILogEntry
		station models.StationData
	)
	err := s.state.apply(func() error {
		session := s.state.sessionByIDLocked(evID)
		if session == nil {
			return errors.NotFoundf("EV session %q", evID)
		}
		session.Priority = priority
		session.Status = fmt.Sprintf("Owner set to %s Priority", priority)

		manual := s.newLog(models.LogTypeAction, fmt.Sprintf("Owner manually set **%s** to %s priority.", evID, priority))
		s.state.prependLogLocked(manual)
		added = []models.AILogEntry{manual}

		if priority == models.PriorityHigh {
			s.state.station.GridLoad += highPriorityLoadIncrease
			session.Power = boostPower
			boost := s.newLog(models.LogTypeAction, fmt.Sprintf("AI boosts %s charging speed (safe adjustment).", evID))
			s.state.prependLogLocked(boost)
			added = []models.AILogEntry{boost, manual}
		}

		result = ActionResult{Session: *session, Log: manual}
		station = s.state.station
		return nil
	})
	if err != nil {
		return ActionResult{}, err
	}

	s.logger.Debug("priority updated",
		zap.String("ev_id", evID),
		zap.String("priority", string(priority)),
		zap.Float64("grid_load", station.GridLoad),
	)
	s.publish(ctx, events.KindPriorityChanged, result.Session, added, station)
	return result, nil
}

// ToggleAI flips AI control for the session on chargerID.
func (s *StationService) ToggleAI(ctx context.Context, chargerID int) (ActionResult, error) {
	var (
		result  ActionResult
		station models.StationData
	)
	err := s.state.apply(func() error {
		session := s.state.sessionByChargerLocked(chargerID)
		if session == nil {
			return errors.NotFoundf("charger %d", chargerID)
		}
		session.AIDisabled = !session.AIDisabled

		action := "enabled"
		session.Status = models.StatusAIActive
		if session.AIDisabled {
			action = "disabled"
			session.Status = models.StatusAIOff
		}

		entry := s.newLog(models.LogTypeAction, fmt.Sprintf("Owner manually **%s** AI for Charger #%d.", action, chargerID))
		s.state.prependLogLocked(entry)

		result = ActionResult{Session: *session, Log: entry}
		station = s.state.station
		return nil
	})
	if err != nil {
		return ActionResult{}, err
	}

	s.logger.Debug("ai toggled",
		zap.Int("charger", chargerID),
		zap.Bool("ai_disabled", result.Session.AIDisabled),
	)
	s.publish(ctx, events.KindAIToggled, result.Session, []models.AILogEntry{result.Log}, station)
	return result, nil
}

// PauseSession stops charging for session evID. The previous power is not kept.
func (s *StationService) PauseSession(ctx context.Context, evID string) (ActionResult, error) {
	var (
		result  ActionResult
		station models.StationData
	)
	err := s.state.apply(func() error {
		session := s.state.sessionByIDLocked(evID)
		if session == nil {
			return errors.NotFoundf("EV session %q", evID)
		}
		session.Status = models.StatusPausedByOwner
		session.Power = 0

		entry := s.newLog(models.LogTypeAction, fmt.Sprintf("Owner manually **Paused** charging for **%s**.", evID))
		s.state.prependLogLocked(entry)

		result = ActionResult{Session: *session, Log: entry}
		station = s.state.station
		return nil
	})
	if err != nil {
		return ActionResult{}, err
	}

	s.logger.Debug("session paused", zap.String("ev_id", evID))
	s.publish(ctx, events.KindSessionPaused, result.Session, []models.AILogEntry{result.Log}, station)
	return result, nil
}

func (s *StationService) newLog(logType models.LogType, message string) models.AILogEntry {
	return models.AILogEntry{
		Time:    s.clock.Now().Format(models.LogTimeLayout),
		Type:    logType,
		Message: message,
	}
}

func (s *StationService) publish(ctx context.Context, kind events.Kind, session models.ChargingSession, logs []models.AILogEntry, station models.StationData) {
	event := events.Event{
		Kind:    kind,
		At:      s.clock.Now().UTC(),
		Session: session,
		Logs:    logs,
		Station: station,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish station event", zap.String("kind", string(kind)), zap.Error(err))
	}
}

// formatAmount renders v with two decimals. A value exactly halfway between two cents
// rounds away from zero.
func formatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	cents := new(big.Float).SetPrec(256).SetFloat64(math.Abs(v))
	cents.Mul(cents, big.NewFloat(100))
	whole, _ := cents.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(cents, new(big.Float).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	digits := whole.Add(whole, big.NewInt(1)).String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}
