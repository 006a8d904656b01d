package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"evstation/backend/services/station-service/internal/models"
)

// Kind names the owner action that produced an event.
type Kind string

const (
	KindPriorityChanged Kind = "priority_changed"
	KindAIToggled       Kind = "ai_toggled"
	KindSessionPaused   Kind = "session_paused"
)

// Event describes a committed mutation of the station state.
type Event struct {
	Kind    Kind                   `json:"kind"`
	At      time.Time              `json:"at"`
	Session models.ChargingSession `json:"session"`
	// Logs holds every entry added by the action, most recent first.
	Logs    []models.AILogEntry `json:"logs"`
	Station models.StationData  `json:"station"`
}

// Publisher delivers events to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, event Event) error

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Nop discards events.
var Nop Publisher = PublisherFunc(func(context.Context, Event) error { return nil })

type namedPublisher struct {
	name      string
	publisher Publisher
}

// Fanout delivers each event to every registered publisher in registration order.
type Fanout struct {
	publishers []namedPublisher
}

// NewFanout returns empty fanout.
func NewFanout() *Fanout {
	return &Fanout{}
}

// Add registers a publisher under name. Nil publishers are ignored.
func (f *Fanout) Add(name string, publisher Publisher) {
	if publisher == nil {
		return
	}
	f.publishers = append(f.publishers, namedPublisher{name: name, publisher: publisher})
}

// Len reports the number of registered publishers.
func (f *Fanout) Len() int {
	return len(f.publishers)
}

// Publish delivers to all publishers; one failing sink does not stop the others.
func (f *Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.publisher.Publish(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
		}
	}
	return errors.Join(errs...)
}
