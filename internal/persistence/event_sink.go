package persistence

import (
	"github.com/rs/zerolog"

	"github.com/hexfall/tribesim/internal/game/events"
)

// EventSink subscribes to the game bus and records every event it sees.
// It tracks the current turn from turn.started events so rows can be
// queried by turn later.
type EventSink struct {
	store  *Store
	logger zerolog.Logger
	turn   int
}

// NewEventSink returns a bus subscriber writing into the store.
func NewEventSink(store *Store, logger zerolog.Logger) *EventSink {
	return &EventSink{
		store:  store,
		logger: logger.With().Str("component", "event_sink").Logger(),
	}
}

// ID implements events.Subscriber.
func (es *EventSink) ID() string { return "persistence_event_sink" }

// InterestedIn implements events.Subscriber; the sink records everything.
func (es *EventSink) InterestedIn(string) bool { return true }

// HandleEvent implements events.Subscriber.
func (es *EventSink) HandleEvent(ev events.Event) {
	if started, ok := ev.(*events.TurnStartedEvent); ok {
		es.turn = started.Turn
	}
	if err := es.store.RecordEvent(ev.GameID(), es.turn, ev.Type(), ev); err != nil {
		es.logger.Warn().Err(err).Str("event_type", ev.Type()).Msg("event not recorded")
	}
}
