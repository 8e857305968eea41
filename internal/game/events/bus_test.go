package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSubscriber struct {
	id       string
	types    map[string]bool
	received []Event
}

func (r *recordingSubscriber) ID() string { return r.id }

func (r *recordingSubscriber) HandleEvent(e Event) { r.received = append(r.received, e) }

func (r *recordingSubscriber) InterestedIn(eventType string) bool { return r.types[eventType] }

func TestEventBus_SubscriberFiltering(t *testing.T) {
	bus := NewEventBus()
	sub := &recordingSubscriber{id: "rec", types: map[string]bool{TypeTurnStarted: true}}
	bus.Subscribe(sub)

	bus.Publish(NewTurnStartedEvent("g1", 1))
	bus.Publish(NewTurnEndedEvent("g1", 1, 4))

	assert.Len(t, sub.received, 1)
	assert.Equal(t, TypeTurnStarted, sub.received[0].Type())
	assert.Equal(t, "g1", sub.received[0].GameID())
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	sub := &recordingSubscriber{id: "rec", types: map[string]bool{TypeTurnStarted: true}}
	bus.Subscribe(sub)
	bus.Unsubscribe("rec")

	bus.Publish(NewTurnStartedEvent("g1", 1))
	assert.Empty(t, sub.received)
}

func TestEventBus_FuncHandlers(t *testing.T) {
	bus := NewEventBus()

	var turns []int
	bus.SubscribeFunc(TypeTurnStarted, func(e Event) {
		turns = append(turns, e.(*TurnStartedEvent).Turn)
	})

	bus.Publish(NewTurnStartedEvent("g1", 1))
	bus.Publish(NewTurnStartedEvent("g1", 2))

	assert.Equal(t, []int{1, 2}, turns)
}

func TestEventBus_PanickingHandlerIsContained(t *testing.T) {
	bus := NewEventBus()

	bus.SubscribeFunc(TypeTurnStarted, func(Event) { panic("boom") })
	called := false
	bus.SubscribeFunc(TypeTurnStarted, func(Event) { called = true })

	assert.NotPanics(t, func() { bus.Publish(NewTurnStartedEvent("g1", 1)) })
	assert.True(t, called, "later handlers still run after a panic")
}
