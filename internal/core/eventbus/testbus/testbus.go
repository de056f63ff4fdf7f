// Package testbus provides test utilities for the event bus.
// It wraps a real EventBus with event recording and assertion helpers.
package testbus

import (
	"testing"

	"github.com/colonyops/cuesync/internal/core/eventbus"
)

// RecordedEvent holds a captured event name and payload.
type RecordedEvent struct {
	Event   eventbus.Event
	Payload any
}

// Bus wraps a real EventBus with event recording for tests.
type Bus struct {
	*eventbus.EventBus

	events []RecordedEvent
}

// New creates a test bus subscribed to all event types for recording.
func New(t *testing.T) *Bus {
	t.Helper()

	bus := eventbus.New()
	tb := &Bus{EventBus: bus}

	bus.SubscribeTimingsChanged(func(p eventbus.TimingsChangedPayload) {
		tb.record(eventbus.EventTimingsChanged, p)
	})
	bus.SubscribeTimelineShifted(func(p eventbus.TimelineShiftedPayload) {
		tb.record(eventbus.EventTimelineShifted, p)
	})
	bus.SubscribeSelectionChanged(func(p eventbus.SelectionChangedPayload) {
		tb.record(eventbus.EventSelectionChanged, p)
	})
	bus.SubscribeVideoSeeked(func(p eventbus.VideoSeekedPayload) {
		tb.record(eventbus.EventVideoSeeked, p)
	})
	bus.SubscribeDragStarted(func(p eventbus.DragStartedPayload) {
		tb.record(eventbus.EventDragStarted, p)
	})
	bus.SubscribeDragEnded(func(p eventbus.DragEndedPayload) {
		tb.record(eventbus.EventDragEnded, p)
	})
	bus.SubscribeMarkersChanged(func(p eventbus.MarkersChangedPayload) {
		tb.record(eventbus.EventMarkersChanged, p)
	})
	bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		tb.record(eventbus.EventNotificationPublished, p)
	})

	return tb
}

func (tb *Bus) record(event eventbus.Event, payload any) {
	tb.events = append(tb.events, RecordedEvent{Event: event, Payload: payload})
}

// Events returns a copy of all recorded events.
func (tb *Bus) Events() []RecordedEvent {
	out := make([]RecordedEvent, len(tb.events))
	copy(out, tb.events)
	return out
}

// Of returns the recorded payloads for one event type, in order.
func (tb *Bus) Of(event eventbus.Event) []any {
	var out []any
	for _, e := range tb.events {
		if e.Event == event {
			out = append(out, e.Payload)
		}
	}
	return out
}

// Reset clears all recorded events.
func (tb *Bus) Reset() {
	tb.events = nil
}

func (tb *Bus) has(event eventbus.Event) bool {
	for _, e := range tb.events {
		if e.Event == event {
			return true
		}
	}
	return false
}

// AssertPublished asserts that an event of the given type was recorded.
func (tb *Bus) AssertPublished(t *testing.T, event eventbus.Event) {
	t.Helper()
	if !tb.has(event) {
		t.Errorf("expected event %q to be published, but it was not", event)
	}
}

// AssertNotPublished asserts that an event of the given type was NOT recorded.
func (tb *Bus) AssertNotPublished(t *testing.T, event eventbus.Event) {
	t.Helper()
	if tb.has(event) {
		t.Errorf("expected event %q to NOT be published, but it was", event)
	}
}
