package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger registers bus hooks that log all event activity at debug level.
// Uses OnPublish for event firing, OnDrop for events nobody listens to, and OnPanic
// for subscriber panic reporting.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		ev := logger.Debug().Str("event", string(event))
		switch p := payload.(type) {
		case TimingsChangedPayload:
			ev = ev.Str("change_group", p.ChangeGroup).Int("changes", len(p.Changes))
		case DragStartedPayload:
			ev = ev.Str("kind", p.Kind).Str("change_group", p.ChangeGroup)
		case DragEndedPayload:
			ev = ev.Str("kind", p.Kind).Bool("cancelled", p.Cancelled)
		}
		ev.Msg("event fired")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Trace().Str("event", string(event)).Msg("event dropped: no subscribers")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}
