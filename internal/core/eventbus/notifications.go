package eventbus

import (
	"fmt"

	"github.com/colonyops/cuesync/internal/core/notify"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeTimingsChanged(func(p TimingsChangedPayload) {
		switch p.Source {
		case "undo", "redo":
			r.notifyf(notify.LevelInfo, "%s: %d subtitle(s) restored", p.Source, len(p.Changes))
		case "sync":
			for _, c := range p.Changes {
				r.notifyf(notify.LevelInfo, "synced %q", preview(c.Subtitle.Content))
			}
		}
	})

	r.bus.SubscribeDragEnded(func(p DragEndedPayload) {
		if p.Cancelled {
			r.notifyf(notify.LevelWarning, "%s cancelled", p.Kind)
		}
	})

	r.bus.SubscribeDragStarted(func(p DragStartedPayload) {
		if p.Keyboard {
			r.notifyf(notify.LevelInfo, "keyboard %s: left/right to adjust, esc to stop", p.Kind)
		}
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

func preview(content string) string {
	const limit = 24
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit-1]) + "…"
}
