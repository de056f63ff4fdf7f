// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within cuesync.
//
// Delivery is synchronous: Publish runs every subscriber on the caller's
// goroutine before returning, which keeps the single-threaded UI loop the
// only writer of editor state.
package eventbus

import (
	"github.com/colonyops/cuesync/internal/core/notify"
	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// Events defines all event types and their payload structs.
var Events = map[string]any{
	// Keep list sorted A-Z
	"drag.ended":             DragEndedPayload{},
	"drag.started":           DragStartedPayload{},
	"markers.changed":        MarkersChangedPayload{},
	"notification.published": NotificationPublishedPayload{},
	"selection.changed":      SelectionChangedPayload{},
	"timeline.shifted":       TimelineShiftedPayload{},
	"timings.changed":        TimingsChangedPayload{},
	"video.seeked":           VideoSeekedPayload{},
}

// TimingsChangedPayload is emitted after a mutation batch was applied to the
// subtitle sequence.
type TimingsChangedPayload struct {
	Changes     []subtitle.Change
	ChangeGroup string
	Source      string // "drag", "sync", "undo", "redo"
}

// TimelineShiftedPayload is emitted while the timeline is panned. DeltaMS is
// relative to the playback position at the start of the pan.
type TimelineShiftedPayload struct {
	DeltaMS int64
}

// SelectionChangedPayload is emitted when the selected subtitles change.
type SelectionChangedPayload struct {
	Subtitles []*subtitle.Subtitle
}

// VideoSeekedPayload is emitted when the engine seeks the player.
type VideoSeekedPayload struct {
	Time int64
}

// DragStartedPayload is emitted when a drag session begins.
type DragStartedPayload struct {
	Kind        string
	ChangeGroup string
	Keyboard    bool
}

// DragEndedPayload is emitted when a drag session ends or is cancelled.
type DragEndedPayload struct {
	Kind        string
	ChangeGroup string
	Keyboard    bool
	Cancelled   bool
}

// MarkersChangedPayload is emitted when transient UI markers are added or
// removed for a subtitle.
type MarkersChangedPayload struct {
	SubtitleID string
}

// NotificationPublishedPayload is emitted for user-facing status messages.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}
