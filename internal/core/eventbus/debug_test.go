package eventbus_test

import (
	"testing"

	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/eventbus/testbus"
	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/rs/zerolog"
)

func TestRegisterDebugLogger(t *testing.T) {
	tb := testbus.New(t)

	// Registering with a nop logger must not panic.
	eventbus.RegisterDebugLogger(tb.EventBus, zerolog.Nop())

	tb.PublishTimingsChanged(eventbus.TimingsChangedPayload{
		Changes:     []subtitle.Change{{Subtitle: subtitle.NewSynced(0, 100, "x"), StartTime: 0, EndTime: 200}},
		ChangeGroup: "g",
	})
	tb.PublishDragStarted(eventbus.DragStartedPayload{Kind: "move"})
	tb.PublishDragEnded(eventbus.DragEndedPayload{Kind: "move"})

	tb.AssertPublished(t, eventbus.EventDragEnded)
}
