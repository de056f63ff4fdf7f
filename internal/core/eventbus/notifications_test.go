package eventbus_test

import (
	"testing"

	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/eventbus/testbus"
	"github.com/colonyops/cuesync/internal/core/notify"
	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latestNotificationPayload(tb *testbus.Bus, t *testing.T) eventbus.NotificationPublishedPayload {
	t.Helper()
	tb.AssertPublished(t, eventbus.EventNotificationPublished)

	all := tb.Of(eventbus.EventNotificationPublished)
	p, ok := all[len(all)-1].(eventbus.NotificationPublishedPayload)
	require.True(t, ok)
	return p
}

func TestNotificationRouter_Undo(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	s := subtitle.NewSynced(0, 100, "x")
	tb.PublishTimingsChanged(eventbus.TimingsChangedPayload{
		Changes: []subtitle.Change{{Subtitle: s}, {Subtitle: s}},
		Source:  "undo",
	})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, notify.LevelInfo, p.Level)
	assert.Contains(t, p.Message, "undo: 2")
}

func TestNotificationRouter_Sync(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	s := subtitle.NewSynced(0, 100, "a fairly long line of dialogue that gets cut")
	tb.PublishTimingsChanged(eventbus.TimingsChangedPayload{
		Changes: []subtitle.Change{{Subtitle: s}},
		Source:  "sync",
	})
	p := latestNotificationPayload(tb, t)

	assert.Contains(t, p.Message, "a fairly long line")
	assert.NotContains(t, p.Message, "gets cut")
}

func TestNotificationRouter_DragTimingsAreQuiet(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishTimingsChanged(eventbus.TimingsChangedPayload{Source: "drag"})
	tb.AssertNotPublished(t, eventbus.EventNotificationPublished)
}

func TestNotificationRouter_DragCancelled(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishDragEnded(eventbus.DragEndedPayload{Kind: "move", Cancelled: true})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, notify.LevelWarning, p.Level)
	assert.Contains(t, p.Message, "move cancelled")
}

func TestNotificationRouter_NilSafe(t *testing.T) {
	var r *eventbus.NotificationRouter
	assert.NotPanics(t, func() { r.Register() })
}
