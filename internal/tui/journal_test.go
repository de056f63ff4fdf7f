package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/history"
	"github.com/colonyops/cuesync/internal/core/subtitle"
)

type recordedBatch struct {
	group, source string
	changes       []subtitle.Change
}

type fakeHistory struct {
	mu      sync.Mutex
	batches []recordedBatch
	err     error
	gate    chan struct{} // when set, Record waits for it to close
}

func (f *fakeHistory) Record(_ context.Context, _, group, source string, changes []subtitle.Change) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, recordedBatch{group: group, source: source, changes: changes})
	return nil
}

func (f *fakeHistory) List(context.Context, string, int) ([]history.Entry, error) { return nil, nil }
func (f *fakeHistory) Clear(context.Context, string) error                       { return nil }

func (f *fakeHistory) recorded() []recordedBatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedBatch(nil), f.batches...)
}

func TestJournaler_HoldsDragUntilEnd(t *testing.T) {
	store := &fakeHistory{}
	bus := eventbus.New()
	j := NewJournaler(store, "ep1", nil)
	j.Subscribe(bus)
	j.Start(context.Background())

	s := subtitle.NewSynced(1000, 2000, "a")
	for _, d := range []int64{10, 20, 30} {
		bus.PublishTimingsChanged(eventbus.TimingsChangedPayload{
			Changes:     []subtitle.Change{{Subtitle: s, StartTime: 1000 + d, EndTime: 2000 + d}},
			ChangeGroup: "timeline-drag-1",
			Source:      "drag",
		})
	}
	assert.Equal(t, 1, j.Held())

	bus.PublishDragEnded(eventbus.DragEndedPayload{ChangeGroup: "timeline-drag-1"})
	assert.Equal(t, 0, j.Held())

	bus.PublishTimingsChanged(eventbus.TimingsChangedPayload{
		Changes: []subtitle.Change{{Subtitle: s, StartTime: 0, EndTime: 500}},
		Source:  "sync",
	})
	j.Close()

	got := store.recorded()
	require.Len(t, got, 2)
	assert.Equal(t, "timeline-drag-1", got[0].group)
	require.Len(t, got[0].changes, 1)
	assert.Equal(t, int64(1030), got[0].changes[0].StartTime)
	assert.Equal(t, s.ID, got[0].changes[0].Subtitle.ID)
	assert.NotSame(t, s, got[0].changes[0].Subtitle)
	assert.Equal(t, "sync", got[1].source)
}

func TestJournaler_CloseFlushesHeldGroups(t *testing.T) {
	store := &fakeHistory{}
	bus := eventbus.New()
	j := NewJournaler(store, "ep1", nil)
	j.Subscribe(bus)
	j.Start(context.Background())

	s := subtitle.NewSynced(0, 500, "a")
	bus.PublishTimingsChanged(eventbus.TimingsChangedPayload{
		Changes:     []subtitle.Change{{Subtitle: s, StartTime: 0, EndTime: 600}},
		ChangeGroup: "timeline-drag-7",
		Source:      "drag",
	})
	j.Close()

	assert.Len(t, store.recorded(), 1)
}

func TestJournaler_FailuresNotify(t *testing.T) {
	store := &fakeHistory{err: errors.New("disk full")}
	failures := NewNotificationBuffer()
	bus := eventbus.New()
	j := NewJournaler(store, "ep1", failures)
	j.Subscribe(bus)
	j.Start(context.Background())

	s := subtitle.NewSynced(0, 500, "a")
	bus.PublishTimingsChanged(eventbus.TimingsChangedPayload{
		Changes: []subtitle.Change{{Subtitle: s, StartTime: 0, EndTime: 600}},
		Source:  "undo",
	})
	j.Close()

	items := failures.Drain()
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Message, "disk full")
}

func TestMergeChanges(t *testing.T) {
	a := &subtitle.Subtitle{ID: "a"}
	b := &subtitle.Subtitle{ID: "b"}
	held := mergeChanges(nil, []subtitle.Change{{Subtitle: a, StartTime: 1}, {Subtitle: b, StartTime: 2}})
	held = mergeChanges(held, []subtitle.Change{{Subtitle: a, StartTime: 3}})

	require.Len(t, held, 2)
	assert.Equal(t, int64(3), held[0].StartTime)
	assert.Equal(t, int64(2), held[1].StartTime)
}

func TestJournaler_SlowStoreDoesNotBlockPublish(t *testing.T) {
	store := &fakeHistory{gate: make(chan struct{})}
	bus := eventbus.New()
	j := NewJournaler(store, "ep1", nil)
	j.Subscribe(bus)
	j.Start(context.Background())

	s := subtitle.NewSynced(0, 500, "a")
	const batches = 200
	for i := range batches {
		bus.PublishTimingsChanged(eventbus.TimingsChangedPayload{
			Changes: []subtitle.Change{{Subtitle: s, StartTime: 0, EndTime: int64(600 + i)}},
			Source:  "sync",
		})
	}
	// Publishing returned while the store is stalled on its first write.
	close(store.gate)
	j.Close()

	got := store.recorded()
	require.Len(t, got, batches)
	assert.Equal(t, int64(600+batches-1), got[batches-1].changes[0].EndTime, "order is kept")
}
