package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/eventbus/testbus"
	"github.com/colonyops/cuesync/internal/core/subtitle"
)

const open = subtitle.Open

func build(spans ...[2]int64) (*subtitle.List, []*subtitle.Subtitle) {
	subs := make([]*subtitle.Subtitle, 0, len(spans))
	for _, sp := range spans {
		s := subtitle.New("")
		s.StartTime, s.EndTime = sp[0], sp[1]
		subs = append(subs, s)
	}
	return subtitle.NewList(subs...), subs
}

func newEngine(t *testing.T, list *subtitle.List) (*Engine, *testbus.Bus) {
	t.Helper()
	tb := testbus.New(t)
	return New(list, tb.EventBus, Options{MinDuration: 250, DefaultDuration: 2000}), tb
}

func TestSyncUnsyncedStart_FirstCall(t *testing.T) {
	list, subs := build([2]int64{0, 500}, [2]int64{open, open}, [2]int64{open, open})
	e, tb := newEngine(t, list)

	require.True(t, e.SyncUnsyncedStart(1000))
	assert.Equal(t, [2]int64{1000, open}, subs[1].Timings())
	assert.Equal(t, [2]int64{open, open}, subs[2].Timings())

	p := tb.Of(eventbus.EventTimingsChanged)
	require.Len(t, p, 1)
	assert.Equal(t, "sync", p[0].(eventbus.TimingsChangedPayload).Source)
}

func TestSyncUnsyncedStart_ClosesStartedSubtitle(t *testing.T) {
	list, subs := build([2]int64{10000, open}, [2]int64{open, open})
	e, tb := newEngine(t, list)

	require.True(t, e.SyncUnsyncedStart(10001))
	assert.Equal(t, [2]int64{10000, 10250}, subs[0].Timings())
	assert.Equal(t, [2]int64{10250, open}, subs[1].Timings())

	batches := tb.Of(eventbus.EventTimingsChanged)
	require.Len(t, batches, 1, "one batch")
	assert.Len(t, batches[0].(eventbus.TimingsChangedPayload).Changes, 2)

	list.Undo()
	assert.Equal(t, [2]int64{10000, open}, subs[0].Timings())
	assert.Equal(t, [2]int64{open, open}, subs[1].Timings())
}

func TestSyncUnsyncedStart_LastSubtitle(t *testing.T) {
	list, subs := build([2]int64{1000, open})
	e, _ := newEngine(t, list)

	require.True(t, e.SyncUnsyncedStart(3000))
	assert.Equal(t, [2]int64{1000, 3000}, subs[0].Timings())
}

func TestSyncUnsyncedStart_NothingUnsynced(t *testing.T) {
	list, _ := build([2]int64{0, 1000})
	e, tb := newEngine(t, list)

	assert.False(t, e.SyncUnsyncedStart(3000))
	tb.AssertNotPublished(t, eventbus.EventTimingsChanged)
}

func TestSyncUnsyncedEnd(t *testing.T) {
	t.Run("closes started subtitle", func(t *testing.T) {
		list, subs := build([2]int64{1000, open}, [2]int64{open, open})
		e, _ := newEngine(t, list)

		require.True(t, e.SyncUnsyncedEnd(2500))
		assert.Equal(t, [2]int64{1000, 2500}, subs[0].Timings())
		assert.Equal(t, [2]int64{open, open}, subs[1].Timings())
	})

	t.Run("keeps minimum duration", func(t *testing.T) {
		list, subs := build([2]int64{1000, open})
		e, _ := newEngine(t, list)

		require.True(t, e.SyncUnsyncedEnd(1100))
		assert.Equal(t, [2]int64{1000, 1250}, subs[0].Timings())
	})

	t.Run("no-op without start", func(t *testing.T) {
		list, subs := build([2]int64{open, open})
		e, _ := newEngine(t, list)

		assert.False(t, e.SyncUnsyncedEnd(1100))
		assert.Equal(t, [2]int64{open, open}, subs[0].Timings())
	})
}

func TestUnsyncedShown(t *testing.T) {
	list, subs := build([2]int64{0, 1000}, [2]int64{open, open}, [2]int64{open, open})
	e, _ := newEngine(t, list)

	assert.False(t, e.UnsyncedShown(500))
	assert.Same(t, subs[1], e.UpcomingUnsynced(500))

	assert.True(t, e.UnsyncedShown(1500))
	assert.Same(t, subs[2], e.UpcomingUnsynced(1500))

	empty, _ := build([2]int64{0, 1000})
	assert.False(t, New(empty, nil, Options{}).UnsyncedShown(5000))
}

func TestDraftUnsynced(t *testing.T) {
	list, subs := build([2]int64{open, open})
	e, _ := newEngine(t, list)

	start, end, ok := e.DraftUnsynced(4000)
	require.True(t, ok)
	assert.Equal(t, int64(4000), start)
	assert.Equal(t, int64(6000), end)

	subs[0].StartTime = 4000
	start, end, _ = e.DraftUnsynced(4100)
	assert.Equal(t, [2]int64{4000, 4250}, [2]int64{start, end})
	_, end, _ = e.DraftUnsynced(5000)
	assert.Equal(t, int64(5000), end)

	subs[0].EndTime = 5000
	_, _, ok = e.DraftUnsynced(5000)
	assert.False(t, ok)
}

func adjustFixture() (*subtitle.List, []*subtitle.Subtitle) {
	return build(
		[2]int64{0, 500},
		[2]int64{1000, 1500},
		[2]int64{2000, 2500},
		[2]int64{3000, 3500},
		[2]int64{4000, 4500},
		[2]int64{open, open},
		[2]int64{open, open},
	)
}

func TestAdjustClosestTiming_Sequence(t *testing.T) {
	list, subs := adjustFixture()
	e, _ := newEngine(t, list)

	steps := []struct {
		now  int64
		want [2]int64
	}{
		{1050, [2]int64{1050, 1500}},
		{1550, [2]int64{1050, 1550}},
		{950, [2]int64{950, 1550}},
		{1450, [2]int64{950, 1450}},
	}
	for _, step := range steps {
		require.True(t, e.AdjustClosestTiming(step.now), "now=%d", step.now)
		assert.Equal(t, step.want, subs[1].Timings(), "now=%d", step.now)
	}
	assert.Equal(t, [2]int64{0, 500}, subs[0].Timings())
	assert.Equal(t, [2]int64{2000, 2500}, subs[2].Timings())
}

func TestAdjustClosestTiming_OutOfRange(t *testing.T) {
	list, subs := adjustFixture()
	require.NoError(t, list.Remove(subs[1]))
	require.NoError(t, list.Remove(subs[2]))
	e, tb := newEngine(t, list)

	for _, now := range []int64{1999, 1501} {
		assert.False(t, e.AdjustClosestTiming(now), "now=%d", now)
	}
	tb.AssertNotPublished(t, eventbus.EventTimingsChanged)
	assert.Equal(t, [2]int64{0, 500}, subs[0].Timings())
	assert.Equal(t, [2]int64{3000, 3500}, subs[3].Timings())
}

func TestAdjustClosestTiming_MovesTouchingNeighbour(t *testing.T) {
	list, subs := adjustFixture()
	subs[0].EndTime = 1000
	e, tb := newEngine(t, list)

	require.True(t, e.AdjustClosestTiming(1050))

	batches := tb.Of(eventbus.EventTimingsChanged)
	require.Len(t, batches, 1)
	changes := batches[0].(eventbus.TimingsChangedPayload).Changes
	require.Len(t, changes, 2)
	assert.Equal(t, subtitle.Change{Subtitle: subs[1], StartTime: 1050, EndTime: 1500}, changes[0])
	assert.Equal(t, subtitle.Change{Subtitle: subs[0], StartTime: 0, EndTime: 1050}, changes[1])
}

func TestAdjustClosestTiming_LastSyncedWhenNothingAhead(t *testing.T) {
	list, subs := adjustFixture()
	e, _ := newEngine(t, list)

	require.True(t, e.AdjustClosestTiming(5200))
	assert.Equal(t, [2]int64{4000, 5200}, subs[4].Timings())
}

func TestAdjustClosestTiming_RejectsShortResult(t *testing.T) {
	t.Run("minimum duration", func(t *testing.T) {
		list, subs := build([2]int64{1000, 1300})
		e, _ := newEngine(t, list)

		assert.False(t, e.AdjustClosestTiming(1100))
		assert.Equal(t, [2]int64{1000, 1300}, subs[0].Timings())
	})
}

func TestAdjustment_Guards(t *testing.T) {
	tests := []struct {
		name  string
		spans [][2]int64
		b     func(subs []*subtitle.Subtitle) boundary
		now   int64
	}{
		{
			name:  "start overlaps previous",
			spans: [][2]int64{{0, 900}, {1000, 2000}},
			b:     func(subs []*subtitle.Subtitle) boundary { return boundary{sub: subs[1], edge: edgeStart, at: 1000} },
			now:   850,
		},
		{
			name:  "touching previous too short",
			spans: [][2]int64{{800, 1000}, {1000, 2000}},
			b:     func(subs []*subtitle.Subtitle) boundary { return boundary{sub: subs[1], edge: edgeStart, at: 1000} },
			now:   900,
		},
		{
			name:  "end overlaps next",
			spans: [][2]int64{{0, 1000}, {1200, 2000}},
			b:     func(subs []*subtitle.Subtitle) boundary { return boundary{sub: subs[0], edge: edgeEnd, at: 1000} },
			now:   1300,
		},
		{
			name:  "touching next too short",
			spans: [][2]int64{{0, 1000}, {1000, 1300}},
			b:     func(subs []*subtitle.Subtitle) boundary { return boundary{sub: subs[0], edge: edgeEnd, at: 1000} },
			now:   1100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, subs := build(tt.spans...)
			e, _ := newEngine(t, list)
			_, ok := e.adjustment(tt.b(subs), tt.now)
			assert.False(t, ok)
		})
	}
}

func TestAdjustClosestTiming_AlreadyAligned(t *testing.T) {
	list, _ := build([2]int64{1000, 2000})
	e, tb := newEngine(t, list)

	assert.False(t, e.AdjustClosestTiming(1000))
	tb.AssertNotPublished(t, eventbus.EventTimingsChanged)
}
