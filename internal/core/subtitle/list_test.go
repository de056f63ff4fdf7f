package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList() (*List, []*Subtitle) {
	subs := []*Subtitle{
		NewSynced(0, 500, "sub 0"),
		NewSynced(1000, 1500, "sub 1"),
		NewSynced(2000, 2500, "sub 2"),
		New("sub 3"),
		New("sub 4"),
	}
	return NewList(subs...), subs
}

func TestSubtitle_States(t *testing.T) {
	s := New("hello")
	assert.False(t, s.IsSynced())
	assert.False(t, s.StartSynced())
	assert.Equal(t, int64(0), s.Duration())
	assert.NotEmpty(t, s.ID)

	s.StartTime = 100
	assert.True(t, s.StartSynced())
	assert.False(t, s.IsSynced())

	s.EndTime = 600
	assert.True(t, s.IsSynced())
	assert.Equal(t, int64(500), s.Duration())
	assert.True(t, s.IsAt(100))
	assert.False(t, s.IsAt(600))
}

func TestList_Queries(t *testing.T) {
	list, subs := newTestList()

	assert.Same(t, subs[3], list.FirstUnsynced())
	assert.Same(t, subs[4], list.SecondUnsynced())
	assert.Same(t, subs[2], list.LastSynced())
	assert.Same(t, subs[1], list.Next(subs[0]))
	assert.Nil(t, list.Prev(subs[0]))
	assert.Nil(t, list.Next(subs[4]))

	assert.Same(t, subs[1], list.FirstAfter(600))
	assert.Same(t, subs[1], list.FirstAfter(1000))
	assert.Nil(t, list.FirstAfter(2001))

	assert.Same(t, subs[1], list.At(1200))
	assert.Nil(t, list.At(1500))

	got := list.ForTime(400, 1100)
	require.Len(t, got, 2)
	assert.Same(t, subs[0], got[0])
	assert.Same(t, subs[1], got[1])
}

func TestList_UndoCoalescesChangeGroup(t *testing.T) {
	list, subs := newTestList()

	for _, d := range []int64{1, 2, 3} {
		list.UpdateSubtitleTimes([]Change{{Subtitle: subs[1], StartTime: 1000 + d, EndTime: 1500 + d}}, "drag-1")
	}
	assert.Equal(t, [2]int64{1003, 1503}, subs[1].Timings())

	list.Undo()
	assert.Equal(t, [2]int64{1000, 1500}, subs[1].Timings())
	assert.False(t, list.CanUndo())

	list.Redo()
	assert.Equal(t, [2]int64{1003, 1503}, subs[1].Timings())
}

func TestList_UngroupedUpdatesUndoSeparately(t *testing.T) {
	list, subs := newTestList()

	list.UpdateSubtitleTime(subs[0], 0, 600)
	list.UpdateSubtitleTime(subs[0], 0, 700)

	list.Undo()
	assert.Equal(t, [2]int64{0, 600}, subs[0].Timings())
	list.Undo()
	assert.Equal(t, [2]int64{0, 500}, subs[0].Timings())
}

func TestList_MultiSubtitleStepUndo(t *testing.T) {
	list, subs := newTestList()
	list.UpdateSubtitleTimes([]Change{
		{Subtitle: subs[0], StartTime: 0, EndTime: 1000},
		{Subtitle: subs[1], StartTime: 1000, EndTime: 1500},
	}, "g")
	list.UpdateSubtitleTimes([]Change{
		{Subtitle: subs[0], StartTime: 0, EndTime: 900},
		{Subtitle: subs[1], StartTime: 900, EndTime: 1500},
	}, "g")

	restored := list.Undo()
	assert.Len(t, restored, 2)
	assert.Equal(t, [2]int64{0, 500}, subs[0].Timings())
	assert.Equal(t, [2]int64{1000, 1500}, subs[1].Timings())
}

func TestList_NewChangeClearsRedo(t *testing.T) {
	list, subs := newTestList()
	list.UpdateSubtitleTime(subs[0], 0, 600)
	list.Undo()
	require.True(t, list.CanRedo())

	list.UpdateSubtitleTime(subs[0], 0, 700)
	assert.False(t, list.CanRedo())
}

func TestList_InsertRemove(t *testing.T) {
	list, subs := newTestList()
	extra := New("extra")

	require.NoError(t, list.InsertBefore(subs[1], extra))
	assert.Equal(t, 1, list.Index(extra))
	assert.Same(t, extra, list.Next(subs[0]))

	require.NoError(t, list.Remove(extra))
	assert.Equal(t, -1, list.Index(extra))
	assert.ErrorIs(t, list.Remove(extra), ErrNotFound)
	assert.ErrorIs(t, list.InsertBefore(extra, New("x")), ErrNotFound)
}
