package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cuesync/internal/core/config"
	"github.com/colonyops/cuesync/internal/core/drag"
	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/core/track"
	"github.com/colonyops/cuesync/internal/core/video"
	"github.com/colonyops/cuesync/pkg/tuitest"
)

type fakeTracks struct {
	mu    sync.Mutex
	saved []track.Track
}

func (f *fakeTracks) Save(_ context.Context, t track.Track) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, t)
	return nil
}

func (f *fakeTracks) Load(context.Context, string) (track.Track, error) {
	return track.Track{}, track.ErrNotFound
}
func (f *fakeTracks) List(context.Context) ([]track.Summary, error) { return nil, nil }
func (f *fakeTracks) Delete(context.Context, string) error          { return nil }

type editorFixture struct {
	m      *Model
	subs   []*subtitle.Subtitle
	clock  *video.Clock
	tracks *fakeTracks
	now    time.Time
}

// newEditor builds a 100x30 editor at 100ms per cell. With the clock at 0
// the visible span starts at -5000ms, so time t sits in column (t+5000)/100.
func newEditor(t *testing.T) *editorFixture {
	t.Helper()

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)

	f := &editorFixture{
		subs: []*subtitle.Subtitle{
			subtitle.NewSynced(1000, 2000, "first line"),
			subtitle.NewSynced(3000, 4000, "second line"),
			subtitle.New("third line"),
		},
		tracks: &fakeTracks{},
		now:    time.Unix(1700000000, 0),
	}
	f.clock = video.NewClock(60000).WithNow(func() time.Time { return f.now })

	m, err := New(cfg, Options{
		Track:  track.Track{Name: "ep1", DurationMS: 60000, Subtitles: f.subs},
		Tracks: f.tracks,
		Clock:  f.clock,
		Now:    func() time.Time { return f.now },
	})
	require.NoError(t, err)
	f.m = m

	f.send(tuitest.WindowSize(100, 30))
	return f
}

func (f *editorFixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.m.Update(msg)
	return cmd
}

func col(t int64) int { return int((t + 5000) / 100) }

func TestModel_HitTesting(t *testing.T) {
	f := newEditor(t)
	l := f.m.layout()

	tests := []struct {
		name   string
		x, y   int
		target drag.Target
		sub    int
	}{
		{"body", col(1500), rowBlocks, drag.TargetBody, 0},
		{"start handle", col(1000), rowBlocks + 1, drag.TargetStartHandle, 0},
		{"end handle", col(2000) - 1, rowBlocks, drag.TargetEndHandle, 0},
		{"ruler is blank", col(1500), rowRuler, drag.TargetBlank, -1},
		{"gap is blank", col(2500), rowBlocks, drag.TargetBlank, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := l.hit(f.m.list, tt.x, tt.y)
			require.True(t, ok)
			assert.Equal(t, tt.target, hit.Target)
			if tt.sub >= 0 {
				assert.Same(t, f.subs[tt.sub], hit.Subtitle)
			} else {
				assert.Nil(t, hit.Subtitle)
			}
		})
	}

	_, ok := l.hit(f.m.list, 10, rowLines)
	assert.False(t, ok)
}

func TestModel_HitTesting_DualHandle(t *testing.T) {
	f := newEditor(t)
	f.subs[1].StartTime = 2000
	l := f.m.layout()

	hit, _ := l.hit(f.m.list, col(2000)-1, rowBlocks)
	assert.Equal(t, drag.TargetDualHandle, hit.Target)
	assert.Same(t, f.subs[0], hit.Subtitle)

	hit, _ = l.hit(f.m.list, col(2000), rowBlocks)
	assert.Equal(t, drag.TargetDualHandle, hit.Target)
	assert.Same(t, f.subs[0], hit.Subtitle, "the earlier subtitle owns the shared boundary")
}

func TestModel_MouseMoveAndUndo(t *testing.T) {
	f := newEditor(t)

	f.send(tuitest.Click(col(1500), rowBlocks))
	require.NotNil(t, f.m.ctrl.Mouse())
	assert.Equal(t, drag.KindMove, f.m.ctrl.Mouse().Kind())

	f.send(tuitest.Drag(col(1500)+5, rowBlocks))
	f.send(tuitest.Release(col(1500)+5, rowBlocks))

	assert.Nil(t, f.m.ctrl.Active())
	assert.Equal(t, [2]int64{1500, 2500}, f.subs[0].Timings())
	assert.True(t, f.m.Dirty())

	f.send(tuitest.Ctrl('z'))
	assert.Equal(t, [2]int64{1000, 2000}, f.subs[0].Timings())
}

func TestModel_UndoDuringMouseDragEndsIt(t *testing.T) {
	f := newEditor(t)

	f.send(tuitest.Click(col(1500), rowBlocks))
	f.send(tuitest.Drag(col(1500)+5, rowBlocks))
	require.Equal(t, [2]int64{1500, 2500}, f.subs[0].Timings())

	f.send(tuitest.Ctrl('z'))
	assert.Nil(t, f.m.ctrl.Mouse())
	assert.Equal(t, [2]int64{1000, 2000}, f.subs[0].Timings())

	f.send(tuitest.Drag(col(1500)+8, rowBlocks))
	assert.Equal(t, [2]int64{1000, 2000}, f.subs[0].Timings(), "the ended drag does not reapply")
	assert.False(t, f.m.list.CanUndo())
}

func TestModel_EscCancelsMouseDrag(t *testing.T) {
	f := newEditor(t)

	f.send(tuitest.Click(col(1500), rowBlocks))
	f.send(tuitest.Drag(col(1500)+3, rowBlocks))
	f.send(tuitest.KeyCode(tea.KeyEscape))

	assert.Nil(t, f.m.ctrl.Mouse())
	assert.Nil(t, f.m.ctrl.Keyboard(), "a cancelled drag never turns into a keyboard edit")
}

func TestModel_TapStartsKeyboardEdit(t *testing.T) {
	f := newEditor(t)

	f.send(tuitest.Click(col(3500), rowBlocks))
	f.send(tuitest.Release(col(3500), rowBlocks))

	require.NotNil(t, f.m.ctrl.Keyboard())
	assert.True(t, f.m.keys.ContextEnabled(config.ContextEdit))

	f.send(tuitest.KeyCode(tea.KeyRight))
	f.send(tuitest.KeyCode(tea.KeyRight, tea.ModShift))
	assert.Equal(t, [2]int64{3110, 4110}, f.subs[1].Timings())
	assert.Equal(t, int64(0), f.clock.CurrentTime(), "right seeks only outside the edit context")

	f.send(tuitest.KeyCode(tea.KeyEnter))
	assert.Nil(t, f.m.ctrl.Keyboard())
	assert.False(t, f.m.keys.ContextEnabled(config.ContextEdit))

	f.send(tuitest.KeyCode(tea.KeyRight))
	assert.Equal(t, int64(2000), f.clock.CurrentTime())
}

func TestModel_BlankPressPansAndSeeks(t *testing.T) {
	f := newEditor(t)

	f.send(tuitest.Click(col(2500), rowRuler))
	require.NotNil(t, f.m.ctrl.Mouse())
	assert.Equal(t, drag.KindPan, f.m.ctrl.Mouse().Kind())

	f.send(tuitest.Drag(col(2500)-10, rowRuler))
	assert.Equal(t, int64(1000), f.m.panDelta)

	f.send(tuitest.Release(col(2500)-10, rowRuler))
	assert.Equal(t, int64(1000), f.clock.CurrentTime())
	assert.Equal(t, int64(0), f.m.panDelta)
}

func TestModel_SyncKeys(t *testing.T) {
	f := newEditor(t)
	f.clock.Seek(5000)

	f.send(tuitest.KeyCode(tea.KeyDown))
	assert.Equal(t, int64(5000), f.subs[2].StartTime)

	f.clock.Seek(6500)
	f.send(tuitest.KeyCode(tea.KeyUp))
	assert.Equal(t, [2]int64{5000, 6500}, f.subs[2].Timings())

	f.send(tuitest.KeyCode(tea.KeyDown))
	assert.Equal(t, [2]int64{5000, 6500}, f.subs[2].Timings(), "nothing left to sync")
}

func TestModel_SyncKeysWaitForSyncedSubtitles(t *testing.T) {
	f := newEditor(t)
	f.clock.Seek(3500)

	f.send(tuitest.KeyCode(tea.KeyDown))
	assert.Equal(t, [2]int64{subtitle.Open, subtitle.Open}, f.subs[2].Timings())

	f.send(tuitest.KeyCode(tea.KeyUp))
	assert.Equal(t, [2]int64{subtitle.Open, subtitle.Open}, f.subs[2].Timings())
	assert.Equal(t, [2]int64{3000, 4000}, f.subs[1].Timings())
	assert.False(t, f.m.list.CanUndo())
}

func TestModel_SelectAndEditFromKeyboard(t *testing.T) {
	f := newEditor(t)

	f.send(tuitest.KeyPress(']'))
	assert.Equal(t, int64(1000), f.clock.CurrentTime())
	f.send(tuitest.KeyPress(']'))
	assert.Equal(t, int64(3000), f.clock.CurrentTime())
	assert.True(t, f.m.factory.Env().Selection.Contains(f.subs[1]))

	f.send(tuitest.KeyPress('b'))
	require.NotNil(t, f.m.ctrl.Keyboard())
	assert.Equal(t, drag.KindResizeStart, f.m.ctrl.Keyboard().Kind())

	f.send(tuitest.KeyCode(tea.KeyLeft))
	assert.Equal(t, [2]int64{2900, 4000}, f.subs[1].Timings())
}

func TestModel_ZoomClamps(t *testing.T) {
	f := newEditor(t)
	for range 10 {
		f.send(tuitest.KeyPress('+'))
	}
	assert.Equal(t, maxScale, f.m.scale)
	for range 20 {
		f.send(tuitest.KeyPress('-'))
	}
	assert.Equal(t, minScale, f.m.scale)
}

func TestModel_ViewRendersTimeline(t *testing.T) {
	f := newEditor(t)
	out := tuitest.StripANSI(f.m.content())

	assert.Contains(t, out, "ep1")
	assert.Contains(t, out, "first lin")
	assert.Contains(t, out, "00:00:01,000 → 00:00:02,000")
	assert.Contains(t, out, "sync start")

	f.send(tuitest.KeyPress('?'))
	out = tuitest.StripANSI(f.m.content())
	assert.Contains(t, out, "Keybindings")
	assert.Contains(t, out, "snap boundary")

	f.send(tuitest.KeyCode(tea.KeyEscape))
	assert.False(t, f.m.showHelp)
}

func TestModel_SaveAndClose(t *testing.T) {
	f := newEditor(t)

	f.send(tuitest.Click(col(1500), rowBlocks))
	f.send(tuitest.Drag(col(1500)+2, rowBlocks))

	require.NoError(t, f.m.Close(context.Background()))
	assert.Nil(t, f.m.ctrl.Active())
	require.Len(t, f.tracks.saved, 1)

	saved := f.tracks.saved[0]
	assert.Equal(t, "ep1", saved.Name)
	assert.Equal(t, int64(1200), saved.Subtitles[0].StartTime)
	assert.NotSame(t, f.subs[0], saved.Subtitles[0])
	assert.False(t, f.m.Dirty())
}

func TestModel_SaveKeyRunsCommand(t *testing.T) {
	f := newEditor(t)
	f.send(tuitest.KeyCode(tea.KeyDown))
	require.True(t, f.m.Dirty())

	cmd := f.m.saveCmd()
	require.NotNil(t, cmd)
	msg := cmd()
	f.send(msg)

	assert.False(t, f.m.Dirty())
	require.Len(t, f.tracks.saved, 1)
}
