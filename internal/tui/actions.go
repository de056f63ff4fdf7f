package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/cuesync/internal/core/config"
	"github.com/colonyops/cuesync/internal/core/drag"
	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/keys"
	"github.com/colonyops/cuesync/internal/core/notify"
	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// handlers maps every built-in action to its callback.
func (m *Model) handlers() map[string]keys.Callback {
	return map[string]keys.Callback{
		config.ActionPlayPause:     m.handled(m.clock.Toggle),
		config.ActionSeekBack:      m.handled(func() { m.seekBy(-m.cfg.Timeline.SeekStepMS) }),
		config.ActionSeekForward:   m.handled(func() { m.seekBy(m.cfg.Timeline.SeekStepMS) }),
		config.ActionSyncStart:     m.whileUnsyncedShown(m.syncStart),
		config.ActionSyncEnd:       m.whileUnsyncedShown(m.syncEnd),
		config.ActionAdjustClosest: m.handled(m.adjustClosest),
		config.ActionUndo:          m.handled(func() { m.history("undo", m.list.Undo) }),
		config.ActionRedo:          m.handled(func() { m.history("redo", m.list.Redo) }),
		config.ActionZoomIn:        m.handled(func() { m.zoom(2) }),
		config.ActionZoomOut:       m.handled(func() { m.zoom(0.5) }),
		config.ActionSelectPrev:    m.handled(func() { m.selectStep(-1) }),
		config.ActionSelectNext:    m.handled(func() { m.selectStep(1) }),
		config.ActionEditMove:      m.handled(func() { m.editSelected(drag.TargetBody) }),
		config.ActionEditStart:     m.handled(func() { m.editSelected(drag.TargetStartHandle) }),
		config.ActionEditEnd:       m.handled(func() { m.editSelected(drag.TargetEndHandle) }),
		config.ActionEditLeft:      m.step(-1, false),
		config.ActionEditRight:     m.step(1, false),
		config.ActionEditLeftFine:  m.step(-1, true),
		config.ActionEditRightFine: m.step(1, true),
		config.ActionEditStop:      m.handled(m.ctrl.CancelKeyboard),
		config.ActionSave:          m.handled(func() { m.queue(m.saveCmd()) }),
		config.ActionHelp:          m.handled(func() { m.showHelp = !m.showHelp }),
		config.ActionQuit:          m.handled(m.quit),
	}
}

// handled wraps fn as a callback that always consumes the key.
func (m *Model) handled(fn func()) keys.Callback {
	return func() bool {
		fn()
		return false
	}
}

// whileUnsyncedShown runs fn only while the unsynced subtitle is on screen,
// that is once playback has passed every synced subtitle. Otherwise the key
// is left unhandled.
func (m *Model) whileUnsyncedShown(fn func()) keys.Callback {
	return func() bool {
		if !m.syncer.UnsyncedShown(m.clock.CurrentTime()) {
			return true
		}
		fn()
		return false
	}
}

// step moves the keyboard session. Without one the key is left unhandled.
func (m *Model) step(dir int, fine bool) keys.Callback {
	return func() bool {
		return !m.ctrl.KeyStep(dir, fine)
	}
}

func (m *Model) seekBy(delta int64) {
	t := m.clock.CurrentTime() + delta
	m.clock.Seek(t)
	m.bus.PublishVideoSeeked(eventbus.VideoSeekedPayload{Time: m.clock.CurrentTime()})
}

func (m *Model) syncStart() {
	if !m.syncer.SyncUnsyncedStart(m.clock.CurrentTime()) {
		m.notify(notify.LevelWarning, "every subtitle is synced")
	}
}

func (m *Model) syncEnd() {
	if !m.syncer.SyncUnsyncedEnd(m.clock.CurrentTime()) {
		m.notify(notify.LevelWarning, "no started subtitle to end")
	}
}

func (m *Model) adjustClosest() {
	if !m.syncer.AdjustClosestTiming(m.clock.CurrentTime()) {
		m.notify(notify.LevelWarning, "no boundary within %dms", m.cfg.Timeline.MaxAdjustmentMS)
	}
}

// history runs undo or redo. Live mouse and keyboard sessions are finished
// first so their snapshots never outlive the timings they were taken from.
func (m *Model) history(source string, fn func() []subtitle.Change) {
	m.ctrl.PointerLeave()
	m.ctrl.CancelKeyboard()
	changes := fn()
	if len(changes) == 0 {
		m.notify(notify.LevelWarning, "nothing to %s", source)
		return
	}
	m.bus.PublishTimingsChanged(eventbus.TimingsChangedPayload{
		Changes: changes,
		Source:  source,
	})
}

// current returns the selected subtitle, falling back to the one on screen
// at the playback position and then to the next one.
func (m *Model) current() *subtitle.Subtitle {
	if sel := m.factory.Env().Selection.Selected(); len(sel) > 0 && m.list.Index(sel[0]) >= 0 {
		return sel[0]
	}
	now := m.clock.CurrentTime()
	if s := m.list.At(now); s != nil {
		return s
	}
	return m.list.FirstAfter(now)
}

// selectStep selects the neighbouring synced subtitle and seeks to it.
// Without a selection the subtitle under the playhead is picked first.
func (m *Model) selectStep(dir int) {
	var s *subtitle.Subtitle
	if sel := m.factory.Env().Selection.Selected(); len(sel) > 0 && m.list.Index(sel[0]) >= 0 {
		s = m.neighbour(sel[0], dir)
		for s != nil && !s.IsSynced() {
			s = m.neighbour(s, dir)
		}
	} else if s = m.current(); s == nil || !s.IsSynced() {
		s = m.list.LastSynced()
	}
	if s == nil {
		return
	}
	m.factory.Env().Selection.Select(s)
	m.clock.Seek(s.StartTime)
	m.bus.PublishVideoSeeked(eventbus.VideoSeekedPayload{Time: s.StartTime})
}

func (m *Model) neighbour(s *subtitle.Subtitle, dir int) *subtitle.Subtitle {
	if dir < 0 {
		return m.list.Prev(s)
	}
	return m.list.Next(s)
}

// editSelected starts a keyboard session on the current subtitle.
func (m *Model) editSelected(target drag.Target) {
	s := m.current()
	if s == nil || !s.IsSynced() {
		m.notify(notify.LevelWarning, "no synced subtitle to edit")
		return
	}
	if target == drag.TargetEndHandle {
		if next := m.list.Next(s); next != nil && next.IsSynced() && next.StartTime == s.EndTime {
			target = drag.TargetDualHandle
		}
	}
	m.ctrl.StartKeyboard(drag.Hit{Target: target, Subtitle: s, ClickTime: m.clock.CurrentTime()})
}

func (m *Model) quit() {
	m.quitting = true
	m.queue(tea.Quit)
}
