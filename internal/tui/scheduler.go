package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/cuesync/internal/core/drag"
)

// playbackTickMsg advances the playback clock.
type playbackTickMsg time.Time

// schedulePlaybackTick returns a command that schedules the next clock tick.
func schedulePlaybackTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return playbackTickMsg(t)
	})
}

// scheduledMsg fires a callback registered with the TickScheduler.
type scheduledMsg struct {
	id uint64
}

// TickScheduler runs drag callbacks on the Update goroutine. Schedule only
// queues a tea.Tick; the model collects queued ticks with Cmd after each
// message and routes scheduledMsg back through Run.
type TickScheduler struct {
	next    uint64
	tasks   map[uint64]func()
	pending []tea.Cmd
}

var _ drag.Scheduler = (*TickScheduler)(nil)

// NewTickScheduler creates an empty scheduler.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{tasks: make(map[uint64]func())}
}

// Schedule registers fn to run after d.
func (s *TickScheduler) Schedule(d time.Duration, fn func()) func() {
	s.next++
	id := s.next
	s.tasks[id] = fn
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return scheduledMsg{id: id}
	}))
	return func() { delete(s.tasks, id) }
}

// Run executes the callback for id unless it was cancelled. Returns whether
// a callback ran.
func (s *TickScheduler) Run(id uint64) bool {
	fn, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	fn()
	return true
}

// Cmd returns the ticks queued since the last call, or nil.
func (s *TickScheduler) Cmd() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Len returns the number of callbacks still waiting to run.
func (s *TickScheduler) Len() int {
	return len(s.tasks)
}
