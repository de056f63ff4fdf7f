package drag

import "time"

// Scheduler runs deferred callbacks on the caller's event loop. The returned
// cancel func prevents fn from running; calling it after fn ran is a no-op.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// ManualScheduler queues callbacks until Flush is called.
type ManualScheduler struct {
	pending []*manualTask
}

type manualTask struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

// Schedule queues fn.
func (m *ManualScheduler) Schedule(d time.Duration, fn func()) func() {
	task := &manualTask{delay: d, fn: fn}
	m.pending = append(m.pending, task)
	return func() { task.cancelled = true }
}

// Pending returns the number of queued callbacks that were not cancelled.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Flush runs every queued callback that was not cancelled, in order.
func (m *ManualScheduler) Flush() {
	tasks := m.pending
	m.pending = nil
	for _, t := range tasks {
		if !t.cancelled {
			t.fn()
		}
	}
}
