// Package drag implements the timeline drag sessions: panning the timeline,
// moving a subtitle, resizing one edge, and resizing the shared boundary of
// two touching subtitles.
//
// A session is created active by the Factory, receives any number of Update
// calls with a delta relative to where the gesture started, and is finished
// exactly once by End or Cancel. Every Update re-derives its result from the
// snapshot taken at creation, so repeating a delta is idempotent.
package drag

import (
	"math"

	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// Kind names a session variant.
type Kind string

const (
	KindPan           Kind = "pan"
	KindMove          Kind = "move"
	KindResizeStart   Kind = "resize-start"
	KindResizeEnd     Kind = "resize-end"
	KindResizeCoupled Kind = "resize-coupled"
)

// State is the lifecycle state of a session.
type State int

const (
	StateActive State = iota
	StateEnded
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Session is one drag gesture.
type Session interface {
	Kind() Kind
	State() State
	ChangeGroup() string
	// Bounds returns the allowed delta range in milliseconds.
	Bounds() (minDelta, maxDelta int64)
	// Snappings returns the deltas a pointer drag locks onto.
	Snappings() []int64
	Clamp(deltaMS int64) int64
	// Update applies deltaMS, measured from the start of the gesture.
	Update(deltaMS int64)
	End()
	Cancel()
}

// snapshot is the state of the dragged subtitle and its synced neighbours
// when the session was created. It is never modified afterwards.
type snapshot struct {
	sub        *subtitle.Subtitle
	start, end int64

	prev    *subtitle.Subtitle
	prevEnd int64

	next      *subtitle.Subtitle
	nextStart int64
	nextEnd   int64

	currentTime int64
	duration    int64
}

func takeSnapshot(seq subtitle.Sequence, s *subtitle.Subtitle, currentTime, duration int64) snapshot {
	snap := snapshot{
		sub:         s,
		start:       s.StartTime,
		end:         s.EndTime,
		currentTime: currentTime,
		duration:    duration,
	}
	if prev := seq.Prev(s); prev != nil && prev.IsSynced() {
		snap.prev = prev
		snap.prevEnd = prev.EndTime
	}
	if next := seq.Next(s); next != nil && next.IsSynced() {
		snap.next = next
		snap.nextStart = next.StartTime
		snap.nextEnd = next.EndTime
	}
	return snap
}

// base carries the state every variant shares.
type base struct {
	env       *Env
	kind      Kind
	group     string
	minDelta  int64
	maxDelta  int64
	snappings []int64
	state     State
	updates   int
	finalize  func()
}

func newBase(env *Env, kind Kind, group string) base {
	return base{
		env:      env,
		kind:     kind,
		group:    group,
		minDelta: math.MinInt64,
		maxDelta: math.MaxInt64,
	}
}

func (b *base) Kind() Kind          { return b.kind }
func (b *base) State() State        { return b.state }
func (b *base) ChangeGroup() string { return b.group }
func (b *base) Snappings() []int64  { return b.snappings }

func (b *base) Bounds() (int64, int64) {
	return b.minDelta, b.maxDelta
}

// Clamp limits deltaMS to the session bounds. When the bounds are inverted
// the lower bound wins.
func (b *base) Clamp(deltaMS int64) int64 {
	return max(b.minDelta, min(b.maxDelta, deltaMS))
}

// begin reports whether an update may be applied and counts it.
func (b *base) begin() bool {
	if b.state != StateActive {
		return false
	}
	b.updates++
	return true
}

func (b *base) End()    { b.finish(StateEnded) }
func (b *base) Cancel() { b.finish(StateCancelled) }

func (b *base) finish(state State) {
	if b.state != StateActive {
		return
	}
	b.state = state
	if b.finalize != nil {
		b.finalize()
	}
	b.env.Logger.Debug().
		Str("kind", string(b.kind)).
		Str("change_group", b.group).
		Stringer("state", state).
		Int("updates", b.updates).
		Msg("drag session finished")
}

// apply writes one mutation batch tagged with the session change group.
func (b *base) apply(changes ...subtitle.Change) {
	b.env.apply(changes, b.group, "drag")
}
