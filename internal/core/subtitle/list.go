package subtitle

import (
	"fmt"
	"slices"
)

type timing struct {
	sub        *Subtitle
	start, end int64
}

// step is one undoable unit. before holds the timings prior to the first
// change of the step, after holds the latest applied timings.
type step struct {
	group  string
	before []timing
	after  []timing
}

func upsert(list []timing, s *Subtitle, start, end int64) []timing {
	for i := range list {
		if list[i].sub == s {
			list[i].start, list[i].end = start, end
			return list
		}
	}
	return append(list, timing{sub: s, start: start, end: end})
}

func (st *step) hasBefore(s *Subtitle) bool {
	for _, t := range st.before {
		if t.sub == s {
			return true
		}
	}
	return false
}

// List is an ordered in-memory subtitle collection with undo/redo grouped by
// change group. It is not safe for concurrent use.
type List struct {
	subs []*Subtitle
	undo []*step
	redo []*step
}

var _ Sequence = (*List)(nil)

// NewList creates a list holding subs in order.
func NewList(subs ...*Subtitle) *List {
	return &List{subs: slices.Clone(subs)}
}

// Subtitles returns the subtitles in order. The slice is a copy; the
// subtitles are shared.
func (l *List) Subtitles() []*Subtitle {
	return slices.Clone(l.subs)
}

// Len returns the number of subtitles.
func (l *List) Len() int {
	return len(l.subs)
}

// Index returns the position of s or -1.
func (l *List) Index(s *Subtitle) int {
	if s == nil {
		return -1
	}
	return slices.Index(l.subs, s)
}

// Get returns the subtitle at position i or nil.
func (l *List) Get(i int) *Subtitle {
	if i < 0 || i >= len(l.subs) {
		return nil
	}
	return l.subs[i]
}

// Append adds subs to the end of the list.
func (l *List) Append(subs ...*Subtitle) {
	l.subs = append(l.subs, subs...)
}

// InsertBefore inserts s before the given subtitle, or appends when before is nil.
func (l *List) InsertBefore(before, s *Subtitle) error {
	if before == nil {
		l.subs = append(l.subs, s)
		return nil
	}
	idx := l.Index(before)
	if idx < 0 {
		return fmt.Errorf("insert before %s: %w", before.ID, ErrNotFound)
	}
	l.subs = slices.Insert(l.subs, idx, s)
	return nil
}

// Remove deletes s from the list. Undo history referencing removed
// subtitles can no longer be replayed, so history is cleared.
func (l *List) Remove(s *Subtitle) error {
	idx := l.Index(s)
	if idx < 0 {
		return fmt.Errorf("remove %s: %w", s.ID, ErrNotFound)
	}
	l.subs = slices.Delete(l.subs, idx, idx+1)
	l.undo = nil
	l.redo = nil
	return nil
}

// FirstUnsynced returns the first subtitle without both edges set.
func (l *List) FirstUnsynced() *Subtitle {
	for _, s := range l.subs {
		if !s.IsSynced() {
			return s
		}
	}
	return nil
}

// SecondUnsynced returns the unsynced subtitle after FirstUnsynced.
func (l *List) SecondUnsynced() *Subtitle {
	seen := false
	for _, s := range l.subs {
		if s.IsSynced() {
			continue
		}
		if seen {
			return s
		}
		seen = true
	}
	return nil
}

// LastSynced returns the last synced subtitle in list order.
func (l *List) LastSynced() *Subtitle {
	for i := len(l.subs) - 1; i >= 0; i-- {
		if l.subs[i].IsSynced() {
			return l.subs[i]
		}
	}
	return nil
}

// Next returns the subtitle after s.
func (l *List) Next(s *Subtitle) *Subtitle {
	idx := l.Index(s)
	if idx < 0 {
		return nil
	}
	return l.Get(idx + 1)
}

// Prev returns the subtitle before s.
func (l *List) Prev(s *Subtitle) *Subtitle {
	idx := l.Index(s)
	if idx < 0 {
		return nil
	}
	return l.Get(idx - 1)
}

// FirstAfter returns the first synced subtitle with StartTime >= t.
func (l *List) FirstAfter(t int64) *Subtitle {
	for _, s := range l.subs {
		if s.IsSynced() && s.StartTime >= t {
			return s
		}
	}
	return nil
}

// At returns the synced subtitle displayed at t.
func (l *List) At(t int64) *Subtitle {
	for _, s := range l.subs {
		if s.IsAt(t) {
			return s
		}
	}
	return nil
}

// ForTime returns synced subtitles overlapping [start, end).
func (l *List) ForTime(start, end int64) []*Subtitle {
	var out []*Subtitle
	for _, s := range l.subs {
		if s.IsSynced() && s.EndTime > start && s.StartTime < end {
			out = append(out, s)
		}
	}
	return out
}

// UpdateSubtitleTimes applies changes atomically and records them for undo.
// Consecutive calls with the same non-empty changeGroup coalesce.
func (l *List) UpdateSubtitleTimes(changes []Change, changeGroup string) {
	if len(changes) == 0 {
		return
	}

	var st *step
	if changeGroup != "" && len(l.undo) > 0 && l.undo[len(l.undo)-1].group == changeGroup {
		st = l.undo[len(l.undo)-1]
	} else {
		st = &step{group: changeGroup}
		l.undo = append(l.undo, st)
	}

	for _, c := range changes {
		if !st.hasBefore(c.Subtitle) {
			st.before = append(st.before, timing{sub: c.Subtitle, start: c.Subtitle.StartTime, end: c.Subtitle.EndTime})
		}
	}
	for _, c := range changes {
		c.Subtitle.StartTime = c.StartTime
		c.Subtitle.EndTime = c.EndTime
		st.after = upsert(st.after, c.Subtitle, c.StartTime, c.EndTime)
	}
	l.redo = nil
}

// UpdateSubtitleTime is the single change form of UpdateSubtitleTimes.
func (l *List) UpdateSubtitleTime(s *Subtitle, start, end int64) {
	l.UpdateSubtitleTimes([]Change{{Subtitle: s, StartTime: start, EndTime: end}}, "")
}

// CanUndo reports whether there is a step to undo.
func (l *List) CanUndo() bool { return len(l.undo) > 0 }

// CanRedo reports whether there is a step to redo.
func (l *List) CanRedo() bool { return len(l.redo) > 0 }

// Undo reverts the most recent step and returns the restored changes.
func (l *List) Undo() []Change {
	if len(l.undo) == 0 {
		return nil
	}
	st := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, st)
	return apply(st.before)
}

// Redo reapplies the most recently undone step and returns its changes.
func (l *List) Redo() []Change {
	if len(l.redo) == 0 {
		return nil
	}
	st := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, st)
	return apply(st.after)
}

func apply(ts []timing) []Change {
	changes := make([]Change, 0, len(ts))
	for _, t := range ts {
		t.sub.StartTime = t.start
		t.sub.EndTime = t.end
		changes = append(changes, Change{Subtitle: t.sub, StartTime: t.start, EndTime: t.end})
	}
	return changes
}
