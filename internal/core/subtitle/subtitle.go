// Package subtitle defines subtitle domain types and the sequence contract
// the timing engine edits through.
package subtitle

import (
	"errors"

	"github.com/google/uuid"
)

// Open marks a timing that has not been synced yet.
const Open int64 = -1

// Default timing constraints, in milliseconds.
const (
	DefaultMinDuration     int64 = 250
	DefaultDefaultDuration int64 = 2000
)

// ErrNotFound is returned when a subtitle is not part of a list.
var ErrNotFound = errors.New("subtitle not found")

// Subtitle is a single cue. Times are milliseconds; EndTime == Open means the
// subtitle is unsynced (StartTime may or may not be set).
type Subtitle struct {
	ID        string `json:"id"`
	Region    string `json:"region,omitempty"`
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
	Content   string `json:"content"`
}

// New creates an unsynced subtitle with a fresh ID.
func New(content string) *Subtitle {
	return &Subtitle{
		ID:        uuid.NewString(),
		StartTime: Open,
		EndTime:   Open,
		Content:   content,
	}
}

// NewSynced creates a subtitle with both edges set.
func NewSynced(start, end int64, content string) *Subtitle {
	s := New(content)
	s.StartTime = start
	s.EndTime = end
	return s
}

// IsSynced reports whether both edges are assigned.
func (s *Subtitle) IsSynced() bool {
	return s.StartTime >= 0 && s.EndTime >= 0
}

// StartSynced reports whether the start edge is assigned.
func (s *Subtitle) StartSynced() bool {
	return s.StartTime >= 0
}

// Duration returns EndTime-StartTime for synced subtitles and 0 otherwise.
func (s *Subtitle) Duration() int64 {
	if !s.IsSynced() {
		return 0
	}
	return s.EndTime - s.StartTime
}

// IsAt reports whether the subtitle is displayed at t.
func (s *Subtitle) IsAt(t int64) bool {
	return s.IsSynced() && s.StartTime <= t && t < s.EndTime
}

// Timings returns the [start, end] pair.
func (s *Subtitle) Timings() [2]int64 {
	return [2]int64{s.StartTime, s.EndTime}
}

// Change is a requested timing assignment for one subtitle.
type Change struct {
	Subtitle  *Subtitle
	StartTime int64
	EndTime   int64
}

// Sequence is the query and mutation contract the timing engine relies on.
// Implementations own the subtitles; callers only hold references for the
// duration of an edit.
type Sequence interface {
	FirstUnsynced() *Subtitle
	SecondUnsynced() *Subtitle
	LastSynced() *Subtitle
	Next(s *Subtitle) *Subtitle
	Prev(s *Subtitle) *Subtitle
	// FirstAfter returns the first synced subtitle starting at or after t.
	FirstAfter(t int64) *Subtitle
	// At returns the synced subtitle displayed at t.
	At(t int64) *Subtitle
	// ForTime returns synced subtitles overlapping [start, end).
	ForTime(start, end int64) []*Subtitle

	// UpdateSubtitleTimes applies all changes at once. Calls sharing a
	// non-empty changeGroup undo as a single step.
	UpdateSubtitleTimes(changes []Change, changeGroup string)
	UpdateSubtitleTime(s *Subtitle, start, end int64)
}
