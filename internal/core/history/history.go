// Package history defines the timing journal: an append-only record of every
// applied timing change.
package history

import (
	"context"
	"time"

	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// Entry is one journalled timing assignment.
type Entry struct {
	ID          int64     `json:"id"`
	Track       string    `json:"track"`
	ChangeGroup string    `json:"change_group,omitempty"`
	Source      string    `json:"source"`
	SubtitleID  string    `json:"subtitle_id"`
	StartTime   int64     `json:"start_time"`
	EndTime     int64     `json:"end_time"`
	Timestamp   time.Time `json:"timestamp"`
}

// Grouped reports whether the entry belongs to a drag change group.
func (e *Entry) Grouped() bool {
	return e.ChangeGroup != ""
}

// Store appends and reads journal entries.
type Store interface {
	Record(ctx context.Context, track, group, source string, changes []subtitle.Change) error
	List(ctx context.Context, track string, limit int) ([]Entry, error)
	Clear(ctx context.Context, track string) error
}
