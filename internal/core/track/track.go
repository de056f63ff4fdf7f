// Package track defines the stored subtitle track and its persistence contract.
package track

import (
	"context"
	"errors"
	"time"

	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// ErrNotFound is returned when a track does not exist.
var ErrNotFound = errors.New("track not found")

// Track is a named, ordered subtitle list bound to an optional media file.
type Track struct {
	Name       string               `json:"name"`
	MediaPath  string               `json:"media_path,omitempty"`
	DurationMS int64                `json:"duration_ms"`
	Subtitles  []*subtitle.Subtitle `json:"subtitles,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// Summary is a track listing row.
type Summary struct {
	Name       string    `json:"name"`
	MediaPath  string    `json:"media_path,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Total      int       `json:"total"`
	Synced     int       `json:"synced"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Progress returns the synced fraction in [0, 1].
func (s Summary) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Synced) / float64(s.Total)
}

// Store persists tracks.
type Store interface {
	Save(ctx context.Context, t Track) error
	Load(ctx context.Context, name string) (Track, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, name string) error
}
