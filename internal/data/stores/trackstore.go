package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/core/track"
	"github.com/colonyops/cuesync/internal/data/db"
)

// TrackStore implements track.Store using SQLite.
type TrackStore struct {
	db  *db.DB
	now func() time.Time
}

var _ track.Store = (*TrackStore)(nil)

// NewTrackStore creates a new SQLite-backed track store.
func NewTrackStore(db *db.DB) *TrackStore {
	return &TrackStore{db: db, now: time.Now}
}

// Save writes the track and replaces its subtitles in one transaction.
func (s *TrackStore) Save(ctx context.Context, t track.Track) error {
	if t.Name == "" {
		return fmt.Errorf("save track: name is required")
	}

	now := s.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	err := retryBusy(func() error {
		return s.db.WithTx(ctx, func(q *db.Queries) error {
			if err := q.UpsertTrack(ctx, db.UpsertTrackParams{
				Name:       t.Name,
				MediaPath:  t.MediaPath,
				DurationMs: t.DurationMS,
				CreatedAt:  t.CreatedAt.UnixNano(),
				UpdatedAt:  now.UnixNano(),
			}); err != nil {
				return err
			}

			if err := q.DeleteSubtitles(ctx, t.Name); err != nil {
				return err
			}

			for i, sub := range t.Subtitles {
				if err := q.InsertSubtitle(ctx, db.Subtitle{
					Track:    t.Name,
					Position: int64(i),
					ID:       sub.ID,
					Region:   sub.Region,
					StartMs:  sub.StartTime,
					EndMs:    sub.EndTime,
					Content:  sub.Content,
				}); err != nil {
					return fmt.Errorf("subtitle %d: %w", i, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save track %q: %w", t.Name, err)
	}

	return nil
}

// Load returns a track with its subtitles. Returns track.ErrNotFound if missing.
func (s *TrackStore) Load(ctx context.Context, name string) (track.Track, error) {
	row, err := s.db.Queries().GetTrack(ctx, name)
	if IsNotFoundError(err) {
		return track.Track{}, fmt.Errorf("load %q: %w", name, track.ErrNotFound)
	}
	if err != nil {
		return track.Track{}, fmt.Errorf("failed to get track: %w", err)
	}

	rows, err := s.db.Queries().ListSubtitles(ctx, name)
	if err != nil {
		return track.Track{}, fmt.Errorf("failed to list subtitles: %w", err)
	}

	t := track.Track{
		Name:       row.Name,
		MediaPath:  row.MediaPath,
		DurationMS: row.DurationMs,
		Subtitles:  make([]*subtitle.Subtitle, 0, len(rows)),
		CreatedAt:  time.Unix(0, row.CreatedAt),
		UpdatedAt:  time.Unix(0, row.UpdatedAt),
	}
	for _, r := range rows {
		t.Subtitles = append(t.Subtitles, &subtitle.Subtitle{
			ID:        r.ID,
			Region:    r.Region,
			StartTime: r.StartMs,
			EndTime:   r.EndMs,
			Content:   r.Content,
		})
	}

	return t, nil
}

// List returns summaries of all tracks, most recently updated first.
func (s *TrackStore) List(ctx context.Context) ([]track.Summary, error) {
	rows, err := s.db.Queries().ListTracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	out := make([]track.Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, track.Summary{
			Name:       r.Name,
			MediaPath:  r.MediaPath,
			DurationMS: r.DurationMs,
			Total:      int(r.Total),
			Synced:     int(r.Synced),
			UpdatedAt:  time.Unix(0, r.UpdatedAt),
		})
	}
	return out, nil
}

// Delete removes a track, its subtitles and its journal.
func (s *TrackStore) Delete(ctx context.Context, name string) error {
	var affected int64
	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		if err := q.DeleteJournal(ctx, name); err != nil {
			return err
		}
		if err := q.DeleteSubtitles(ctx, name); err != nil {
			return err
		}
		n, err := q.DeleteTrack(ctx, name)
		affected = n
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete track %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete %q: %w", name, track.ErrNotFound)
	}
	return nil
}
