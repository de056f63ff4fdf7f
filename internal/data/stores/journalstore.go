package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/cuesync/internal/core/history"
	"github.com/colonyops/cuesync/internal/core/logging"
	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/data/db"
)

// DefaultJournalLimit caps List when no limit is given.
const DefaultJournalLimit = 50

// JournalStore implements history.Store using SQLite.
type JournalStore struct {
	db  *db.DB
	now func() time.Time
}

var _ history.Store = (*JournalStore)(nil)

// NewJournalStore creates a new SQLite-backed journal.
func NewJournalStore(db *db.DB) *JournalStore {
	return &JournalStore{db: db, now: time.Now}
}

// Record appends one row per change in a single transaction.
func (s *JournalStore) Record(ctx context.Context, trackName, group, source string, changes []subtitle.Change) error {
	if len(changes) == 0 {
		return nil
	}

	ctx = logging.WithChangeGroup(logging.WithTrackID(ctx, trackName), group)
	now := s.now().UnixNano()

	err := retryBusy(func() error {
		return s.db.WithTx(ctx, func(q *db.Queries) error {
			for _, c := range changes {
				if err := q.InsertJournal(ctx, db.InsertJournalParams{
					Track:       trackName,
					ChangeGroup: group,
					Source:      source,
					SubtitleID:  c.Subtitle.ID,
					StartMs:     c.StartTime,
					EndMs:       c.EndTime,
					CreatedAt:   now,
				}); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("failed to record journal: %w", err)
	}

	log := logging.Component("journal")
	log.Debug().Ctx(ctx).
		Str("source", source).
		Int("changes", len(changes)).
		Msg("journal recorded")
	return nil
}

// List returns the newest entries first. A limit <= 0 uses DefaultJournalLimit.
func (s *JournalStore) List(ctx context.Context, trackName string, limit int) ([]history.Entry, error) {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}

	rows, err := s.db.Queries().ListJournal(ctx, db.ListJournalParams{Track: trackName, Limit: int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}

	out := make([]history.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, history.Entry{
			ID:          r.ID,
			Track:       r.Track,
			ChangeGroup: r.ChangeGroup,
			Source:      r.Source,
			SubtitleID:  r.SubtitleID,
			StartTime:   r.StartMs,
			EndTime:     r.EndMs,
			Timestamp:   time.Unix(0, r.CreatedAt),
		})
	}
	return out, nil
}

// Clear removes a track's journal.
func (s *JournalStore) Clear(ctx context.Context, trackName string) error {
	if err := s.db.Queries().DeleteJournal(ctx, trackName); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}
