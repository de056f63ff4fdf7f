package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/core/track"
	"github.com/colonyops/cuesync/internal/data/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err, "Open")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func testTrack() track.Track {
	return track.Track{
		Name:       "pilot",
		MediaPath:  "/media/pilot.mkv",
		DurationMS: 60000,
		Subtitles: []*subtitle.Subtitle{
			subtitle.NewSynced(0, 500, "one"),
			subtitle.NewSynced(1000, 1500, "two"),
			subtitle.New("three"),
		},
	}
}

func TestTrackStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load", func(t *testing.T) {
		store := NewTrackStore(openTestDB(t))
		want := testTrack()
		want.Subtitles[1].Region = "top"

		require.NoError(t, store.Save(ctx, want), "Save")

		got, err := store.Load(ctx, "pilot")
		require.NoError(t, err, "Load")
		assert.Equal(t, want.MediaPath, got.MediaPath)
		assert.Equal(t, want.DurationMS, got.DurationMS)
		require.Len(t, got.Subtitles, 3)
		for i := range want.Subtitles {
			assert.Equal(t, *want.Subtitles[i], *got.Subtitles[i])
		}
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("save replaces subtitles", func(t *testing.T) {
		store := NewTrackStore(openTestDB(t))
		tr := testTrack()
		require.NoError(t, store.Save(ctx, tr))

		tr.Subtitles = tr.Subtitles[:1]
		tr.Subtitles[0].EndTime = 800
		require.NoError(t, store.Save(ctx, tr))

		got, err := store.Load(ctx, "pilot")
		require.NoError(t, err)
		require.Len(t, got.Subtitles, 1)
		assert.Equal(t, int64(800), got.Subtitles[0].EndTime)
	})

	t.Run("load missing", func(t *testing.T) {
		store := NewTrackStore(openTestDB(t))
		_, err := store.Load(ctx, "nope")
		assert.ErrorIs(t, err, track.ErrNotFound)
	})

	t.Run("save requires name", func(t *testing.T) {
		store := NewTrackStore(openTestDB(t))
		assert.Error(t, store.Save(ctx, track.Track{}))
	})

	t.Run("list orders by update", func(t *testing.T) {
		store := NewTrackStore(openTestDB(t))
		clock := time.Unix(1000, 0)
		store.now = func() time.Time { return clock }

		first := testTrack()
		require.NoError(t, store.Save(ctx, first))

		clock = clock.Add(time.Minute)
		second := testTrack()
		second.Name = "finale"
		second.Subtitles = second.Subtitles[2:]
		require.NoError(t, store.Save(ctx, second))

		got, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "finale", got[0].Name)
		assert.Equal(t, 1, got[0].Total)
		assert.Equal(t, 0, got[0].Synced)
		assert.Equal(t, "pilot", got[1].Name)
		assert.Equal(t, 3, got[1].Total)
		assert.Equal(t, 2, got[1].Synced)
	})

	t.Run("delete", func(t *testing.T) {
		database := openTestDB(t)
		store := NewTrackStore(database)
		journal := NewJournalStore(database)

		tr := testTrack()
		require.NoError(t, store.Save(ctx, tr))
		require.NoError(t, journal.Record(ctx, "pilot", "", "sync", []subtitle.Change{
			{Subtitle: tr.Subtitles[0], StartTime: 0, EndTime: 600},
		}))

		require.NoError(t, store.Delete(ctx, "pilot"))
		_, err := store.Load(ctx, "pilot")
		assert.ErrorIs(t, err, track.ErrNotFound)

		entries, err := journal.List(ctx, "pilot", 0)
		require.NoError(t, err)
		assert.Empty(t, entries)

		assert.ErrorIs(t, store.Delete(ctx, "pilot"), track.ErrNotFound)
	})
}
