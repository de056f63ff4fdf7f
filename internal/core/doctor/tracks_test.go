package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/core/track"
)

type memTracks struct {
	tracks map[string]track.Track
	saves  int
}

func (m *memTracks) Save(_ context.Context, t track.Track) error {
	m.tracks[t.Name] = t
	m.saves++
	return nil
}

func (m *memTracks) Load(_ context.Context, name string) (track.Track, error) {
	t, ok := m.tracks[name]
	if !ok {
		return track.Track{}, track.ErrNotFound
	}
	return t, nil
}

func (m *memTracks) List(context.Context) ([]track.Summary, error) {
	var out []track.Summary
	for _, t := range m.tracks {
		sum := track.Summary{Name: t.Name, Total: len(t.Subtitles)}
		for _, s := range t.Subtitles {
			if s.IsSynced() {
				sum.Synced++
			}
		}
		out = append(out, sum)
	}
	return out, nil
}

func (m *memTracks) Delete(_ context.Context, name string) error {
	delete(m.tracks, name)
	return nil
}

func TestTracksCheck_Healthy(t *testing.T) {
	store := &memTracks{tracks: map[string]track.Track{
		"ep1": {Name: "ep1", Subtitles: []*subtitle.Subtitle{
			subtitle.NewSynced(0, 1000, "a"),
			subtitle.NewSynced(1000, 2000, "b"),
			subtitle.New("c"),
		}},
	}}

	result := NewTracksCheck(store, 250, false).Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "2/3 synced", result.Items[0].Detail)
}

func TestTracksCheck_Issues(t *testing.T) {
	subs := []*subtitle.Subtitle{
		subtitle.NewSynced(0, 1500, "overlaps"),
		subtitle.NewSynced(1000, 1100, "short"),
		subtitle.NewSynced(5000, 9000, "past media"),
	}
	store := &memTracks{tracks: map[string]track.Track{
		"ep1": {Name: "ep1", DurationMS: 8000, Subtitles: subs},
	}}

	result := NewTracksCheck(store, 250, false).Run(context.Background())

	require.Len(t, result.Items, 3)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, "#1 overlaps #2 by 500ms", result.Items[0].Detail)
	assert.True(t, result.Items[0].Fixable)

	assert.Equal(t, StatusWarn, result.Items[1].Status)
	assert.True(t, result.Items[1].Fixable)

	assert.Equal(t, "#3 ends after the media (8000ms)", result.Items[2].Detail)
	assert.False(t, result.Items[2].Fixable)

	assert.Equal(t, 0, store.saves)
	assert.Equal(t, 2, CountFixable([]Result{result}))
}

func TestTracksCheck_Autofix(t *testing.T) {
	subs := []*subtitle.Subtitle{
		subtitle.NewSynced(0, 1500, "overlaps"),
		subtitle.NewSynced(1000, 1100, "short"),
	}
	store := &memTracks{tracks: map[string]track.Track{
		"ep1": {Name: "ep1", Subtitles: subs},
	}}

	result := NewTracksCheck(store, 250, true).Run(context.Background())

	for _, item := range result.Items {
		assert.Equal(t, StatusPass, item.Status, item.Detail)
	}
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, [2]int64{0, 1000}, subs[0].Timings())
	assert.Equal(t, [2]int64{1000, 1250}, subs[1].Timings())
}
