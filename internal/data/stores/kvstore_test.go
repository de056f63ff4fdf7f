package stores

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cuesync/internal/core/kv"
	"github.com/colonyops/cuesync/internal/data/db"
)

func newTestKVStore(t *testing.T) *KVStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewKVStore(database)
}

func TestKVStore_ViewState(t *testing.T) {
	ctx := context.Background()
	views := kv.Views(newTestKVStore(t))

	_, err := views.Get(ctx, "ep1")
	require.ErrorIs(t, err, sql.ErrNoRows)

	fallback := kv.ViewState{Scale: 0.1}
	got, err := views.GetOr(ctx, "ep1", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	want := kv.ViewState{Scale: 0.25, PositionMS: 61500, SelectedID: "sub-3"}
	require.NoError(t, views.Set(ctx, "ep1", want))

	got, err = views.Get(ctx, "ep1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want.PositionMS = 0
	require.NoError(t, views.Set(ctx, "ep1", want))
	got, err = views.Get(ctx, "ep1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.PositionMS, "set overwrites")
}

func TestKVStore_ScopesDoNotCollide(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)
	views := kv.Views(store)
	app := kv.App(store)

	require.NoError(t, views.Set(ctx, kv.KeyLastTrack, kv.ViewState{Scale: 1}))
	require.NoError(t, app.Set(ctx, kv.KeyLastTrack, "ep2"))

	last, err := app.Get(ctx, kv.KeyLastTrack)
	require.NoError(t, err)
	assert.Equal(t, "ep2", last)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		kv.NamespaceApp + ":" + kv.KeyLastTrack,
		kv.NamespaceView + ":" + kv.KeyLastTrack,
	}, keys)
}

func TestKVStore_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	has, err := store.Has(ctx, "view:ep1")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.Set(ctx, "view:ep1", kv.ViewState{Scale: 0.1}))
	has, err = store.Has(ctx, "view:ep1")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, store.Delete(ctx, "view:ep1"))
	has, err = store.Has(ctx, "view:ep1")
	require.NoError(t, err)
	assert.False(t, has)

	var v kv.ViewState
	assert.ErrorIs(t, store.Get(ctx, "view:ep1", &v), sql.ErrNoRows)
}
