package kv_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cuesync/internal/core/kv"
	"github.com/colonyops/cuesync/internal/data/db"
	"github.com/colonyops/cuesync/internal/data/stores"
)

func newTestKV(t *testing.T) kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

func TestTypedKV_ScopedPrefix(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	views := kv.Views(store)
	app := kv.App(store)

	require.NoError(t, views.Set(ctx, "pilot", kv.ViewState{Scale: 2, PositionMS: 1500}))
	require.NoError(t, app.Set(ctx, kv.KeyLastTrack, "pilot"))

	got, err := views.Get(ctx, "pilot")
	require.NoError(t, err)
	assert.Equal(t, kv.ViewState{Scale: 2, PositionMS: 1500}, got)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"app:last-track", "view:pilot"}, keys)
}

func TestTypedKV_GetOr(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	views := kv.Views(store)

	fallback := kv.ViewState{Scale: 1}
	got, err := views.GetOr(ctx, "missing", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	_, err = views.Get(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTypedKV_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	app := kv.App(store)

	has, err := app.Has(ctx, kv.KeyLastTrack)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, app.Set(ctx, kv.KeyLastTrack, "pilot"))
	has, err = app.Has(ctx, kv.KeyLastTrack)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, app.Delete(ctx, kv.KeyLastTrack))
	has, err = app.Has(ctx, kv.KeyLastTrack)
	require.NoError(t, err)
	assert.False(t, has)
}
