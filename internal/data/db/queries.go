package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries holds every statement the stores use.
type Queries struct {
	db DBTX
}

// New binds queries to a connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const upsertTrack = `
INSERT INTO tracks (name, media_path, duration_ms, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    media_path = excluded.media_path,
    duration_ms = excluded.duration_ms,
    updated_at = excluded.updated_at
`

// UpsertTrackParams are the arguments of UpsertTrack.
type UpsertTrackParams struct {
	Name       string
	MediaPath  string
	DurationMs int64
	CreatedAt  int64
	UpdatedAt  int64
}

// UpsertTrack inserts a track or updates its metadata, keeping created_at.
func (q *Queries) UpsertTrack(ctx context.Context, arg UpsertTrackParams) error {
	_, err := q.db.ExecContext(ctx, upsertTrack,
		arg.Name, arg.MediaPath, arg.DurationMs, arg.CreatedAt, arg.UpdatedAt,
	)
	return err
}

const getTrack = `
SELECT name, media_path, duration_ms, created_at, updated_at
FROM tracks WHERE name = ?
`

// GetTrack returns one track row.
func (q *Queries) GetTrack(ctx context.Context, name string) (Track, error) {
	var t Track
	err := q.db.QueryRowContext(ctx, getTrack, name).Scan(
		&t.Name, &t.MediaPath, &t.DurationMs, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

const listTracks = `
SELECT t.name, t.media_path, t.duration_ms, t.created_at, t.updated_at,
       COUNT(s.id) AS total,
       COALESCE(SUM(CASE WHEN s.start_ms >= 0 AND s.end_ms >= 0 THEN 1 ELSE 0 END), 0) AS synced
FROM tracks t
LEFT JOIN subtitles s ON s.track = t.name
GROUP BY t.name
ORDER BY t.updated_at DESC, t.name
`

// ListTracksRow is a track with subtitle counts.
type ListTracksRow struct {
	Track
	Total  int64
	Synced int64
}

// ListTracks returns every track, most recently updated first.
func (q *Queries) ListTracks(ctx context.Context) ([]ListTracksRow, error) {
	rows, err := q.db.QueryContext(ctx, listTracks)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []ListTracksRow
	for rows.Next() {
		var i ListTracksRow
		if err := rows.Scan(
			&i.Name, &i.MediaPath, &i.DurationMs, &i.CreatedAt, &i.UpdatedAt,
			&i.Total, &i.Synced,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteTrack = `DELETE FROM tracks WHERE name = ?`

// DeleteTrack removes a track and returns the affected row count.
func (q *Queries) DeleteTrack(ctx context.Context, name string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTrack, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteSubtitles = `DELETE FROM subtitles WHERE track = ?`

// DeleteSubtitles removes every subtitle of a track.
func (q *Queries) DeleteSubtitles(ctx context.Context, track string) error {
	_, err := q.db.ExecContext(ctx, deleteSubtitles, track)
	return err
}

const insertSubtitle = `
INSERT INTO subtitles (track, position, id, region, start_ms, end_ms, content)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// InsertSubtitle stores one subtitle row.
func (q *Queries) InsertSubtitle(ctx context.Context, arg Subtitle) error {
	_, err := q.db.ExecContext(ctx, insertSubtitle,
		arg.Track, arg.Position, arg.ID, arg.Region, arg.StartMs, arg.EndMs, arg.Content,
	)
	return err
}

const listSubtitles = `
SELECT track, position, id, region, start_ms, end_ms, content
FROM subtitles WHERE track = ? ORDER BY position
`

// ListSubtitles returns a track's subtitles in order.
func (q *Queries) ListSubtitles(ctx context.Context, track string) ([]Subtitle, error) {
	rows, err := q.db.QueryContext(ctx, listSubtitles, track)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Subtitle
	for rows.Next() {
		var i Subtitle
		if err := rows.Scan(&i.Track, &i.Position, &i.ID, &i.Region, &i.StartMs, &i.EndMs, &i.Content); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertJournal = `
INSERT INTO journal (track, change_group, source, subtitle_id, start_ms, end_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// InsertJournalParams are the arguments of InsertJournal.
type InsertJournalParams struct {
	Track       string
	ChangeGroup string
	Source      string
	SubtitleID  string
	StartMs     int64
	EndMs       int64
	CreatedAt   int64
}

// InsertJournal appends one journal row.
func (q *Queries) InsertJournal(ctx context.Context, arg InsertJournalParams) error {
	_, err := q.db.ExecContext(ctx, insertJournal,
		arg.Track, arg.ChangeGroup, arg.Source, arg.SubtitleID, arg.StartMs, arg.EndMs, arg.CreatedAt,
	)
	return err
}

const listJournal = `
SELECT id, track, change_group, source, subtitle_id, start_ms, end_ms, created_at
FROM journal WHERE track = ? ORDER BY id DESC LIMIT ?
`

// ListJournalParams are the arguments of ListJournal.
type ListJournalParams struct {
	Track string
	Limit int64
}

// ListJournal returns the newest journal rows of a track first.
func (q *Queries) ListJournal(ctx context.Context, arg ListJournalParams) ([]Journal, error) {
	rows, err := q.db.QueryContext(ctx, listJournal, arg.Track, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Journal
	for rows.Next() {
		var i Journal
		if err := rows.Scan(
			&i.ID, &i.Track, &i.ChangeGroup, &i.Source, &i.SubtitleID, &i.StartMs, &i.EndMs, &i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteJournal = `DELETE FROM journal WHERE track = ?`

// DeleteJournal removes a track's journal.
func (q *Queries) DeleteJournal(ctx context.Context, track string) error {
	_, err := q.db.ExecContext(ctx, deleteJournal, track)
	return err
}

const kvGet = `SELECT key, value, created_at, updated_at FROM kv_store WHERE key = ?`

// KVGet returns one kv row.
func (q *Queries) KVGet(ctx context.Context, key string) (KvStore, error) {
	var i KvStore
	err := q.db.QueryRowContext(ctx, kvGet, key).Scan(&i.Key, &i.Value, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const kvSet = `
INSERT INTO kv_store (key, value, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at
`

// KVSet inserts or replaces a kv row.
func (q *Queries) KVSet(ctx context.Context, arg KvStore) error {
	_, err := q.db.ExecContext(ctx, kvSet, arg.Key, arg.Value, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const kvDelete = `DELETE FROM kv_store WHERE key = ?`

// KVDelete removes a kv row.
func (q *Queries) KVDelete(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, kvDelete, key)
	return err
}

const kvHas = `SELECT COUNT(*) FROM kv_store WHERE key = ?`

// KVHas counts rows with key.
func (q *Queries) KVHas(ctx context.Context, key string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, kvHas, key).Scan(&count)
	return count, err
}

const kvListKeys = `SELECT key FROM kv_store ORDER BY key`

// KVListKeys returns every key in sorted order.
func (q *Queries) KVListKeys(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, kvListKeys)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
