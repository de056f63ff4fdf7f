package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/cuesync/internal/core/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration is one schema version with its up and down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// MigrationStatus describes how far a database is migrated.
type MigrationStatus struct {
	Current int // highest applied version, 0 for an empty database
	Latest  int // highest embedded version
	Pending []Migration
}

// UpToDate reports whether every embedded migration is applied.
func (s MigrationStatus) UpToDate() bool {
	return len(s.Pending) == 0
}

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// parseFilename splits "NNNN_name.up.sql" / "NNNN_name.down.sql" into its
// version, name and direction ("up" or "down").
func parseFilename(filename string) (version int, name, direction string, err error) {
	stem := filename
	switch {
	case strings.HasSuffix(stem, upSuffix):
		direction, stem = "up", strings.TrimSuffix(stem, upSuffix)
	case strings.HasSuffix(stem, downSuffix):
		direction, stem = "down", strings.TrimSuffix(stem, downSuffix)
	default:
		return 0, "", "", fmt.Errorf("want %s or %s suffix", upSuffix, downSuffix)
	}

	num, name, ok := strings.Cut(stem, "_")
	if !ok || name == "" {
		return 0, "", "", errors.New("want NNNN_name")
	}
	version, err = strconv.Atoi(num)
	if err != nil {
		return 0, "", "", fmt.Errorf("version %q: %w", num, err)
	}
	if version < 1 {
		return 0, "", "", fmt.Errorf("version must be positive, got %d", version)
	}
	return version, name, direction, nil
}

// loadMigrations reads the embedded SQL files. Every version needs exactly
// one up and one down file with the same name.
func loadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version, name, direction, err := parseFilename(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("migration file %q: %w", entry.Name(), err)
		}
		body, err := fs.ReadFile(migrationsFS, "migrations/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if m.Name != name {
			return nil, fmt.Errorf("migration %04d: up and down names differ (%q, %q)", version, m.Name, name)
		}

		dst := &m.UpSQL
		if direction == "down" {
			dst = &m.DownSQL
		}
		if *dst != "" {
			return nil, fmt.Errorf("migration %04d: duplicate %s file", version, direction)
		}
		*dst = string(body)
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		switch {
		case m.UpSQL == "":
			return nil, fmt.Errorf("migration %04d: missing up file", m.Version)
		case m.DownSQL == "":
			return nil, fmt.Errorf("migration %04d: missing down file", m.Version)
		}
		migrations = append(migrations, *m)
	}
	slices.SortFunc(migrations, func(a, b Migration) int { return a.Version - b.Version })
	return migrations, nil
}

// readApplied loads the embedded migrations and the set of applied versions,
// creating the bookkeeping table on first use.
func readApplied(ctx context.Context, conn *sql.DB) ([]Migration, map[int]bool, error) {
	migrations, err := loadMigrations()
	if err != nil {
		return nil, nil, err
	}

	if _, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)`); err != nil {
		return nil, nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return nil, nil, err
	}
	return migrations, applied, nil
}

func appliedVersions(ctx context.Context, conn *sql.DB) (map[int]bool, error) {
	rows, err := conn.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("query applied versions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// migrateUp applies pending migrations in ascending order, each in its own
// transaction.
func migrateUp(ctx context.Context, conn *sql.DB) error {
	migrations, applied, err := readApplied(ctx, conn)
	if err != nil {
		return err
	}

	log := logging.Component("db")
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		log.Debug().Int("version", m.Version).Str("name", m.Name).Msg("applying migration")
		err := step(ctx, conn, m.UpSQL,
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Name, time.Now().UnixNano())
		if err != nil {
			return fmt.Errorf("migration %04d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// MigrateDown reverts the n most recently applied migrations.
func MigrateDown(ctx context.Context, conn *sql.DB, n int) error {
	if n < 1 {
		return fmt.Errorf("n must be positive, got %d", n)
	}

	migrations, applied, err := readApplied(ctx, conn)
	if err != nil {
		return err
	}

	var revert []Migration
	for _, m := range slices.Backward(migrations) {
		if applied[m.Version] {
			revert = append(revert, m)
		}
	}
	if n > len(revert) {
		return fmt.Errorf("cannot revert %d migrations, %d applied", n, len(revert))
	}

	log := logging.Component("db")
	for _, m := range revert[:n] {
		log.Debug().Int("version", m.Version).Str("name", m.Name).Msg("reverting migration")
		err := step(ctx, conn, m.DownSQL, "DELETE FROM schema_migrations WHERE version = ?", m.Version)
		if err != nil {
			return fmt.Errorf("revert migration %04d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// Status compares applied versions with the embedded migrations.
func Status(ctx context.Context, conn *sql.DB) (MigrationStatus, error) {
	migrations, applied, err := readApplied(ctx, conn)
	if err != nil {
		return MigrationStatus{}, err
	}

	var st MigrationStatus
	for v := range applied {
		st.Current = max(st.Current, v)
	}
	for _, m := range migrations {
		st.Latest = max(st.Latest, m.Version)
		if !applied[m.Version] {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// step runs a migration body and its bookkeeping statement atomically.
func step(ctx context.Context, conn *sql.DB, body, record string, args ...any) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit()
}
