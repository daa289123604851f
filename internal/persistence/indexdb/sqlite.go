// Package indexdb keeps a small sqlite read-model of written snapshots so
// the server can find the latest save at startup without scanning the
// data directory. Losing it is harmless; snapshots are the truth.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteIndex struct {
	db *sql.DB
}

type SnapshotRow struct {
	WorldID string
	Tick    uint64
	Path    string
	Seed    uint32
	Width   int
	Height  int
	Digest  string
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS worlds (
			world_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			world_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			path TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			digest TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (world_id, tick)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_world ON snapshots(world_id, tick DESC);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// UpsertWorld records world identity once at creation.
func (s *SQLiteIndex) UpsertWorld(worldID string, seed uint32, width, height int) error {
	_, err := s.db.Exec(
		`INSERT INTO worlds (world_id, seed, width, height, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(world_id) DO NOTHING;`,
		worldID, int64(seed), width, height, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// RecordSnapshot indexes one written snapshot file.
func (s *SQLiteIndex) RecordSnapshot(row SnapshotRow) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (world_id, tick, path, seed, width, height, digest, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(world_id, tick) DO UPDATE SET
		   path=excluded.path, digest=excluded.digest, recorded_at=excluded.recorded_at;`,
		row.WorldID, int64(row.Tick), row.Path, int64(row.Seed), row.Width, row.Height,
		row.Digest, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LatestSnapshot returns the highest-tick snapshot for a world, if any.
func (s *SQLiteIndex) LatestSnapshot(worldID string) (SnapshotRow, bool, error) {
	var row SnapshotRow
	var tick, seed int64
	err := s.db.QueryRow(
		`SELECT world_id, tick, path, seed, width, height, digest
		 FROM snapshots WHERE world_id = ? ORDER BY tick DESC LIMIT 1;`,
		worldID,
	).Scan(&row.WorldID, &tick, &row.Path, &seed, &row.Width, &row.Height, &row.Digest)
	if err == sql.ErrNoRows {
		return SnapshotRow{}, false, nil
	}
	if err != nil {
		return SnapshotRow{}, false, err
	}
	row.Tick = uint64(tick)
	row.Seed = uint32(seed)
	return row, true, nil
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}
