package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hwdrift/hwdrift/pkg/types"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS exports (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	snapshot_id   TEXT NOT NULL,
	hostname      TEXT NOT NULL,
	captured_at   TEXT NOT NULL,
	recorded_at   TEXT NOT NULL,
	field_count   INTEGER NOT NULL,
	snapshot_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_exports_captured_at ON exports (captured_at);
`

// Entry is one recorded export.
type Entry struct {
	ID         int64
	SnapshotID string
	Hostname   string
	CapturedAt time.Time
	RecordedAt time.Time
	FieldCount int
}

// Store keeps a local history of exported snapshots, newest-first. It only
// ever grows by one row per export; the baseline file, not the history,
// drives diffing.
type Store struct {
	db *sql.DB
}

// Open opens the history database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one exported snapshot.
func (s *Store) Record(ctx context.Context, snap *types.Snapshot) (int64, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (snapshot_id, hostname, captured_at, recorded_at, field_count, snapshot_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID,
		snap.Hostname,
		snap.Timestamp.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		snap.FieldCount(),
		string(raw),
	)
	if err != nil {
		return 0, fmt.Errorf("insert export: %w", err)
	}
	return result.LastInsertId()
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, snapshot_id, hostname, captured_at, recorded_at, field_count
		 FROM exports ORDER BY captured_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			captured string
			recorded string
		)
		if err := rows.Scan(&e.ID, &e.SnapshotID, &e.Hostname, &captured, &recorded, &e.FieldCount); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		e.CapturedAt, _ = time.Parse(time.RFC3339, captured)
		e.RecordedAt, _ = time.Parse(time.RFC3339, recorded)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Load retrieves one recorded snapshot by row ID.
func (s *Store) Load(ctx context.Context, id int64) (*types.Snapshot, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot_json FROM exports WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("export %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load export %d: %w", id, err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decode export %d: %w", id, err)
	}
	return &snap, nil
}

// Prune deletes everything beyond the keep most recent entries.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM exports WHERE id NOT IN (
			SELECT id FROM exports ORDER BY captured_at DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune exports: %w", err)
	}
	return result.RowsAffected()
}
