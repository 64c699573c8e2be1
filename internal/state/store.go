package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Store is a SQLite-backed snapshot store for thing property data.
// All methods are safe for concurrent use; SQLite serializes writes.
type Store struct {
	db *sql.DB
}

// NewStore creates a snapshot store on an open SQLite connection and
// ensures the schema exists.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// initSchema creates the snapshot table if it is missing. The schema is
// simple enough that a migration framework would be overkill for an SDK.
func (s *Store) initSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS thing_state (
			thing_id   TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("creating thing_state table: %w", err)
	}
	return nil
}

// Save upserts the property snapshot for a thing.
func (s *Store) Save(ctx context.Context, thingID string, data map[string]any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling snapshot for %s: %w", thingID, err)
	}

	const query = `
		INSERT INTO thing_state (thing_id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(thing_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, query, thingID, string(encoded), now); err != nil {
		return fmt.Errorf("saving snapshot for %s: %w", thingID, err)
	}
	return nil
}

// Load returns the stored property snapshot for a thing.
// Returns ErrSnapshotNotFound if none was saved.
func (s *Store) Load(ctx context.Context, thingID string) (map[string]any, error) {
	const query = `SELECT data FROM thing_state WHERE thing_id = ?`

	var encoded string
	err := s.db.QueryRowContext(ctx, query, thingID).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot for %s: %w", thingID, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(encoded), &data); err != nil {
		return nil, fmt.Errorf("decoding snapshot for %s: %w", thingID, err)
	}
	return data, nil
}

// Delete removes the snapshot for a thing. Deleting a missing snapshot is
// not an error.
func (s *Store) Delete(ctx context.Context, thingID string) error {
	const query = `DELETE FROM thing_state WHERE thing_id = ?`

	if _, err := s.db.ExecContext(ctx, query, thingID); err != nil {
		return fmt.Errorf("deleting snapshot for %s: %w", thingID, err)
	}
	return nil
}
