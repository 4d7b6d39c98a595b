// package repositories provides the persistence layer for library snapshots.
//
// Snapshots are opaque JSON blobs of the in-memory cache keyed by a fixed
// string, restored wholesale on startup. There is no schema versioning; a
// blob that no longer decodes is treated as corrupt and cleared.
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ytmb/internal/shared"
)

// DefaultSnapshotKey is the key the library snapshot lives under.
const DefaultSnapshotKey = "library"

// SnapshotRepository persists cache snapshots in the library_snapshots table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save upserts the snapshot blob for a key.
func (r *SnapshotRepository) Save(key string, data []byte) error {
	now := time.Now()

	query := `
		INSERT INTO library_snapshots (id, key, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, shared.GenerateID(), key, data, now, now)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load retrieves the snapshot blob for a key.
func (r *SnapshotRepository) Load(key string) ([]byte, error) {
	query := `
		SELECT data FROM library_snapshots WHERE key = ?
	`

	var data []byte
	err := r.db.QueryRow(query, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrSnapshotNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	return data, nil
}

// SavedAt reports when the snapshot for a key was last written.
func (r *SnapshotRepository) SavedAt(key string) (time.Time, error) {
	query := `
		SELECT updated_at FROM library_snapshots WHERE key = ?
	`

	var updatedAt time.Time
	err := r.db.QueryRow(query, key).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, fmt.Errorf("%w: %s", shared.ErrSnapshotNotFound, key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	return updatedAt, nil
}

// Clear deletes the snapshot for a key. Clearing an absent key is a no-op.
func (r *SnapshotRepository) Clear(key string) error {
	_, err := r.db.Exec(`DELETE FROM library_snapshots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}
