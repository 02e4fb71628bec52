// Package postgres persists the load audit trail: one snapshot row per
// completed data load. The store is optional; without DATABASE_URL the
// dashboard runs purely in memory.
package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"salesboard/internal/errors"
)

// Snapshot records one completed data load.
type Snapshot struct {
	ID       string    `db:"id" json:"id"`
	Source   string    `db:"source" json:"source"`
	RowCount int       `db:"row_count" json:"row_count"`
	LoadedAt time.Time `db:"loaded_at" json:"loaded_at"`
}

// SnapshotRepository stores load snapshots in PostgreSQL.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a repository backed by the given connection.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS load_snapshots (
	id UUID PRIMARY KEY,
	source TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	loaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the snapshot table when missing.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to create load_snapshots table")
	}
	return nil
}

// Record stores a snapshot for a completed load.
func (r *SnapshotRepository) Record(ctx context.Context, source string, rowCount int) error {
	snapshot := Snapshot{
		ID:       uuid.New().String(),
		Source:   source,
		RowCount: rowCount,
		LoadedAt: time.Now().UTC(),
	}

	const query = `
		INSERT INTO load_snapshots (id, source, row_count, loaded_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, snapshot.ID, snapshot.Source, snapshot.RowCount, snapshot.LoadedAt); err != nil {
		return errors.Wrap(err, "failed to record load snapshot")
	}
	return nil
}

// Recent lists the most recent snapshots, newest first.
func (r *SnapshotRepository) Recent(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 10
	}

	snapshots := []Snapshot{}
	const query = `
		SELECT id, source, row_count, loaded_at
		FROM load_snapshots
		ORDER BY loaded_at DESC
		LIMIT $1`
	if err := r.db.SelectContext(ctx, &snapshots, query, limit); err != nil {
		return nil, errors.Wrap(err, "failed to list load snapshots")
	}
	return snapshots, nil
}
