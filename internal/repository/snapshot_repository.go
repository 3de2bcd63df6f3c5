package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
)

// SnapshotRepository provides data access methods for the snapshot table.
// Payloads are opaque JSON; storage never inspects them.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided
// database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores a snapshot.
func (r *SnapshotRepository) Save(s model.Snapshot) error {
	query := `
		INSERT INTO snapshot (id, taken_at, payload)
		VALUES (?, ?, ?)
	`

	_, err := r.db.Exec(query, s.ID, s.TakenAt.UTC().Format(time.RFC3339), string(s.Payload))
	if err != nil {
		return fmt.Errorf("failed to insert into snapshot table: %w", err)
	}

	return nil
}

// GetSnapshot retrieves one snapshot by ID.
// Returns ErrSnapshotNotFound if no snapshot with that ID exists.
func (r *SnapshotRepository) GetSnapshot(id string) (model.Snapshot, error) {
	query := `
		SELECT id, taken_at, payload
		FROM snapshot
		WHERE id = ?
	`

	var takenAtStr, payload string
	var s model.Snapshot

	err := r.db.QueryRow(query, id).Scan(&s.ID, &takenAtStr, &payload)
	if err == sql.ErrNoRows {
		return model.Snapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to query snapshot table: %w", err)
	}

	s.TakenAt, err = ParseTime(takenAtStr)
	if err != nil || s.TakenAt.IsZero() {
		return model.Snapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}
	s.Payload = []byte(payload)

	return s, nil
}

// ListSnapshots retrieves all snapshots, newest first, without payloads.
// Payloads can be large; callers fetch them individually via GetSnapshot.
func (r *SnapshotRepository) ListSnapshots() ([]model.Snapshot, error) {
	query := `
		SELECT id, taken_at
		FROM snapshot
		ORDER BY taken_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.Snapshot{}

	for rows.Next() {
		var takenAtStr string
		var s model.Snapshot

		if err := rows.Scan(&s.ID, &takenAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot table results: %w", err)
		}

		s.TakenAt, err = ParseTime(takenAtStr)
		if err != nil || s.TakenAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		snapshots = append(snapshots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot table: %w", err)
	}

	return snapshots, nil
}

// DeleteSnapshot removes a snapshot by ID.
// Returns ErrSnapshotNotFound if no snapshot with that ID exists.
func (r *SnapshotRepository) DeleteSnapshot(id string) error {
	result, err := r.db.Exec(`DELETE FROM snapshot WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from snapshot table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSnapshotNotFound
	}

	return nil
}
