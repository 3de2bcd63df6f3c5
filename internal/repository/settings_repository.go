package repository

import (
	"database/sql"
	"fmt"

	"github.com/income-strategy/engine/internal/apperrors"
)

// SettingsRepository provides data access methods for the setting table,
// a simple key/value store.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided
// database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves the stored value for a key.
// Returns ErrSettingNotFound if the key has no value.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting table: %w", err)
	}

	return value, nil
}

// Set stores a value for a key, replacing any existing value.
func (r *SettingsRepository) Set(key, value string) error {
	query := `
		INSERT INTO setting (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting table: %w", err)
	}

	return nil
}
