package service

import (
	"database/sql"
	"fmt"

	"github.com/income-strategy/engine/internal/database"
	"github.com/income-strategy/engine/internal/version"
)

// SystemService answers health and version probes.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies the database connection is alive and the holding table
// is reachable.
func (s *SystemService) CheckHealth() error {
	if err := database.HealthCheck(s.db); err != nil {
		return err
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM holding").Scan(&n); err != nil {
		return fmt.Errorf("holding table unreachable: %w", err)
	}
	return nil
}

// CheckVersion reports the build version.
func (s *SystemService) CheckVersion() string {
	return version.Version
}
