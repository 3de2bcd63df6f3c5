package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations, without seed rows so
// tests control their own data.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE holding (
			ticker VARCHAR(10) NOT NULL PRIMARY KEY,
			shares INTEGER NOT NULL DEFAULT 0,
			weekly_dividend REAL NOT NULL DEFAULT 0,
			cost_basis_per_share REAL NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE dividend_history (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(10) NOT NULL,
			date DATETIME NOT NULL,
			dividend REAL NOT NULL,
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX idx_dividend_history_ticker_date ON dividend_history (ticker, date);

		CREATE TABLE price_alert_config (
			ticker VARCHAR(10) NOT NULL PRIMARY KEY,
			stop_loss_pct REAL NOT NULL DEFAULT 20,
			target_price REAL,
			enabled BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE setting (
			key VARCHAR(64) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			taken_at DATETIME NOT NULL,
			payload TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
