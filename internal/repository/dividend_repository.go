package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
)

// DividendRepository provides data access methods for the dividend_history
// table. History is append-only and time-ordered per ticker.
type DividendRepository struct {
	db *sql.DB
}

// NewDividendRepository creates a new DividendRepository with the provided
// database connection.
func NewDividendRepository(db *sql.DB) *DividendRepository {
	return &DividendRepository{db: db}
}

// GetHistory retrieves the dividend history for one ticker in chronological
// order. Returns an empty slice if no records exist.
func (r *DividendRepository) GetHistory(ticker string) ([]model.DividendRecord, error) {
	query := `
		SELECT id, ticker, date, dividend, verified
		FROM dividend_history
		WHERE ticker = ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend_history table: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetAllHistory retrieves dividend history for every ticker, keyed by ticker,
// each in chronological order.
func (r *DividendRepository) GetAllHistory() (map[string][]model.DividendRecord, error) {
	query := `
		SELECT id, ticker, date, dividend, verified
		FROM dividend_history
		ORDER BY ticker ASC, date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend_history table: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	byTicker := make(map[string][]model.DividendRecord)
	for _, rec := range records {
		byTicker[rec.Ticker] = append(byTicker[rec.Ticker], rec)
	}

	return byTicker, nil
}

// AddRecord appends a dividend observation for a ticker.
// Returns ErrHistoryOutOfOrder when the record is dated before the latest
// stored observation for that ticker.
func (r *DividendRepository) AddRecord(rec model.DividendRecord) error {
	var latestStr sql.NullString
	err := r.db.QueryRow(
		`SELECT MAX(date) FROM dividend_history WHERE ticker = ?`, rec.Ticker,
	).Scan(&latestStr)
	if err != nil {
		return fmt.Errorf("failed to query dividend_history table: %w", err)
	}

	if latestStr.Valid {
		latest, err := ParseTime(latestStr.String)
		if err != nil {
			return err
		}
		if rec.Date.Before(latest) {
			return apperrors.ErrHistoryOutOfOrder
		}
	}

	query := `
		INSERT INTO dividend_history (id, ticker, date, dividend, verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		rec.ID,
		rec.Ticker,
		rec.Date.UTC().Format(time.RFC3339),
		rec.Dividend,
		rec.Verified,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into dividend_history table: %w", err)
	}

	return nil
}

// SetVerified flags a dividend record as verified against the fund's
// published distribution.
func (r *DividendRepository) SetVerified(id string, verified bool) error {
	result, err := r.db.Exec(`UPDATE dividend_history SET verified = ? WHERE id = ?`, verified, id)
	if err != nil {
		return fmt.Errorf("failed to update dividend_history table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("dividend record %s not found", id)
	}

	return nil
}

func scanRecords(rows *sql.Rows) ([]model.DividendRecord, error) {
	records := []model.DividendRecord{}

	for rows.Next() {
		var dateStr string
		var rec model.DividendRecord

		if err := rows.Scan(&rec.ID, &rec.Ticker, &dateStr, &rec.Dividend, &rec.Verified); err != nil {
			return nil, fmt.Errorf("failed to scan dividend_history table results: %w", err)
		}

		var err error
		rec.Date, err = ParseTime(dateStr)
		if err != nil || rec.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend_history table: %w", err)
	}

	return records, nil
}
