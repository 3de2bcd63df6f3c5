package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
// One row exists per tracked ticker; rows are seeded by migration and only
// ever updated.
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided
// database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// GetHoldings retrieves all holdings ordered by ticker.
func (r *HoldingRepository) GetHoldings() ([]model.Holding, error) {
	query := `
		SELECT ticker, shares, weekly_dividend, cost_basis_per_share
		FROM holding
		ORDER BY ticker ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}

	for rows.Next() {
		var h model.Holding
		if err := rows.Scan(&h.Ticker, &h.Shares, &h.WeeklyDividend, &h.CostBasisPerShare); err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// GetHolding retrieves the holding row for a single ticker.
// Returns ErrHoldingNotFound if no row exists.
func (r *HoldingRepository) GetHolding(ticker string) (model.Holding, error) {
	query := `
		SELECT ticker, shares, weekly_dividend, cost_basis_per_share
		FROM holding
		WHERE ticker = ?
	`

	var h model.Holding
	err := r.db.QueryRow(query, ticker).Scan(&h.Ticker, &h.Shares, &h.WeeklyDividend, &h.CostBasisPerShare)
	if err == sql.ErrNoRows {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to query holding table: %w", err)
	}

	return h, nil
}

// UpdateHolding replaces the stored position for a ticker.
// Returns ErrHoldingNotFound when the ticker has no seeded row.
func (r *HoldingRepository) UpdateHolding(h model.Holding) error {
	query := `
		UPDATE holding
		SET shares = ?, weekly_dividend = ?, cost_basis_per_share = ?, updated_at = ?
		WHERE ticker = ?
	`

	result, err := r.db.Exec(query, h.Shares, h.WeeklyDividend, h.CostBasisPerShare, time.Now().UTC().Format(time.RFC3339), h.Ticker)
	if err != nil {
		return fmt.Errorf("failed to update holding table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}
