package repository

import (
	"database/sql"
	"fmt"

	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
)

// AlertConfigRepository provides data access methods for the
// price_alert_config table.
type AlertConfigRepository struct {
	db *sql.DB
}

// NewAlertConfigRepository creates a new AlertConfigRepository with the
// provided database connection.
func NewAlertConfigRepository(db *sql.DB) *AlertConfigRepository {
	return &AlertConfigRepository{db: db}
}

// GetConfigs retrieves all price alert configurations ordered by ticker.
func (r *AlertConfigRepository) GetConfigs() ([]model.PriceAlertConfig, error) {
	query := `
		SELECT ticker, stop_loss_pct, target_price, enabled
		FROM price_alert_config
		ORDER BY ticker ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_alert_config table: %w", err)
	}
	defer rows.Close()

	configs := []model.PriceAlertConfig{}

	for rows.Next() {
		var c model.PriceAlertConfig
		var target sql.NullFloat64

		if err := rows.Scan(&c.Ticker, &c.StopLossPct, &target, &c.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan price_alert_config table results: %w", err)
		}

		if target.Valid {
			c.TargetPrice = &target.Float64
		}

		configs = append(configs, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_alert_config table: %w", err)
	}

	return configs, nil
}

// GetConfig retrieves the alert configuration for a single ticker.
// Returns ErrAlertConfigNotFound if no row exists.
func (r *AlertConfigRepository) GetConfig(ticker string) (model.PriceAlertConfig, error) {
	query := `
		SELECT ticker, stop_loss_pct, target_price, enabled
		FROM price_alert_config
		WHERE ticker = ?
	`

	var c model.PriceAlertConfig
	var target sql.NullFloat64

	err := r.db.QueryRow(query, ticker).Scan(&c.Ticker, &c.StopLossPct, &target, &c.Enabled)
	if err == sql.ErrNoRows {
		return model.PriceAlertConfig{}, apperrors.ErrAlertConfigNotFound
	}
	if err != nil {
		return model.PriceAlertConfig{}, fmt.Errorf("failed to query price_alert_config table: %w", err)
	}

	if target.Valid {
		c.TargetPrice = &target.Float64
	}

	return c, nil
}

// UpsertConfig stores the alert configuration for a ticker, replacing any
// existing row.
func (r *AlertConfigRepository) UpsertConfig(c model.PriceAlertConfig) error {
	query := `
		INSERT INTO price_alert_config (ticker, stop_loss_pct, target_price, enabled)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (ticker) DO UPDATE SET
			stop_loss_pct = excluded.stop_loss_pct,
			target_price = excluded.target_price,
			enabled = excluded.enabled
	`

	var target any
	if c.TargetPrice != nil {
		target = *c.TargetPrice
	}

	if _, err := r.db.Exec(query, c.Ticker, c.StopLossPct, target, c.Enabled); err != nil {
		return fmt.Errorf("failed to upsert price_alert_config table: %w", err)
	}

	return nil
}
