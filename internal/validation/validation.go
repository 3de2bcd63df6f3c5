// Package validation contains input validation shared by handlers and
// services.
package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
)

// ValidateUUID checks if a string is a valid UUID.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ValidateTicker checks membership in the fixed tracked fund set.
func ValidateTicker(ticker string) error {
	if !model.IsTracked(ticker) {
		return fmt.Errorf("%w: %s", apperrors.ErrTickerNotTracked, ticker)
	}
	return nil
}

// ValidateHoldings checks the portfolio configuration preconditions: no
// negative share counts, dividend rates or cost bases. A non-nil error means
// the portfolio is invalid and every scoring endpoint must be gated off until
// it is corrected.
func ValidateHoldings(holdings []model.Holding) error {
	for _, h := range holdings {
		if h.Shares < 0 {
			return fmt.Errorf("%w: %s has negative shares", apperrors.ErrPortfolioInvalid, h.Ticker)
		}
		if h.WeeklyDividend < 0 {
			return fmt.Errorf("%w: %s has a negative dividend rate", apperrors.ErrPortfolioInvalid, h.Ticker)
		}
		if h.CostBasisPerShare < 0 {
			return fmt.Errorf("%w: %s has a negative cost basis", apperrors.ErrPortfolioInvalid, h.Ticker)
		}
	}
	return nil
}

// ValidateAlertConfig checks a price alert configuration: stop-loss percent
// within bounds and a non-negative target price when set.
func ValidateAlertConfig(cfg model.PriceAlertConfig) error {
	if err := ValidateTicker(cfg.Ticker); err != nil {
		return err
	}
	if cfg.StopLossPct < model.MinStopLossPct || cfg.StopLossPct > model.MaxStopLossPct {
		return fmt.Errorf("%w: %.1f", apperrors.ErrStopLossOutOfRange, cfg.StopLossPct)
	}
	if cfg.TargetPrice != nil && *cfg.TargetPrice < 0 {
		return fmt.Errorf("%w: target price", apperrors.ErrNegativeAmount)
	}
	return nil
}

// ValidateDividendRecord checks a dividend observation before it is appended.
func ValidateDividendRecord(record model.DividendRecord) error {
	if err := ValidateTicker(record.Ticker); err != nil {
		return err
	}
	if record.Dividend < 0 {
		return fmt.Errorf("%w: dividend", apperrors.ErrNegativeAmount)
	}
	if record.Date.IsZero() {
		return fmt.Errorf("dividend record date is required")
	}
	return nil
}
