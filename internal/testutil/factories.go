package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/income-strategy/engine/internal/model"
)

// HoldingBuilder provides a fluent interface for seeding test holdings.
//
// Example usage:
//
//	// Simple creation with defaults
//	holding := testutil.NewHolding("QDTE").Build(t, db)
//
//	// Customized position
//	holding := testutil.NewHolding("CHPY").
//	    WithShares(63).
//	    WithWeeklyDividend(0.52).
//	    WithCostBasis(25.80).
//	    Build(t, db)
type HoldingBuilder struct {
	Ticker            string
	Shares            int
	WeeklyDividend    float64
	CostBasisPerShare float64
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding(ticker string) *HoldingBuilder {
	return &HoldingBuilder{
		Ticker:            ticker,
		Shares:            100,
		WeeklyDividend:    0.20,
		CostBasisPerShare: 20,
	}
}

// WithShares sets a custom share count.
func (b *HoldingBuilder) WithShares(shares int) *HoldingBuilder {
	b.Shares = shares
	return b
}

// WithWeeklyDividend sets a custom weekly dividend rate.
func (b *HoldingBuilder) WithWeeklyDividend(dividend float64) *HoldingBuilder {
	b.WeeklyDividend = dividend
	return b
}

// WithCostBasis sets a custom cost basis per share.
func (b *HoldingBuilder) WithCostBasis(cost float64) *HoldingBuilder {
	b.CostBasisPerShare = cost
	return b
}

// Build inserts the holding row and returns the model.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO holding (ticker, shares, weekly_dividend, cost_basis_per_share, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		b.Ticker, b.Shares, b.WeeklyDividend, b.CostBasisPerShare,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert test holding: %v", err)
	}

	return model.Holding{
		Ticker:            b.Ticker,
		Shares:            b.Shares,
		WeeklyDividend:    b.WeeklyDividend,
		CostBasisPerShare: b.CostBasisPerShare,
	}
}

// SeedHoldings inserts the three tracked tickers with the default opening
// position used across tests.
func SeedHoldings(t *testing.T, db *sql.DB) []model.Holding {
	t.Helper()

	return []model.Holding{
		NewHolding("CHPY").WithShares(63).WithWeeklyDividend(0.52).WithCostBasis(25.80).Build(t, db),
		NewHolding("QDTE").WithShares(125).WithWeeklyDividend(0.177).WithCostBasis(19.50).Build(t, db),
		NewHolding("XDTE").WithShares(84).WithWeeklyDividend(0.16).WithCostBasis(18.50).Build(t, db),
	}
}

// SeedDividendHistory inserts one record per value for a ticker, spaced a
// week apart and ending at the most recent Friday. Values are oldest first.
func SeedDividendHistory(t *testing.T, db *sql.DB, ticker string, values []float64) {
	t.Helper()

	start := time.Now().UTC().AddDate(0, 0, -7*len(values))
	for i, v := range values {
		_, err := db.Exec(
			`INSERT INTO dividend_history (id, ticker, date, dividend, verified, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			MakeID(), ticker,
			start.AddDate(0, 0, 7*i).Format(time.RFC3339),
			v, false,
			time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			t.Fatalf("Failed to insert test dividend record: %v", err)
		}
	}
}

// InsertAlertConfig inserts a price alert configuration row.
func InsertAlertConfig(t *testing.T, db *sql.DB, cfg model.PriceAlertConfig) {
	t.Helper()

	var target any
	if cfg.TargetPrice != nil {
		target = *cfg.TargetPrice
	}

	_, err := db.Exec(
		`INSERT INTO price_alert_config (ticker, stop_loss_pct, target_price, enabled)
		 VALUES (?, ?, ?, ?)`,
		cfg.Ticker, cfg.StopLossPct, target, cfg.Enabled,
	)
	if err != nil {
		t.Fatalf("Failed to insert test alert config: %v", err)
	}
}
