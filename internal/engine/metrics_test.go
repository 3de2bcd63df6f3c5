package engine_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/model"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// TestComputeMetrics_IncomeAndValue tests the core per-holding arithmetic.
//
// WHY: Every downstream analysis consumes these numbers. A wrong weekly-to-
// monthly conversion or value calculation would silently skew risk scores,
// rankings and projections.
func TestComputeMetrics_IncomeAndValue(t *testing.T) {
	eng := engine.Default()

	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 125, WeeklyDividend: 0.177, CostBasisPerShare: 19.50},
	}
	prices := map[string]float64{"QDTE": 19.80}

	metrics := eng.ComputeMetrics(holdings, 0, prices)

	if len(metrics.Holdings) != 1 {
		t.Fatalf("Expected 1 holding, got %d", len(metrics.Holdings))
	}
	h := metrics.Holdings[0]

	approx(t, "WeeklyIncome", h.WeeklyIncome, 125*0.177)
	approx(t, "MonthlyIncome", h.MonthlyIncome, 125*0.177*52/12)
	approx(t, "AnnualIncome", h.AnnualIncome, 125*0.177*52)
	approx(t, "MarketValue", h.MarketValue, 125*19.80)
	approx(t, "YieldPct", h.YieldPct, (125*0.177*52)/(125*19.80)*100)
	approx(t, "GainLoss", h.GainLoss, 125*(19.80-19.50))
	approx(t, "GainLossPct", h.GainLossPct, (19.80/19.50-1)*100)

	approx(t, "TotalValue", metrics.TotalValue, 125*19.80)
	approx(t, "MonthlyIncome total", metrics.MonthlyIncome, 125*0.177*52/12)
	approx(t, "AnnualIncome total", metrics.AnnualIncome, 125*0.177*52)
}

// TestComputeMetrics_ZeroDenominators tests the arithmetic guards.
//
// WHY: A missing quote or a freshly-reset position must never produce NaN or
// Inf; the documented behavior is 0 for every ratio whose denominator is 0.
func TestComputeMetrics_ZeroDenominators(t *testing.T) {
	eng := engine.Default()

	t.Run("missing price yields zero value and yield", func(t *testing.T) {
		holdings := []model.Holding{
			{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.20, CostBasisPerShare: 20},
		}

		metrics := eng.ComputeMetrics(holdings, 0, map[string]float64{})

		h := metrics.Holdings[0]
		approx(t, "MarketValue", h.MarketValue, 0)
		approx(t, "YieldPct", h.YieldPct, 0)
		approx(t, "GainLoss", h.GainLoss, -2000)
		// Income math does not depend on the price.
		approx(t, "WeeklyIncome", h.WeeklyIncome, 20)
	})

	t.Run("all-zero portfolio yields all-zero ratios", func(t *testing.T) {
		holdings := []model.Holding{
			{Ticker: "QDTE"}, {Ticker: "CHPY"}, {Ticker: "XDTE"},
		}

		metrics := eng.ComputeMetrics(holdings, 0, map[string]float64{})

		approx(t, "TotalValue", metrics.TotalValue, 0)
		approx(t, "TotalYieldPct", metrics.TotalYieldPct, 0)
		approx(t, "TotalGainLossPct", metrics.TotalGainLossPct, 0)
		for _, h := range metrics.Holdings {
			if math.IsNaN(h.YieldPct) || math.IsInf(h.YieldPct, 0) {
				t.Errorf("%s YieldPct is not finite: %v", h.Ticker, h.YieldPct)
			}
		}
	})
}

// TestComputeMetrics_CashHandling tests that cash counts toward value but not
// gain/loss.
//
// WHY: Cash has no cost basis; including it in the gain/loss percent would
// dilute the reported performance of the invested positions.
func TestComputeMetrics_CashHandling(t *testing.T) {
	eng := engine.Default()

	metrics := eng.ComputeMetrics(nil, 500, nil)

	approx(t, "TotalValue", metrics.TotalValue, 500)
	approx(t, "Cash", metrics.Cash, 500)
	approx(t, "TotalGainLoss", metrics.TotalGainLoss, 0)
	approx(t, "TotalGainLossPct", metrics.TotalGainLossPct, 0)
}

// TestComputeMetrics_Pure tests referential transparency.
//
// WHY: The engine contract says identical inputs produce identical snapshots
// and arguments are never mutated; dashboards rely on recomputation being
// side-effect free.
func TestComputeMetrics_Pure(t *testing.T) {
	eng := engine.Default()

	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 125, WeeklyDividend: 0.177, CostBasisPerShare: 19.50},
		{Ticker: "CHPY", Shares: 63, WeeklyDividend: 0.52, CostBasisPerShare: 25.80},
	}
	prices := map[string]float64{"QDTE": 19.80, "CHPY": 26.10}

	first := eng.ComputeMetrics(holdings, 100, prices)
	second := eng.ComputeMetrics(holdings, 100, prices)

	if !reflect.DeepEqual(first, second) {
		t.Error("ComputeMetrics is not deterministic for identical inputs")
	}

	if holdings[0].Shares != 125 || prices["QDTE"] != 19.80 {
		t.Error("ComputeMetrics mutated its inputs")
	}
}
