package engine_test

import (
	"testing"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/model"
)

// TestProjectGrowth_TargetAlreadyMet tests immediate termination when the
// current income already covers the target.
func TestProjectGrowth_TargetAlreadyMet(t *testing.T) {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.25, CostBasisPerShare: 20},
	}

	projection := eng.ProjectGrowth(holdings, 0, map[string]float64{"QDTE": 20}, 0, 100)

	if !projection.TargetReached {
		t.Fatal("Expected the target to be reached")
	}
	if projection.Months != 1 || len(projection.Points) != 1 {
		t.Fatalf("Months = %d, points = %d; want 1 and 1", projection.Months, len(projection.Points))
	}
	// 100 shares * 0.25 weekly, annualized over 12 months.
	approx(t, "MonthlyIncome", projection.Points[0].MonthlyIncome, 100*0.25*52/12)
	approx(t, "PortfolioValue", projection.Points[0].PortfolioValue, 2000)
}

// TestProjectGrowth_ReinvestmentCompounds tests the first reinvestment step
// against hand-computed share counts.
//
// WHY: The simulation's whole trajectory hangs off this step: month one's
// dividends buy fractional shares at the frozen price, and month two's income
// must reflect the larger position.
func TestProjectGrowth_ReinvestmentCompounds(t *testing.T) {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.20, CostBasisPerShare: 20},
	}

	projection := eng.ProjectGrowth(holdings, 0, map[string]float64{"QDTE": 20}, 0, 1000)

	if len(projection.Points) < 2 {
		t.Fatalf("Expected at least 2 points, got %d", len(projection.Points))
	}

	monthOneIncome := 100 * 0.20 * 52 / 12
	// Month one's income buys income/price extra shares.
	wantShares := 100 + monthOneIncome/20

	approx(t, "month 2 shares", projection.Points[1].Shares["QDTE"], wantShares)
	approx(t, "month 2 income", projection.Points[1].MonthlyIncome, wantShares*0.20*52/12)
	approx(t, "month 2 value", projection.Points[1].PortfolioValue, wantShares*20)
}

// TestProjectGrowth_NoPricesHoldsCash tests the degraded mode without any
// usable price.
//
// WHY: With nothing to buy, deposits must pile up as cash in the portfolio
// value instead of vanishing, and the horizon cap must end the simulation.
func TestProjectGrowth_NoPricesHoldsCash(t *testing.T) {
	eng := engine.Default()

	projection := eng.ProjectGrowth(nil, 500, map[string]float64{}, 100, 1000)

	if projection.TargetReached {
		t.Error("Target cannot be reached without income")
	}
	if projection.Months != 360 {
		t.Errorf("Months = %d, want the 360-month cap", projection.Months)
	}

	approx(t, "month 1 value", projection.Points[0].PortfolioValue, 500)
	approx(t, "month 2 value", projection.Points[1].PortfolioValue, 600)
	approx(t, "month 3 value", projection.Points[2].PortfolioValue, 700)
	approx(t, "month 1 income", projection.Points[0].MonthlyIncome, 0)
}

// TestProjectGrowth_Monotonic tests that income and value never decrease along
// the trajectory with non-negative deposits.
func TestProjectGrowth_Monotonic(t *testing.T) {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.177, CostBasisPerShare: 19.50},
		{Ticker: "XDTE", Shares: 84, WeeklyDividend: 0.16, CostBasisPerShare: 18.50},
	}
	prices := map[string]float64{"QDTE": 19.80, "XDTE": 18.20}

	projection := eng.ProjectGrowth(holdings, 250, prices, 200, 2000)

	if !projection.TargetReached {
		t.Fatal("Expected the target within the horizon")
	}
	for i := 1; i < len(projection.Points); i++ {
		prev, cur := projection.Points[i-1], projection.Points[i]
		if cur.MonthlyIncome < prev.MonthlyIncome {
			t.Fatalf("Income fell from %v to %v at month %d", prev.MonthlyIncome, cur.MonthlyIncome, cur.Month)
		}
		if cur.PortfolioValue < prev.PortfolioValue {
			t.Fatalf("Value fell from %v to %v at month %d", prev.PortfolioValue, cur.PortfolioValue, cur.Month)
		}
	}
}

// TestProjectGrowth_SkipsUnpricedTickers tests that reinvestment flows only
// into tickers with a usable price.
func TestProjectGrowth_SkipsUnpricedTickers(t *testing.T) {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.20, CostBasisPerShare: 20},
		{Ticker: "CHPY", Shares: 50, WeeklyDividend: 0.52, CostBasisPerShare: 25.80},
	}
	prices := map[string]float64{"QDTE": 20} // CHPY quote missing

	projection := eng.ProjectGrowth(holdings, 0, prices, 0, 10000)

	if len(projection.Points) < 2 {
		t.Fatalf("Expected at least 2 points, got %d", len(projection.Points))
	}
	if got := projection.Points[1].Shares["CHPY"]; got != 50 {
		t.Errorf("CHPY shares = %v, want the original 50 without a price", got)
	}
	if got := projection.Points[1].Shares["QDTE"]; got <= 100 {
		t.Errorf("QDTE shares = %v, want growth above 100", got)
	}
}

// TestProjectGrowth_ZeroHorizonTarget tests that an unreachable target still
// returns the full partial trajectory.
func TestProjectGrowth_ZeroHorizonTarget(t *testing.T) {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 1, WeeklyDividend: 0.01, CostBasisPerShare: 20},
	}

	projection := eng.ProjectGrowth(holdings, 0, map[string]float64{"QDTE": 20}, 0, 1_000_000)

	if projection.TargetReached {
		t.Error("Target should be unreachable")
	}
	if len(projection.Points) != 360 {
		t.Errorf("Points = %d, want the full 360-month trajectory", len(projection.Points))
	}
}
