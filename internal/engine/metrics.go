package engine

import "github.com/income-strategy/engine/internal/model"

// ComputeMetrics calculates the full portfolio metrics snapshot from current
// holdings, the cash balance and live prices.
//
// A missing price (absent map entry) values the holding at 0; the yield and
// gain/loss percentages guard their denominators and report 0 instead of
// dividing by zero. Cash is included in the total value but carries no cost
// basis, so the gain/loss totals exclude it by construction.
//
// The computation is a pure function of its inputs: calling it twice with
// identical arguments returns identical snapshots and mutates nothing.
func (e *Engine) ComputeMetrics(holdings []model.Holding, cash float64, prices map[string]float64) MetricsSnapshot {
	snapshot := MetricsSnapshot{
		Holdings: make([]HoldingMetrics, 0, len(holdings)),
		Cash:     cash,
	}

	var totalCostBasis float64

	for _, h := range holdings {
		price := prices[h.Ticker]

		weekly := float64(h.Shares) * h.WeeklyDividend
		monthly := weekly * 52 / 12
		annual := weekly * 52
		value := float64(h.Shares) * price

		yieldPct := 0.0
		if value > 0 {
			yieldPct = annual / value * 100
		}

		costTotal := float64(h.Shares) * h.CostBasisPerShare
		gainLoss := value - costTotal
		gainLossPct := 0.0
		if costTotal > 0 {
			gainLossPct = (value/costTotal - 1) * 100
		}

		snapshot.TotalWeekly += weekly
		snapshot.TotalValue += value
		totalCostBasis += costTotal

		snapshot.Holdings = append(snapshot.Holdings, HoldingMetrics{
			Ticker:            h.Ticker,
			Shares:            h.Shares,
			WeeklyDividend:    h.WeeklyDividend,
			Price:             price,
			WeeklyIncome:      weekly,
			MonthlyIncome:     monthly,
			AnnualIncome:      annual,
			MarketValue:       value,
			YieldPct:          yieldPct,
			CostBasisPerShare: h.CostBasisPerShare,
			CostBasisTotal:    costTotal,
			GainLoss:          gainLoss,
			GainLossPct:       gainLossPct,
		})
	}

	snapshot.TotalValue += cash
	snapshot.MonthlyIncome = snapshot.TotalWeekly * 52 / 12
	snapshot.AnnualIncome = snapshot.MonthlyIncome * 12

	if snapshot.TotalValue > 0 {
		snapshot.TotalYieldPct = snapshot.AnnualIncome / snapshot.TotalValue * 100
	}

	snapshot.TotalGainLoss = snapshot.TotalValue - totalCostBasis - cash
	if denominator := totalCostBasis + cash; denominator > 0 {
		snapshot.TotalGainLossPct = (snapshot.TotalValue/denominator - 1) * 100
	}

	return snapshot
}
