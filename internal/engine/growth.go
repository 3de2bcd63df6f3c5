package engine

import "github.com/income-strategy/engine/internal/model"

// ProjectGrowth simulates month-by-month dividend reinvestment plus a fixed
// monthly deposit until the monthly income target is met or the policy
// horizon (30 years) is exhausted.
//
// Prices are held constant at today's snapshot for the whole simulation; this
// is a deliberate simplification, not a live re-pricing model. Each month the
// income from the current share counts is computed first; if it meets the
// target the simulation terminates at that month. Otherwise the month's
// dividends plus the deposit are reinvested proportionally to current
// market-value weight, incrementing fractional share counts.
//
// The result carries the full monthly trajectory so callers can chart the
// whole path, not just the endpoint. With non-negative deposits and dividends
// both income and value are non-decreasing across the trajectory. When the
// horizon runs out the best-effort partial trajectory is returned with
// TargetReached false.
func (e *Engine) ProjectGrowth(
	holdings []model.Holding,
	cash float64,
	prices map[string]float64,
	monthlyDeposit float64,
	targetIncome float64,
) Projection {
	shares := make(map[string]float64, len(holdings))
	dividend := make(map[string]float64, len(holdings))
	order := make([]string, 0, len(holdings))
	for _, h := range holdings {
		shares[h.Ticker] = float64(h.Shares)
		dividend[h.Ticker] = h.WeeklyDividend
		order = append(order, h.Ticker)
	}

	projection := Projection{}
	uninvested := cash

	for month := 1; month <= e.policy.MaxProjectionMonths; month++ {
		var weekly float64
		for _, t := range order {
			weekly += shares[t] * dividend[t]
		}
		monthlyIncome := weekly * 52 / 12

		var value float64
		for _, t := range order {
			value += shares[t] * prices[t]
		}
		value += uninvested

		projection.Points = append(projection.Points, ProjectionPoint{
			Month:          month,
			PortfolioValue: value,
			MonthlyIncome:  monthlyIncome,
			Shares:         copyShares(shares),
		})
		projection.Months = month

		if monthlyIncome >= targetIncome {
			projection.TargetReached = true
			return projection
		}

		// Reinvest this month's dividends plus the deposit proportionally
		// to current market-value weight.
		toInvest := monthlyIncome + monthlyDeposit + uninvested
		uninvested = 0
		if toInvest <= 0 {
			continue
		}

		var investable float64
		for _, t := range order {
			if prices[t] > 0 {
				investable += shares[t] * prices[t]
			}
		}

		if investable > 0 {
			for _, t := range order {
				if prices[t] <= 0 {
					continue
				}
				weight := shares[t] * prices[t] / investable
				shares[t] += toInvest * weight / prices[t]
			}
		} else {
			// Nothing priced yet: split equally across priced tickers, or
			// hold the cash when no price is available at all.
			var priced []string
			for _, t := range order {
				if prices[t] > 0 {
					priced = append(priced, t)
				}
			}
			if len(priced) == 0 {
				uninvested = toInvest
				continue
			}
			per := toInvest / float64(len(priced))
			for _, t := range priced {
				shares[t] += per / prices[t]
			}
		}
	}

	return projection
}

func copyShares(shares map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(shares))
	for t, n := range shares {
		out[t] = n
	}
	return out
}
