package engine

import (
	"fmt"
	"math"
)

// PlanRebalance derives a sequence of SELL/BUY actions from the current
// metrics and the weekly ranking.
//
// Pass 1 sells down any holding above the concentration trigger (45%) to the
// target (35%). Pass 2 trims 20% off tickers the weekly ranking scored below
// the weak threshold while also carrying warnings. When any sale was planned,
// the combined proceeds fund a single BUY of the top-ranked ticker. The plan
// reports the projected monthly income before and after all actions;
// NeedsRebalancing is true iff any action was generated.
func (e *Engine) PlanRebalance(metrics MetricsSnapshot, weekly WeeklyRecommendation) RebalancePlan {
	plan := RebalancePlan{
		IncomeBefore: metrics.MonthlyIncome,
		RiskNote:     "Maintains balance",
	}

	// Pass 1: concentration risk.
	for _, holding := range metrics.Holdings {
		if metrics.TotalValue <= 0 {
			break
		}
		concentration := holding.MarketValue / metrics.TotalValue * 100
		if concentration <= e.policy.ConcentrationTriggerPct {
			continue
		}

		excess := concentration - e.policy.ConcentrationTargetPct
		sharesToSell := int(math.Floor(float64(holding.Shares) * excess / concentration))
		if sharesToSell <= 0 {
			continue
		}

		plan.Actions = append(plan.Actions, RebalanceAction{
			Type:     ActionSell,
			Ticker:   holding.Ticker,
			Shares:   sharesToSell,
			Proceeds: float64(sharesToSell) * holding.Price,
			Reason: fmt.Sprintf("Reduce concentration from %.1f%% to ~%.0f%%",
				concentration, e.policy.ConcentrationTargetPct),
			Priority: ActionPriorityHigh,
		})
	}

	// Pass 2: weak performers carrying warnings.
	for _, scored := range weekly.Ranked {
		if scored.Score >= e.policy.WeakScoreThreshold || len(scored.Warnings) == 0 {
			continue
		}
		holding, ok := metrics.Holding(scored.Ticker)
		if !ok || holding.Shares <= 0 {
			continue
		}

		sharesToSell := int(math.Floor(float64(holding.Shares) * e.policy.WeakTrimFraction))
		if sharesToSell <= 0 {
			continue
		}

		plan.Actions = append(plan.Actions, RebalanceAction{
			Type:     ActionSell,
			Ticker:   scored.Ticker,
			Shares:   sharesToSell,
			Proceeds: float64(sharesToSell) * holding.Price,
			Reason:   fmt.Sprintf("Weak performance (score: %.1f/100) plus warnings", scored.Score),
			Priority: ActionPriorityMedium,
		})
	}

	// Reinvest the combined proceeds into the top-ranked ticker.
	if len(plan.Actions) > 0 {
		var proceeds float64
		for _, a := range plan.Actions {
			if a.Type == ActionSell {
				proceeds += a.Proceeds
			}
		}

		if top, ok := metrics.Holding(weekly.Top); ok && top.Price > 0 && proceeds > 0 {
			sharesToBuy := int(math.Floor(proceeds / top.Price))
			if sharesToBuy > 0 {
				reason := fmt.Sprintf("Reinvest proceeds into top pick %s", weekly.Top)
				if topScore, ok := weekly.TopScore(); ok {
					reason = fmt.Sprintf("Highest score (%.1f/100)", topScore.Score)
				}
				plan.Actions = append(plan.Actions, RebalanceAction{
					Type:     ActionBuy,
					Ticker:   weekly.Top,
					Shares:   sharesToBuy,
					Cost:     float64(sharesToBuy) * top.Price,
					Reason:   reason,
					Priority: ActionPriorityHigh,
				})
			}
		}
	}

	// Income impact: weekly dividends converted to monthly.
	plan.IncomeAfter = plan.IncomeBefore
	for _, a := range plan.Actions {
		holding, ok := metrics.Holding(a.Ticker)
		if !ok {
			continue
		}
		delta := float64(a.Shares) * holding.WeeklyDividend * 52 / 12
		if a.Type == ActionSell {
			plan.IncomeAfter -= delta
		} else {
			plan.IncomeAfter += delta
		}
	}
	plan.IncomeChange = plan.IncomeAfter - plan.IncomeBefore

	plan.NeedsRebalancing = len(plan.Actions) > 0
	if anySell(plan.Actions) {
		plan.RiskNote = "Reduces concentration risk"
	}

	return plan
}

func anySell(actions []RebalanceAction) bool {
	for _, a := range actions {
		if a.Type == ActionSell {
			return true
		}
	}
	return false
}
