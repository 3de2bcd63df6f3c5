package engine

import (
	"fmt"
	"math"
	"sort"
)

// AggregateRecommendations merges the outputs of the other analyses into one
// prioritized, de-duplicated action list.
//
// Sources, in generation order: critical dividend alerts (HIGH), stop-loss
// alerts (CRITICAL), strong sentiment outliers (negative MEDIUM; positive LOW,
// only while the ticker stays under 40% concentration), an elevated overall
// risk band (HIGH), and an income-gap opportunity when idle cash can close
// part of the gap through the highest-yielding holding (MEDIUM). The final
// list is sorted by priority with a stable sort, so ties preserve generation
// order.
func (e *Engine) AggregateRecommendations(
	metrics MetricsSnapshot,
	risk RiskScore,
	divAlerts []Alert,
	priceAlerts []Alert,
	sentiment map[string]float64,
	targetIncome float64,
) []Recommendation {
	var recs []Recommendation

	// Dividend crises.
	for _, alert := range divAlerts {
		if alert.Severity != SeverityCritical {
			continue
		}
		var incomeLoss float64
		if holding, ok := metrics.Holding(alert.Ticker); ok {
			incomeLoss = math.Abs(alert.ChangePct) * float64(holding.Shares) * alert.RecentAvg * 52 / 100
		}
		recs = append(recs, Recommendation{
			Priority:    PriorityHigh,
			Kind:        "dividend_action",
			Ticker:      alert.Ticker,
			Title:       fmt.Sprintf("Action Required: %s Dividend Crisis", alert.Ticker),
			Description: alert.Message,
			Action:      alert.Action,
			Impact:      fmt.Sprintf("Potential income loss: $%.2f/year", incomeLoss),
			Confidence:  95,
		})
	}

	// Triggered stop losses.
	for _, alert := range priceAlerts {
		if alert.Kind != AlertStopLoss {
			continue
		}
		holding, ok := metrics.Holding(alert.Ticker)
		if !ok {
			continue
		}
		recs = append(recs, Recommendation{
			Priority:    PriorityCritical,
			Kind:        "stop_loss",
			Ticker:      alert.Ticker,
			Title:       alert.Message,
			Description: alert.Action,
			Action:      fmt.Sprintf("Sell %d shares at market price", holding.Shares),
			Impact:      fmt.Sprintf("Lock in loss of $%.2f", holding.GainLoss),
			Confidence:  100,
		})
	}

	// Strong sentiment outliers, in ticker order for determinism.
	for _, ticker := range e.tickers {
		score, ok := sentiment[ticker]
		if !ok {
			continue
		}
		switch {
		case score < -e.policy.SentimentStrong:
			recs = append(recs, Recommendation{
				Priority:    PriorityMedium,
				Kind:        "news_sentiment",
				Ticker:      ticker,
				Title:       fmt.Sprintf("Negative News Detected: %s", ticker),
				Description: fmt.Sprintf("Recent news sentiment is strongly negative (%.2f)", score),
				Action:      fmt.Sprintf("Consider reducing %s position by 20-30%%", ticker),
				Impact:      "Risk mitigation based on market sentiment",
				Confidence:  70,
			})
		case score > e.policy.SentimentStrong:
			concentration := 0.0
			if holding, ok := metrics.Holding(ticker); ok && metrics.TotalValue > 0 {
				concentration = holding.MarketValue / metrics.TotalValue * 100
			}
			if concentration < 40 {
				recs = append(recs, Recommendation{
					Priority:    PriorityLow,
					Kind:        "news_sentiment",
					Ticker:      ticker,
					Title:       fmt.Sprintf("Positive Outlook: %s", ticker),
					Description: fmt.Sprintf("Recent news sentiment is strongly positive (%.2f)", score),
					Action:      fmt.Sprintf("Consider increasing %s position", ticker),
					Impact:      "Potential for enhanced returns",
					Confidence:  65,
				})
			}
		}
	}

	// Elevated portfolio risk.
	if risk.TotalScore < 60 {
		recs = append(recs, Recommendation{
			Priority:    PriorityHigh,
			Kind:        "risk_mitigation",
			Ticker:      "PORTFOLIO",
			Title:       "Portfolio Risk Elevated",
			Description: fmt.Sprintf("Overall risk score is %.1f/100 (%s)", risk.TotalScore, risk.Band),
			Action:      "Review and rebalance portfolio to reduce risk exposure",
			Impact:      "Improve portfolio stability and reduce downside risk",
			Confidence:  85,
		})
	}

	// Income gap closable with idle cash.
	if gap := targetIncome - metrics.MonthlyIncome; gap > 0 {
		if best, ok := bestYieldHolding(metrics); ok && best.WeeklyDividend > 0 {
			sharesNeeded := int(math.Floor(gap * 12 / 52 / best.WeeklyDividend))
			cost := float64(sharesNeeded) * best.Price
			if sharesNeeded > 0 && metrics.Cash >= cost {
				recs = append(recs, Recommendation{
					Priority: PriorityMedium,
					Kind:     "income_boost",
					Ticker:   best.Ticker,
					Title:    "Income Opportunity Available",
					Description: fmt.Sprintf("You have $%.2f in cash and need $%.2f/month more income",
						metrics.Cash, gap),
					Action: fmt.Sprintf("Buy %d shares of %s (highest yield at %.1f%%)",
						sharesNeeded, best.Ticker, best.YieldPct),
					Impact: fmt.Sprintf("Close income gap by $%.2f/month",
						float64(sharesNeeded)*best.WeeklyDividend*52/12),
					Confidence: 80,
				})
			}
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.rank() < recs[j].Priority.rank()
	})

	return recs
}

// bestYieldHolding returns the holding with the highest annualized yield.
func bestYieldHolding(metrics MetricsSnapshot) (HoldingMetrics, bool) {
	if len(metrics.Holdings) == 0 {
		return HoldingMetrics{}, false
	}
	best := metrics.Holdings[0]
	for _, h := range metrics.Holdings[1:] {
		if h.YieldPct > best.YieldPct {
			best = h
		}
	}
	return best, true
}
