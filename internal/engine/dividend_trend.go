package engine

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/income-strategy/engine/internal/model"
)

// trendWindow is the number of trailing observations each comparison window
// covers.
const trendWindow = 4

// AnalyzeDividendTrends detects rising or falling dividend trends from the
// per-ticker payment history. History slices must be time-ordered, oldest
// first; they are read, never modified.
//
// For each ticker with at least 4 observations, the mean of the last 4 is
// compared against the mean of the 4 before them (or of all earlier entries
// when fewer than 8 exist; with no earlier entries the ticker is skipped).
// Classification, first match wins:
//
//   - change below -dropThresholdPct: critical dividend_drop
//   - change below -5%: warning dividend_decline
//   - change above +10%: success dividend_increase
//   - otherwise no alert for this ticker
//
// dropThresholdPct <= 0 falls back to the policy default. The result carries
// at most one alert per ticker, in ticker order.
func (e *Engine) AnalyzeDividendTrends(history map[string][]model.DividendRecord, dropThresholdPct float64) []Alert {
	if dropThresholdPct <= 0 {
		dropThresholdPct = e.policy.DividendDropPct
	}

	var alerts []Alert

	for _, ticker := range e.tickers {
		records := history[ticker]
		if len(records) < trendWindow {
			continue
		}

		recent := dividendWindow(records[len(records)-trendWindow:])

		var previous []float64
		if len(records) >= 2*trendWindow {
			previous = dividendWindow(records[len(records)-2*trendWindow : len(records)-trendWindow])
		} else {
			previous = dividendWindow(records[:len(records)-trendWindow])
		}
		if len(previous) == 0 {
			continue
		}

		recentAvg := stat.Mean(recent, nil)
		previousAvg := stat.Mean(previous, nil)

		changePct := 0.0
		if previousAvg > 0 {
			changePct = (recentAvg/previousAvg - 1) * 100
		}

		switch {
		case changePct < -dropThresholdPct:
			alerts = append(alerts, Alert{
				Ticker:      ticker,
				Kind:        AlertDividendDrop,
				Severity:    SeverityCritical,
				ChangePct:   changePct,
				RecentAvg:   recentAvg,
				PreviousAvg: previousAvg,
				Message:     fmt.Sprintf("DIVIDEND DROP: %s dividend decreased %.1f%% over last 4 weeks", ticker, -changePct),
				Action:      fmt.Sprintf("Review %s position - consider reducing exposure", ticker),
			})
		case changePct < -5:
			alerts = append(alerts, Alert{
				Ticker:      ticker,
				Kind:        AlertDividendDecline,
				Severity:    SeverityWarning,
				ChangePct:   changePct,
				RecentAvg:   recentAvg,
				PreviousAvg: previousAvg,
				Message:     fmt.Sprintf("DIVIDEND DECLINE: %s dividend down %.1f%%", ticker, -changePct),
				Action:      fmt.Sprintf("Monitor %s closely for further declines", ticker),
			})
		case changePct > 10:
			alerts = append(alerts, Alert{
				Ticker:      ticker,
				Kind:        AlertDividendRise,
				Severity:    SeveritySuccess,
				ChangePct:   changePct,
				RecentAvg:   recentAvg,
				PreviousAvg: previousAvg,
				Message:     fmt.Sprintf("DIVIDEND INCREASE: %s dividend up %.1f%%", ticker, changePct),
				Action:      fmt.Sprintf("Consider increasing %s position", ticker),
			})
		}
	}

	return alerts
}

func dividendWindow(records []model.DividendRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Dividend
	}
	return out
}
