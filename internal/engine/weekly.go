package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/income-strategy/engine/internal/model"
)

// trendPoints is the trailing window of the one-month history used for the
// price trend factor.
const trendPoints = 5

// RecommendWeeklyBuy scores every tracked ticker across six weighted factors
// and ranks them to pick this week's investment candidate.
//
// The factors: news sentiment (scaled by the policy weight, may subtract),
// contrarian price trend over the trailing 5 points of 1-month history,
// dividend stability from the current trend alerts, annualized yield,
// portfolio concentration and the fund's static risk level. Each factor
// contributes a human-readable explanation; those explanations are part of the
// result's contract, not a log line.
//
// Missing price history or an absent sentiment entry degrades to the neutral
// factor default — never an error. The confidence tier derives from the gap
// between the top two scores; the second-ranked ticker is surfaced as the
// alternative.
func (e *Engine) RecommendWeeklyBuy(
	metrics MetricsSnapshot,
	sentiment map[string]float64,
	histories map[string][]PricePoint,
	divAlerts []Alert,
) WeeklyRecommendation {
	ranked := make([]TickerScore, 0, len(e.tickers))

	for _, ticker := range e.tickers {
		ranked = append(ranked, e.scoreTicker(ticker, metrics, sentiment[ticker], histories[ticker], divAlerts))
	}

	// Stable sort: ties keep ticker order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	rec := WeeklyRecommendation{Ranked: ranked}
	if len(ranked) == 0 {
		return rec
	}

	rec.Top = ranked[0].Ticker
	if len(ranked) < 2 {
		rec.Confidence = ConfidenceVeryHigh
		return rec
	}

	rec.Alternative = ranked[1].Ticker
	gap := ranked[0].Score - ranked[1].Score
	switch {
	case gap > e.policy.GapVeryHigh:
		rec.Confidence = ConfidenceVeryHigh
	case gap > e.policy.GapHigh:
		rec.Confidence = ConfidenceHigh
	case gap > e.policy.GapModerate:
		rec.Confidence = ConfidenceModerate
	default:
		rec.Confidence = ConfidenceLow
	}

	return rec
}

func (e *Engine) scoreTicker(
	ticker string,
	metrics MetricsSnapshot,
	sentiment float64,
	history []PricePoint,
	divAlerts []Alert,
) TickerScore {
	result := TickerScore{Ticker: ticker, Sentiment: sentiment}
	var score float64

	// Factor 1: news sentiment, scaled; negative sentiment subtracts.
	sentimentScore := sentiment * e.policy.SentimentWeight
	score += sentimentScore
	switch {
	case sentiment > classifyThreshold:
		result.Factors = append(result.Factors, fmt.Sprintf("Positive news sentiment (+%.1f pts)", sentimentScore))
	case sentiment < -classifyThreshold:
		result.Factors = append(result.Factors, fmt.Sprintf("Negative news sentiment (%.1f pts)", sentimentScore))
		result.Warnings = append(result.Warnings, "Recent negative news coverage")
	default:
		result.Factors = append(result.Factors, fmt.Sprintf("Neutral news sentiment (%.1f pts)", sentimentScore))
	}

	// Factor 2: price trend, contrarian policy. Dips score as entries.
	trendScore, trendFactor, trendWarning := e.scorePriceTrend(history)
	score += trendScore
	result.Factors = append(result.Factors, trendFactor)
	if trendWarning != "" {
		result.Warnings = append(result.Warnings, trendWarning)
	}

	// Factor 3: dividend stability from the current trend alerts.
	divScore, divFactor, divWarning := scoreDividendFactor(ticker, divAlerts)
	score += divScore
	result.Factors = append(result.Factors, divFactor)
	if divWarning != "" {
		result.Warnings = append(result.Warnings, divWarning)
	}

	holding, hasHolding := metrics.Holding(ticker)
	if hasHolding {
		result.YieldPct = holding.YieldPct
		result.Price = holding.Price

		// Factor 4: current annualized yield.
		var yieldScore float64
		switch {
		case holding.YieldPct > 80:
			yieldScore = 15
			result.Factors = append(result.Factors, fmt.Sprintf("High annual yield %.1f%% (+15 pts)", holding.YieldPct))
		case holding.YieldPct > 50:
			yieldScore = 12
			result.Factors = append(result.Factors, fmt.Sprintf("Good annual yield %.1f%% (+12 pts)", holding.YieldPct))
		case holding.YieldPct > 30:
			yieldScore = 10
			result.Factors = append(result.Factors, fmt.Sprintf("Solid annual yield %.1f%% (+10 pts)", holding.YieldPct))
		default:
			yieldScore = 8
			result.Factors = append(result.Factors, fmt.Sprintf("Moderate annual yield %.1f%% (+8 pts)", holding.YieldPct))
		}
		score += yieldScore
	}

	// Factor 5: portfolio concentration of this ticker.
	concentration := 0.0
	if metrics.TotalValue > 0 && hasHolding {
		concentration = holding.MarketValue / metrics.TotalValue * 100
	}
	result.Concentration = concentration

	var concScore float64
	switch {
	case concentration > 50:
		concScore = -10
		result.Factors = append(result.Factors, fmt.Sprintf("Overweight %.1f%% (-10 pts)", concentration))
		result.Warnings = append(result.Warnings, fmt.Sprintf("Already %.1f%% of portfolio - diversify", concentration))
	case concentration > 40:
		concScore = 0
		result.Factors = append(result.Factors, fmt.Sprintf("Near limit %.1f%% (0 pts)", concentration))
		result.Warnings = append(result.Warnings, "Getting concentrated")
	case concentration < 20:
		concScore = 10
		result.Factors = append(result.Factors, fmt.Sprintf("Underweight %.1f%% - room to grow (+10 pts)", concentration))
	default:
		concScore = 5
		result.Factors = append(result.Factors, fmt.Sprintf("Balanced %.1f%% (+5 pts)", concentration))
	}
	score += concScore

	// Factor 6: static risk level. Medium scores best for an income
	// portfolio; Low funds trade income for safety.
	var riskScore float64
	switch e.info[ticker].RiskLevel {
	case model.RiskHigh:
		riskScore = 5
		result.Factors = append(result.Factors, "High risk level (+5 pts)")
	case model.RiskMediumHigh:
		riskScore = 7
		result.Factors = append(result.Factors, "Medium-high risk (+7 pts)")
	case model.RiskMedium:
		riskScore = 10
		result.Factors = append(result.Factors, "Medium risk (+10 pts)")
	default:
		riskScore = 8
		result.Factors = append(result.Factors, "Lower risk (+8 pts)")
	}
	score += riskScore

	result.Score = math.Round(score*10) / 10
	return result
}

// scorePriceTrend grades the percent change across the trailing 5 points of
// the one-month history. Fewer than 5 points earns the neutral default.
func (e *Engine) scorePriceTrend(history []PricePoint) (score float64, factor, warning string) {
	if len(history) < trendPoints {
		return e.policy.TrendNeutralScore, fmt.Sprintf("Insufficient price data (+%.0f pts)", e.policy.TrendNeutralScore), ""
	}

	recent := history[len(history)-trendPoints:]
	first, last := recent[0].Close, recent[len(recent)-1].Close
	if first <= 0 {
		return e.policy.TrendNeutralScore, fmt.Sprintf("Insufficient price data (+%.0f pts)", e.policy.TrendNeutralScore), ""
	}

	changePct := (last/first - 1) * 100
	switch {
	case changePct < e.policy.TrendStrongDipPct:
		return e.policy.TrendStrongDipScore,
			fmt.Sprintf("Price dipped %.1f%% - buying opportunity (+%.0f pts)", -changePct, e.policy.TrendStrongDipScore), ""
	case changePct < e.policy.TrendMildDipPct:
		return e.policy.TrendMildDipScore,
			fmt.Sprintf("Slight dip %.1f%% - good entry (+%.0f pts)", -changePct, e.policy.TrendMildDipScore), ""
	case changePct > e.policy.TrendRichPct:
		return e.policy.TrendRichScore,
			fmt.Sprintf("Price up %.1f%% - expensive (+%.0f pts)", changePct, e.policy.TrendRichScore),
			"Price near recent highs"
	default:
		return e.policy.TrendNeutralScore,
			fmt.Sprintf("Price stable %+.1f%% (+%.0f pts)", changePct, e.policy.TrendNeutralScore), ""
	}
}

// scoreDividendFactor grades dividend stability from the trend alerts for one
// ticker: a critical alert subtracts, a stable history earns the full bonus.
func scoreDividendFactor(ticker string, divAlerts []Alert) (score float64, factor, warning string) {
	var hasCritical, hasWarning, hasIncrease bool
	for _, a := range divAlerts {
		if a.Ticker != ticker {
			continue
		}
		switch {
		case a.Severity == SeverityCritical:
			hasCritical = true
		case a.Severity == SeverityWarning:
			hasWarning = true
		case a.Kind == AlertDividendRise:
			hasIncrease = true
		}
	}

	switch {
	case hasCritical:
		return -10, "Dividend dropping severely (-10 pts)", "Critical dividend decline"
	case hasWarning:
		return 10, "Dividend declining moderately (+10 pts)", "Dividend showing weakness"
	case hasIncrease:
		return 25, "Dividend increasing (+25 pts)", ""
	default:
		return 20, "Dividend stable (+20 pts)", ""
	}
}
