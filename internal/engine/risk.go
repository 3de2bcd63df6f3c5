package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Sub-score caps. The five components sum to at most 100.
const (
	capDiversification     = 20.0
	capDividendStability   = 25.0
	capPricePerformance    = 20.0
	capYieldSustainability = 20.0
	capRiskExposure        = 15.0
)

// ScoreRisk combines five independently-computed, separately-capped sub-scores
// into a 0-100 portfolio risk score with a qualitative band. The sub-scores
// are algebraically independent; computation order does not matter and there
// is no hidden state.
//
// divAlerts are the current dividend trend alerts (the other alert kinds are
// ignored here). Each sub-score is clamped to its cap regardless of how
// extreme the inputs are.
func (e *Engine) ScoreRisk(metrics MetricsSnapshot, divAlerts []Alert) RiskScore {
	sub := RiskSubScores{
		Diversification:     e.scoreDiversification(metrics),
		DividendStability:   e.scoreDividendStability(divAlerts),
		PricePerformance:    e.scorePricePerformance(metrics),
		YieldSustainability: e.scoreYieldSustainability(metrics),
		RiskExposure:        e.scoreRiskExposure(metrics),
	}

	total := sub.Diversification + sub.DividendStability + sub.PricePerformance +
		sub.YieldSustainability + sub.RiskExposure
	total = math.Round(total*10) / 10

	band := RiskBandHigh
	switch {
	case total >= 80:
		band = RiskBandLow
	case total >= 60:
		band = RiskBandModerate
	}

	return RiskScore{TotalScore: total, Band: band, SubScores: sub}
}

// scoreDiversification rewards even spread across holdings. A maximum
// concentration at or below 33% earns the full 20 points; 100% in one holding
// earns 0. An empty or zero-value portfolio scores 0.
func (e *Engine) scoreDiversification(metrics MetricsSnapshot) float64 {
	total := metrics.holdingsValue()
	if total <= 0 {
		return 0
	}

	var maxConcentration float64
	for _, h := range metrics.Holdings {
		if c := h.MarketValue / total; c > maxConcentration {
			maxConcentration = c
		}
	}

	if maxConcentration <= 0.33 {
		return capDiversification
	}
	return clamp(capDiversification*(1-(maxConcentration-0.33)/0.67), 0, capDiversification)
}

// scoreDividendStability deducts 10 points per critical and 5 per warning
// dividend alert from the 25-point cap.
func (e *Engine) scoreDividendStability(divAlerts []Alert) float64 {
	var critical, warning int
	for _, a := range divAlerts {
		switch a.Severity {
		case SeverityCritical:
			critical++
		case SeverityWarning:
			warning++
		}
	}
	return clamp(capDividendStability-float64(critical)*10-float64(warning)*5, 0, capDividendStability)
}

// scorePricePerformance grades the mean unrealized gain/loss percent across
// holdings in 5-point steps.
func (e *Engine) scorePricePerformance(metrics MetricsSnapshot) float64 {
	var avg float64
	if len(metrics.Holdings) > 0 {
		values := make([]float64, len(metrics.Holdings))
		for i, h := range metrics.Holdings {
			values[i] = h.GainLossPct
		}
		avg = stat.Mean(values, nil)
	}

	switch {
	case avg >= 10:
		return 20
	case avg >= 0:
		return 15
	case avg >= -10:
		return 10
	case avg >= -20:
		return 5
	default:
		return 0
	}
}

// scoreYieldSustainability penalizes very high mean annualized yields as
// unsustainable: distributions far above market value erode NAV.
func (e *Engine) scoreYieldSustainability(metrics MetricsSnapshot) float64 {
	var avg float64
	if len(metrics.Holdings) > 0 {
		values := make([]float64, len(metrics.Holdings))
		for i, h := range metrics.Holdings {
			values[i] = h.YieldPct
		}
		avg = stat.Mean(values, nil)
	}

	switch {
	case avg > e.policy.YieldExtremePct:
		return 5
	case avg > e.policy.YieldVeryHighPct:
		return 10
	case avg > e.policy.YieldHighPct:
		return 15
	default:
		return 20
	}
}

// scoreRiskExposure computes the value-weighted average of the static risk
// levels (1 Low to 4 High) and maps it inversely onto 0-15 points.
func (e *Engine) scoreRiskExposure(metrics MetricsSnapshot) float64 {
	var weightedRisk float64
	for _, h := range metrics.Holdings {
		if metrics.TotalValue <= 0 {
			break
		}
		weight := h.MarketValue / metrics.TotalValue
		weightedRisk += weight * e.info[h.Ticker].RiskLevel.Weight()
	}

	return clamp(capRiskExposure*(1-(weightedRisk-1)/3), 0, capRiskExposure)
}
