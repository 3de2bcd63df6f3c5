package engine

// Policy collects the strategy constants of the analytics engine. The
// contrarian trend scoring and the yield-sustainability penalty are opinions
// about covered-call income funds, not universal truths, so they are
// configuration rather than hard-coded branches.
type Policy struct {
	// DividendDropPct is the default drop (in percent) that grades a dividend
	// trend alert critical. The user-configured threshold overrides it per
	// evaluation.
	DividendDropPct float64

	// SentimentWeight scales the raw [-0.8, 0.8] sentiment into factor points.
	SentimentWeight float64
	// SentimentStrong is the absolute sentiment above which the aggregator
	// flags a ticker as an outlier.
	SentimentStrong float64

	// Contrarian price-trend scoring over the trailing window: dips score as
	// buying opportunities, rallies as expensive entries.
	TrendStrongDipPct   float64 // Drop beyond this percent earns TrendStrongDipScore
	TrendMildDipPct     float64
	TrendRichPct        float64 // Rise beyond this percent earns TrendRichScore
	TrendStrongDipScore float64
	TrendMildDipScore   float64
	TrendRichScore      float64
	TrendNeutralScore   float64 // Also the fallback when history is missing

	// Yield-sustainability bands for the risk scorer: very high annualized
	// yields are penalized as unsustainable, not rewarded.
	YieldExtremePct  float64 // Above: score 5
	YieldVeryHighPct float64 // Above: score 10
	YieldHighPct     float64 // Above: score 15; at or below: full 20

	// Rebalance thresholds.
	ConcentrationTriggerPct float64 // SELL when a holding exceeds this share of total value
	ConcentrationTargetPct  float64 // SELL sizes down to this share
	WeakScoreThreshold      float64 // Weekly score below this plus warnings earns a trim
	WeakTrimFraction        float64 // Fraction of shares trimmed from weak performers

	// Confidence tiers as minimum gaps between the top two weekly scores.
	GapVeryHigh float64
	GapHigh     float64
	GapModerate float64

	// MaxProjectionMonths caps the growth simulation horizon.
	MaxProjectionMonths int
}

// DefaultPolicy returns the canonical strategy constants.
func DefaultPolicy() Policy {
	return Policy{
		DividendDropPct:         10,
		SentimentWeight:         30,
		SentimentStrong:         0.5,
		TrendStrongDipPct:       -5,
		TrendMildDipPct:         -2,
		TrendRichPct:            10,
		TrendStrongDipScore:     25,
		TrendMildDipScore:       20,
		TrendRichScore:          5,
		TrendNeutralScore:       15,
		YieldExtremePct:         150,
		YieldVeryHighPct:        100,
		YieldHighPct:            50,
		ConcentrationTriggerPct: 45,
		ConcentrationTargetPct:  35,
		WeakScoreThreshold:      40,
		WeakTrimFraction:        0.2,
		GapVeryHigh:             20,
		GapHigh:                 10,
		GapModerate:             5,
		MaxProjectionMonths:     360,
	}
}
