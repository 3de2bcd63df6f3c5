package engine

// HoldingMetrics represents calculated metrics for a single holding at a point
// in time. This is the per-ticker slice of a MetricsSnapshot.
type HoldingMetrics struct {
	Ticker            string  `json:"ticker"`
	Shares            int     `json:"shares"`
	WeeklyDividend    float64 `json:"weeklyDividend"` // Per-share weekly dividend used for income math
	Price             float64 `json:"price"`          // 0 when the quote was unavailable
	WeeklyIncome      float64 `json:"weeklyIncome"`
	MonthlyIncome     float64 `json:"monthlyIncome"`
	AnnualIncome      float64 `json:"annualIncome"`
	MarketValue       float64 `json:"marketValue"`
	YieldPct          float64 `json:"yieldPct"` // 0 when market value is 0
	CostBasisPerShare float64 `json:"costBasisPerShare"`
	CostBasisTotal    float64 `json:"costBasisTotal"`
	GainLoss          float64 `json:"gainLoss"`
	GainLossPct       float64 `json:"gainLossPct"` // 0 when cost basis total is 0
}

// MetricsSnapshot is the derived view of the whole portfolio, recomputed on
// every evaluation cycle and never mutated afterwards.
//
// TotalValue includes cash; the gain/loss totals exclude it by construction.
type MetricsSnapshot struct {
	Holdings         []HoldingMetrics `json:"holdings"`
	Cash             float64          `json:"cash"`
	TotalWeekly      float64          `json:"totalWeekly"`
	MonthlyIncome    float64          `json:"monthlyIncome"`
	AnnualIncome     float64          `json:"annualIncome"`
	TotalValue       float64          `json:"totalValue"`
	TotalYieldPct    float64          `json:"totalYieldPct"`
	TotalGainLoss    float64          `json:"totalGainLoss"`
	TotalGainLossPct float64          `json:"totalGainLossPct"`
}

// Holding returns the metrics for one ticker and whether it was found.
func (m MetricsSnapshot) Holding(ticker string) (HoldingMetrics, bool) {
	for _, h := range m.Holdings {
		if h.Ticker == ticker {
			return h, true
		}
	}
	return HoldingMetrics{}, false
}

// holdingsValue is the combined market value of all holdings, excluding cash.
func (m MetricsSnapshot) holdingsValue() float64 {
	var total float64
	for _, h := range m.Holdings {
		total += h.MarketValue
	}
	return total
}

// AlertKind identifies the condition that raised an alert.
type AlertKind string

const (
	AlertStopLoss        AlertKind = "stop_loss"
	AlertTargetReached   AlertKind = "target_reached"
	AlertDividendDrop    AlertKind = "dividend_drop"
	AlertDividendDecline AlertKind = "dividend_decline"
	AlertDividendRise    AlertKind = "dividend_increase"
)

// Severity grades an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeveritySuccess  Severity = "success"
)

// Alert is a transient condition flag, regenerated on each evaluation and
// never persisted. The numeric context fields depend on the kind: price alerts
// fill Price and Threshold, dividend alerts fill ChangePct and the two window
// averages.
type Alert struct {
	Ticker      string    `json:"ticker"`
	Kind        AlertKind `json:"kind"`
	Severity    Severity  `json:"severity"`
	Message     string    `json:"message"`
	Action      string    `json:"action"`
	Price       float64   `json:"price,omitempty"`
	Threshold   float64   `json:"threshold,omitempty"`
	ChangePct   float64   `json:"changePct,omitempty"`
	RecentAvg   float64   `json:"recentAvg,omitempty"`
	PreviousAvg float64   `json:"previousAvg,omitempty"`
}

// RiskBand is the qualitative label derived from the total risk score.
type RiskBand string

const (
	RiskBandLow      RiskBand = "LOW"
	RiskBandModerate RiskBand = "MODERATE"
	RiskBandHigh     RiskBand = "HIGH"
)

// RiskSubScores holds the five independently-capped components of the risk
// score: diversification (20), dividend stability (25), price performance
// (20), yield sustainability (20) and risk exposure (15).
type RiskSubScores struct {
	Diversification     float64 `json:"diversification"`
	DividendStability   float64 `json:"dividendStability"`
	PricePerformance    float64 `json:"pricePerformance"`
	YieldSustainability float64 `json:"yieldSustainability"`
	RiskExposure        float64 `json:"riskExposure"`
}

// RiskScore is the combined 0-100 portfolio risk assessment.
type RiskScore struct {
	TotalScore float64       `json:"totalScore"`
	Band       RiskBand      `json:"band"`
	SubScores  RiskSubScores `json:"subScores"`
}

// TickerScore is the scored outcome for one ticker in the weekly ranking.
// Factors carry the human-readable justification for every scored factor;
// Warnings collect the caution notes some factors add.
type TickerScore struct {
	Ticker        string   `json:"ticker"`
	Score         float64  `json:"score"`
	Factors       []string `json:"factors"`
	Warnings      []string `json:"warnings"`
	Sentiment     float64  `json:"sentiment"`
	YieldPct      float64  `json:"yieldPct"`
	Concentration float64  `json:"concentration"` // Percent of total portfolio value
	Price         float64  `json:"price"`
}

// Confidence is the qualitative tier derived from the gap between the top two
// weekly scores.
type Confidence string

const (
	ConfidenceVeryHigh Confidence = "VERY HIGH"
	ConfidenceHigh     Confidence = "HIGH"
	ConfidenceModerate Confidence = "MODERATE"
	ConfidenceLow      Confidence = "LOW" // Caller should consider splitting the investment
)

// WeeklyRecommendation is the ranked outcome of the weekly buy analysis.
type WeeklyRecommendation struct {
	Ranked      []TickerScore `json:"ranked"` // Descending by score, ties keep ticker order
	Top         string        `json:"top"`
	Alternative string        `json:"alternative,omitempty"`
	Confidence  Confidence    `json:"confidence"`
}

// TopScore returns the score entry for the recommended ticker.
func (w WeeklyRecommendation) TopScore() (TickerScore, bool) {
	for _, s := range w.Ranked {
		if s.Ticker == w.Top {
			return s, true
		}
	}
	return TickerScore{}, false
}

// ActionType distinguishes rebalance actions.
type ActionType string

const (
	ActionSell ActionType = "SELL"
	ActionBuy  ActionType = "BUY"
)

// ActionPriority orders rebalance actions by urgency.
type ActionPriority string

const (
	ActionPriorityHigh   ActionPriority = "HIGH"
	ActionPriorityMedium ActionPriority = "MEDIUM"
)

// RebalanceAction is one planned trade in a rebalance plan.
type RebalanceAction struct {
	Type     ActionType     `json:"type"`
	Ticker   string         `json:"ticker"`
	Shares   int            `json:"shares"`
	Proceeds float64        `json:"proceeds,omitempty"` // SELL only
	Cost     float64        `json:"cost,omitempty"`     // BUY only
	Reason   string         `json:"reason"`
	Priority ActionPriority `json:"priority"`
}

// RebalancePlan is the full outcome of the rebalance analysis, including the
// projected monthly income before and after executing every action.
type RebalancePlan struct {
	NeedsRebalancing bool              `json:"needsRebalancing"`
	Actions          []RebalanceAction `json:"actions"`
	IncomeBefore     float64           `json:"incomeBefore"`
	IncomeAfter      float64           `json:"incomeAfter"`
	IncomeChange     float64           `json:"incomeChange"`
	RiskNote         string            `json:"riskNote"`
}

// ProjectionPoint is one month of a growth projection trajectory. Share counts
// are fractional because reinvestment buys fractional shares.
type ProjectionPoint struct {
	Month          int                `json:"month"`
	PortfolioValue float64            `json:"portfolioValue"`
	MonthlyIncome  float64            `json:"monthlyIncome"`
	Shares         map[string]float64 `json:"shares"`
}

// Projection is the full result of a growth simulation: the complete monthly
// trajectory plus whether and when the income target was reached.
type Projection struct {
	Points        []ProjectionPoint `json:"points"`
	TargetReached bool              `json:"targetReached"`
	Months        int               `json:"months"` // Terminal month index
}

// Priority orders aggregated recommendations.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// rank maps a priority onto its sort position; unknown values sort last.
func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Recommendation is one entry of the aggregated, prioritized action list.
type Recommendation struct {
	Priority    Priority `json:"priority"`
	Kind        string   `json:"kind"`
	Ticker      string   `json:"ticker"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Action      string   `json:"action"`
	Impact      string   `json:"impact"`
	Confidence  int      `json:"confidence"` // Percent
}

// PricePoint is one close price in a ticker's history, oldest first.
type PricePoint struct {
	Date  int64   `json:"date"` // Unix seconds
	Close float64 `json:"close"`
}
