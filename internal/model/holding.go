package model

// Holding represents a position in one tracked ticker.
// The ticker set is fixed configuration; one row exists per ticker and it is
// only mutated through explicit edit operations.
type Holding struct {
	Ticker            string  `json:"ticker"`
	Shares            int     `json:"shares"`            // Whole shares held, never negative in a valid portfolio
	WeeklyDividend    float64 `json:"weeklyDividend"`    // Most recent weekly dividend per share
	CostBasisPerShare float64 `json:"costBasisPerShare"` // Average purchase price per share
}

// RiskLevel is the static risk classification of a tracked fund.
type RiskLevel string

const (
	RiskLow        RiskLevel = "Low"
	RiskMedium     RiskLevel = "Medium"
	RiskMediumHigh RiskLevel = "Medium-High"
	RiskHigh       RiskLevel = "High"
)

// Weight maps a risk level onto the 1-4 scale used by the risk scorer.
// Unknown levels count as Medium.
func (r RiskLevel) Weight() float64 {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskMediumHigh:
		return 3
	case RiskHigh:
		return 4
	default:
		return 2
	}
}

// TickerInfo is immutable reference data describing a tracked fund.
type TickerInfo struct {
	Name            string    `json:"name"`
	UnderlyingIndex string    `json:"underlyingIndex"`
	TopHoldings     []string  `json:"topHoldings"`
	Strategy        string    `json:"strategy"`
	RiskLevel       RiskLevel `json:"riskLevel"`
}

// Tickers is the closed set of tracked funds, in display order.
var Tickers = []string{"QDTE", "CHPY", "XDTE"}

// TickerCatalog holds the static reference data for every tracked fund.
var TickerCatalog = map[string]TickerInfo{
	"QDTE": {
		Name:            "NASDAQ-100 0DTE Covered Call ETF",
		UnderlyingIndex: "NASDAQ-100",
		TopHoldings:     []string{"AAPL", "MSFT", "NVDA", "GOOGL", "AMZN"},
		Strategy:        "0DTE covered calls on QQQ",
		RiskLevel:       RiskMediumHigh,
	},
	"CHPY": {
		Name:            "T-Rex 2X Long Nvidia Daily Target ETF",
		UnderlyingIndex: "Technology Sector",
		TopHoldings:     []string{"NVDA"},
		Strategy:        "2x leveraged NVDA with covered calls",
		RiskLevel:       RiskHigh,
	},
	"XDTE": {
		Name:            "S&P 500 0DTE Covered Call ETF",
		UnderlyingIndex: "S&P 500",
		TopHoldings:     []string{"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL"},
		Strategy:        "0DTE covered calls on SPY",
		RiskLevel:       RiskMedium,
	},
}

// IndexProxy maps an underlying index name onto the tradable symbol used to
// fetch index-level news.
var IndexProxy = map[string]string{
	"NASDAQ-100":        "QQQ",
	"S&P 500":           "SPY",
	"Technology Sector": "XLK",
}

// IsTracked reports whether the ticker belongs to the fixed tracked set.
func IsTracked(ticker string) bool {
	_, ok := TickerCatalog[ticker]
	return ok
}
