package model

// PriceAlertConfig holds the user-set price alert thresholds for one ticker.
// It is mutated only through the settings endpoints and read-only to the
// analytics engine.
type PriceAlertConfig struct {
	Ticker      string   `json:"ticker"`
	StopLossPct float64  `json:"stopLossPct"`           // Percent below cost basis that triggers a stop-loss alert (5-50)
	TargetPrice *float64 `json:"targetPrice,omitempty"` // Optional take-profit level; nil when unset
	Enabled     bool     `json:"enabled"`
}

// StopLossPct bounds accepted by validation.
const (
	MinStopLossPct = 5.0
	MaxStopLossPct = 50.0
)
