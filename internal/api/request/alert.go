package request

// UpdateAlertConfigRequest represents the request body for setting a ticker's
// price alert thresholds. TargetPrice is optional; omitting it clears the
// take-profit level.
type UpdateAlertConfigRequest struct {
	StopLossPct float64  `json:"stopLossPct"`
	TargetPrice *float64 `json:"targetPrice,omitempty"`
	Enabled     bool     `json:"enabled"`
}
