package request

// UpdateHoldingRequest represents the request body for editing a position.
// All fields are required; the ticker comes from the URL path.
type UpdateHoldingRequest struct {
	Shares            int     `json:"shares"`
	WeeklyDividend    float64 `json:"weeklyDividend"`
	CostBasisPerShare float64 `json:"costBasisPerShare"`
}
