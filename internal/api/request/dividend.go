package request

// CreateDividendRequest represents the request body for appending a weekly
// dividend observation. The ticker comes from the URL path. Date uses
// "2006-01-02" format.
type CreateDividendRequest struct {
	Date     string  `json:"date"`
	Dividend float64 `json:"dividend"`
	Verified bool    `json:"verified,omitempty"`
}

// VerifyDividendRequest represents the request body for flagging a stored
// observation as verified.
type VerifyDividendRequest struct {
	Verified bool `json:"verified"`
}
