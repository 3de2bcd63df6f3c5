package model

import "time"

// DividendRecord is a single weekly dividend observation for a ticker.
// Records form an append-only, time-ordered sequence; trend analysis reads a
// trailing window of them.
type DividendRecord struct {
	ID       string    `json:"id"`
	Ticker   string    `json:"ticker"`
	Date     time.Time `json:"date"`
	Dividend float64   `json:"dividend"` // Per-share amount for the week
	Verified bool      `json:"verified"`
}
