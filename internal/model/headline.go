package model

import "time"

// Headline is a single news item attributed to a tracked ticker.
//
// Weight expresses how directly the story concerns the fund: 1.0 for the fund
// itself, 0.7 for one of its top holdings, 0.5 for its underlying index. The
// sentiment scorer multiplies each headline's score by its weight before
// averaging.
type Headline struct {
	Ticker      string    `json:"ticker"`
	Title       string    `json:"title"`
	Publisher   string    `json:"publisher"`
	PublishedAt time.Time `json:"publishedAt"`
	Link        string    `json:"link"`
	Weight      float64   `json:"weight"`
}
