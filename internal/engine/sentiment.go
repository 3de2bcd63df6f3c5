package engine

import (
	"strings"

	"github.com/income-strategy/engine/internal/model"
)

// Sentiment classification labels used for display.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// sentimentDamping keeps headline scores away from the extremes; the net
// score is scaled into [-0.8, 0.8].
const sentimentDamping = 0.8

// classifyThreshold separates POSITIVE/NEGATIVE from NEUTRAL.
const classifyThreshold = 0.3

// Keyword weights for the lexical sentiment heuristic. Matching is
// case-insensitive substring matching; this is a deterministic dictionary
// lookup, not a statistical model.
var positiveKeywords = map[string]float64{
	"surge": 2, "soar": 2, "rally": 2, "jump": 2, "boom": 2,
	"gain": 1.5, "rise": 1.5, "climb": 1.5, "advance": 1.5,
	"beat": 1.5, "exceed": 1.5, "outperform": 1.5,
	"strong": 1, "growth": 1, "profit": 1, "bullish": 1.5,
	"upgrade": 1.5, "record": 1.5, "high": 1, "boost": 1,
	"positive": 1, "win": 1, "success": 1, "breakthrough": 1.5,
	"optimistic": 1, "confident": 1,
}

var negativeKeywords = map[string]float64{
	"crash": 2, "plunge": 2, "collapse": 2, "tumble": 2,
	"fall": 1.5, "drop": 1.5, "decline": 1.5, "sink": 1.5,
	"loss": 1.5, "miss": 1.5, "weak": 1, "bearish": 1.5,
	"downgrade": 1.5, "concern": 1, "worry": 1, "risk": 1,
	"threat": 1.5, "negative": 1, "cut": 1.5, "slash": 1.5,
	"warning": 1, "crisis": 2, "trouble": 1.5, "struggle": 1.5,
	"disappointing": 1, "uncertain": 1,
}

// ScoreHeadline maps a headline title onto a sentiment score in [-0.8, 0.8].
//
// Positive and negative keyword weights are summed independently; when neither
// side matches the headline is neutral (0) — undefined sentiment, not an
// error. Otherwise the net score (positive-negative over their sum) is damped
// by 0.8 to avoid extreme values.
func ScoreHeadline(title string) float64 {
	lower := strings.ToLower(title)

	var positive, negative float64
	for word, weight := range positiveKeywords {
		if strings.Contains(lower, word) {
			positive += weight
		}
	}
	for word, weight := range negativeKeywords {
		if strings.Contains(lower, word) {
			negative += weight
		}
	}

	if positive+negative == 0 {
		return 0
	}

	return (positive - negative) / (positive + negative) * sentimentDamping
}

// ClassifySentiment labels a sentiment score: above 0.3 POSITIVE, below -0.3
// NEGATIVE, otherwise NEUTRAL.
func ClassifySentiment(score float64) Sentiment {
	switch {
	case score > classifyThreshold:
		return SentimentPositive
	case score < -classifyThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ScoreNews averages the weighted headline sentiment per ticker. A headline's
// weight reflects how directly it concerns the fund (1.0 direct, 0.7 top
// holding, 0.5 index); a zero weight counts as direct.
//
// Tickers with no headlines score 0 — the documented "no news" neutral state.
func (e *Engine) ScoreNews(headlines map[string][]model.Headline) map[string]float64 {
	scores := make(map[string]float64, len(e.tickers))

	for _, ticker := range e.tickers {
		items := headlines[ticker]
		if len(items) == 0 {
			scores[ticker] = 0
			continue
		}

		var sum float64
		for _, h := range items {
			weight := h.Weight
			if weight == 0 {
				weight = 1
			}
			sum += ScoreHeadline(h.Title) * weight
		}
		scores[ticker] = sum / float64(len(items))
	}

	return scores
}
