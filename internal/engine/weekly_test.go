package engine_test

import (
	"testing"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/model"
)

// pricePoints builds a daily close history, oldest first.
func pricePoints(closes ...float64) []engine.PricePoint {
	points := make([]engine.PricePoint, len(closes))
	base := int64(1767312000) // 2026-01-02
	for i, c := range closes {
		points[i] = engine.PricePoint{Date: base + int64(i)*86400, Close: c}
	}
	return points
}

func rankedScore(t *testing.T, rec engine.WeeklyRecommendation, ticker string) engine.TickerScore {
	t.Helper()
	for _, s := range rec.Ranked {
		if s.Ticker == ticker {
			return s
		}
	}
	t.Fatalf("Ticker %s missing from ranking", ticker)
	return engine.TickerScore{}
}

// TestRecommendWeeklyBuy_NeutralBaseline tests the scores when every input is
// absent: no holdings, no sentiment, no history, no alerts.
//
// WHY: With all data-driven factors at their neutral defaults, only the
// static risk levels and the underweight bonus differ per ticker. This pins
// the baseline every other weekly test perturbs.
func TestRecommendWeeklyBuy_NeutralBaseline(t *testing.T) {
	eng := engine.Default()

	rec := eng.RecommendWeeklyBuy(engine.MetricsSnapshot{}, nil, nil, nil)

	// Neutral sentiment 0 + neutral trend 15 + stable dividend 20 +
	// underweight 10 + risk bonus (+7 / +5 / +10).
	approx(t, "QDTE score", rankedScore(t, rec, "QDTE").Score, 52)
	approx(t, "CHPY score", rankedScore(t, rec, "CHPY").Score, 50)
	approx(t, "XDTE score", rankedScore(t, rec, "XDTE").Score, 55)

	if rec.Top != "XDTE" {
		t.Errorf("Top = %s, want XDTE", rec.Top)
	}
	if rec.Alternative != "QDTE" {
		t.Errorf("Alternative = %s, want QDTE", rec.Alternative)
	}
	if rec.Confidence != engine.ConfidenceLow {
		t.Errorf("Confidence = %s, want %s with a 3-point gap", rec.Confidence, engine.ConfidenceLow)
	}

	// Without a holding the yield factor is skipped: five factors remain.
	if got := len(rankedScore(t, rec, "XDTE").Factors); got != 5 {
		t.Errorf("Factor count = %d, want 5", got)
	}
}

// TestRecommendWeeklyBuy_ConfidenceTiers tests the gap-to-confidence mapping
// by injecting sentiment to widen the lead.
func TestRecommendWeeklyBuy_ConfidenceTiers(t *testing.T) {
	eng := engine.Default()

	tests := []struct {
		name      string
		sentiment float64 // For QDTE; 30-point weight
		wantTop   string
		want      engine.Confidence
	}{
		{"gap above 20 is very high", 0.9, "QDTE", engine.ConfidenceVeryHigh}, // 79 vs 55
		{"gap above 10 is high", 0.5, "QDTE", engine.ConfidenceHigh},          // 67 vs 55
		{"gap above 5 is moderate", 0.3, "QDTE", engine.ConfidenceModerate},   // 61 vs 55
		{"small gap is low", 0, "XDTE", engine.ConfidenceLow},                 // 55 vs 52
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sentiment := map[string]float64{"QDTE": tc.sentiment}

			rec := eng.RecommendWeeklyBuy(engine.MetricsSnapshot{}, sentiment, nil, nil)

			if rec.Top != tc.wantTop {
				t.Errorf("Top = %s, want %s", rec.Top, tc.wantTop)
			}
			if rec.Confidence != tc.want {
				t.Errorf("Confidence = %s, want %s", rec.Confidence, tc.want)
			}
		})
	}
}

// TestRecommendWeeklyBuy_PriceTrend tests the contrarian trend factor.
//
// WHY: Dips are entries and rallies are expensive under the contrarian policy;
// the factor must also degrade to the neutral score when history is short.
func TestRecommendWeeklyBuy_PriceTrend(t *testing.T) {
	eng := engine.Default()

	tests := []struct {
		name      string
		history   []engine.PricePoint
		wantScore float64 // QDTE total: 52 baseline shifts with trend vs neutral 15
	}{
		{"strong dip scores 25", pricePoints(20, 19.8, 19.5, 19.2, 18.9), 62}, // -5.5%
		{"mild dip scores 20", pricePoints(20, 19.9, 19.7, 19.5, 19.4), 57},   // -3%
		{"rally scores 5", pricePoints(20, 20.8, 21.4, 21.9, 22.2), 42},       // +11%
		{"stable scores the neutral 15", pricePoints(20, 20.1, 20, 19.9, 20), 52},
		{"short history degrades to neutral", pricePoints(20, 18), 52},
		{"zero leading close degrades to neutral", pricePoints(0, 20, 20, 20, 20), 52},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			histories := map[string][]engine.PricePoint{"QDTE": tc.history}

			rec := eng.RecommendWeeklyBuy(engine.MetricsSnapshot{}, nil, histories, nil)

			approx(t, "QDTE score", rankedScore(t, rec, "QDTE").Score, tc.wantScore)
		})
	}

	t.Run("rally adds a price warning", func(t *testing.T) {
		histories := map[string][]engine.PricePoint{
			"QDTE": pricePoints(20, 20.8, 21.4, 21.9, 22.2),
		}

		rec := eng.RecommendWeeklyBuy(engine.MetricsSnapshot{}, nil, histories, nil)

		if warnings := rankedScore(t, rec, "QDTE").Warnings; len(warnings) != 1 {
			t.Errorf("Expected 1 warning, got %v", warnings)
		}
	})
}

// TestRecommendWeeklyBuy_DividendFactor tests how trend alerts feed the
// dividend stability factor.
func TestRecommendWeeklyBuy_DividendFactor(t *testing.T) {
	eng := engine.Default()

	tests := []struct {
		name      string
		alert     engine.Alert
		wantScore float64 // QDTE total: 52 baseline shifts with factor vs stable 20
	}{
		{
			"critical drop subtracts 10",
			engine.Alert{Ticker: "QDTE", Kind: engine.AlertDividendDrop, Severity: engine.SeverityCritical},
			22,
		},
		{
			"moderate decline halves the factor",
			engine.Alert{Ticker: "QDTE", Kind: engine.AlertDividendDecline, Severity: engine.SeverityWarning},
			42,
		},
		{
			"increase earns the 25-point bonus",
			engine.Alert{Ticker: "QDTE", Kind: engine.AlertDividendRise, Severity: engine.SeveritySuccess},
			57,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := eng.RecommendWeeklyBuy(engine.MetricsSnapshot{}, nil, nil, []engine.Alert{tc.alert})

			approx(t, "QDTE score", rankedScore(t, rec, "QDTE").Score, tc.wantScore)
		})
	}

	t.Run("alerts for other tickers do not leak", func(t *testing.T) {
		alert := engine.Alert{Ticker: "CHPY", Kind: engine.AlertDividendDrop, Severity: engine.SeverityCritical}

		rec := eng.RecommendWeeklyBuy(engine.MetricsSnapshot{}, nil, nil, []engine.Alert{alert})

		approx(t, "QDTE score", rankedScore(t, rec, "QDTE").Score, 52)
		approx(t, "CHPY score", rankedScore(t, rec, "CHPY").Score, 20)
	})
}

// TestRecommendWeeklyBuy_HoldingFactors tests the yield and concentration
// factors, which only apply when the ticker has a priced holding.
func TestRecommendWeeklyBuy_HoldingFactors(t *testing.T) {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.177, CostBasisPerShare: 19.50},
	}
	metrics := eng.ComputeMetrics(holdings, 0, map[string]float64{"QDTE": 19.80})

	rec := eng.RecommendWeeklyBuy(metrics, nil, nil, nil)

	// Neutral sentiment 0 + trend 15 + dividend 20 + solid yield 10 +
	// overweight at 100% concentration -10 + risk 7.
	score := rankedScore(t, rec, "QDTE")
	approx(t, "QDTE score", score.Score, 42)
	approx(t, "Concentration", score.Concentration, 100)
	if score.YieldPct <= 30 || score.YieldPct >= 50 {
		t.Errorf("YieldPct = %v, want the solid-yield band", score.YieldPct)
	}
	if len(score.Factors) != 6 {
		t.Errorf("Factor count = %d, want 6 with a priced holding", len(score.Factors))
	}
	if len(score.Warnings) == 0 {
		t.Error("Expected an overweight warning")
	}
}

// TestRecommendWeeklyBuy_StableTies tests that equal scores keep ticker order.
func TestRecommendWeeklyBuy_StableTies(t *testing.T) {
	eng := engine.Default()
	// Lift CHPY by exactly 2 points to tie QDTE at 52.
	sentiment := map[string]float64{"CHPY": 2.0 / 30.0}

	rec := eng.RecommendWeeklyBuy(engine.MetricsSnapshot{}, sentiment, nil, nil)

	if rec.Ranked[1].Ticker != "QDTE" || rec.Ranked[2].Ticker != "CHPY" {
		t.Errorf("Tie order = %s, %s; want QDTE before CHPY",
			rec.Ranked[1].Ticker, rec.Ranked[2].Ticker)
	}
	approx(t, "tie score", rec.Ranked[1].Score, rec.Ranked[2].Score)
}
