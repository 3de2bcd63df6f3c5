package engine_test

import (
	"strings"
	"testing"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/model"
)

func healthyRisk() engine.RiskScore {
	return engine.RiskScore{TotalScore: 85, Band: engine.RiskBandLow}
}

// TestAggregateRecommendations_PriorityOrder tests that mixed sources come
// back sorted CRITICAL through LOW with generation order preserved inside a
// tier.
//
// WHY: The dashboard renders this list top-down; a stop-loss buried under a
// sentiment note would defeat the point of aggregating.
func TestAggregateRecommendations_PriorityOrder(t *testing.T) {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.18, CostBasisPerShare: 20},
		{Ticker: "XDTE", Shares: 100, WeeklyDividend: 0.16, CostBasisPerShare: 18.50},
	}
	prices := map[string]float64{"QDTE": 16, "XDTE": 18.20}
	metrics := eng.ComputeMetrics(holdings, 0, prices)

	divAlerts := []engine.Alert{
		{Ticker: "XDTE", Kind: engine.AlertDividendDrop, Severity: engine.SeverityCritical, ChangePct: -15, RecentAvg: 0.16},
	}
	priceAlerts := []engine.Alert{
		{Ticker: "QDTE", Kind: engine.AlertStopLoss, Severity: engine.SeverityCritical, Price: 16, Threshold: 17},
	}
	sentiment := map[string]float64{"XDTE": 0.7, "QDTE": -0.7}

	recs := eng.AggregateRecommendations(metrics, healthyRisk(), divAlerts, priceAlerts, sentiment, 0)

	if len(recs) != 4 {
		t.Fatalf("Expected 4 recommendations, got %d", len(recs))
	}

	wantOrder := []engine.Priority{
		engine.PriorityCritical, // stop loss
		engine.PriorityHigh,     // dividend crisis
		engine.PriorityMedium,   // negative sentiment
		engine.PriorityLow,      // positive sentiment
	}
	for i, want := range wantOrder {
		if recs[i].Priority != want {
			t.Errorf("recs[%d].Priority = %s, want %s", i, recs[i].Priority, want)
		}
	}

	if recs[0].Kind != "stop_loss" || recs[0].Ticker != "QDTE" {
		t.Errorf("Top recommendation = %s %s, want stop_loss QDTE", recs[0].Kind, recs[0].Ticker)
	}
	if recs[1].Kind != "dividend_action" || recs[1].Ticker != "XDTE" {
		t.Errorf("Second recommendation = %s %s, want dividend_action XDTE", recs[1].Kind, recs[1].Ticker)
	}
}

// TestAggregateRecommendations_Quiet tests that a healthy portfolio produces
// no recommendations.
func TestAggregateRecommendations_Quiet(t *testing.T) {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.18, CostBasisPerShare: 19.50},
	}
	metrics := eng.ComputeMetrics(holdings, 0, map[string]float64{"QDTE": 19.80})

	recs := eng.AggregateRecommendations(metrics, healthyRisk(), nil, nil, nil, 0)

	if len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}
}

// TestAggregateRecommendations_SentimentGuards tests the outlier thresholds
// and the concentration guard on the positive side.
func TestAggregateRecommendations_SentimentGuards(t *testing.T) {
	eng := engine.Default()

	t.Run("weak sentiment is ignored", func(t *testing.T) {
		sentiment := map[string]float64{"QDTE": 0.5, "CHPY": -0.5}

		recs := eng.AggregateRecommendations(engine.MetricsSnapshot{}, healthyRisk(), nil, nil, sentiment, 0)

		if len(recs) != 0 {
			t.Errorf("Expected no outliers at the 0.5 boundary, got %v", recs)
		}
	})

	t.Run("positive outlier is suppressed when concentrated", func(t *testing.T) {
		holdings := []model.Holding{
			{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.18, CostBasisPerShare: 19.50},
		}
		// 100% in QDTE: past the 40% suppression line.
		metrics := eng.ComputeMetrics(holdings, 0, map[string]float64{"QDTE": 19.80})
		sentiment := map[string]float64{"QDTE": 0.7}

		recs := eng.AggregateRecommendations(metrics, healthyRisk(), nil, nil, sentiment, 0)

		if len(recs) != 0 {
			t.Errorf("Expected suppression while concentrated, got %v", recs)
		}
	})

	t.Run("negative outlier fires regardless of concentration", func(t *testing.T) {
		sentiment := map[string]float64{"CHPY": -0.7}

		recs := eng.AggregateRecommendations(engine.MetricsSnapshot{}, healthyRisk(), nil, nil, sentiment, 0)

		if len(recs) != 1 {
			t.Fatalf("Expected 1 recommendation, got %d", len(recs))
		}
		if recs[0].Kind != "news_sentiment" || recs[0].Priority != engine.PriorityMedium {
			t.Errorf("Got %s/%s, want news_sentiment/MEDIUM", recs[0].Kind, recs[0].Priority)
		}
	})
}

// TestAggregateRecommendations_RiskMitigation tests the elevated-risk entry.
func TestAggregateRecommendations_RiskMitigation(t *testing.T) {
	eng := engine.Default()
	risk := engine.RiskScore{TotalScore: 45, Band: engine.RiskBandHigh}

	recs := eng.AggregateRecommendations(engine.MetricsSnapshot{}, risk, nil, nil, nil, 0)

	if len(recs) != 1 {
		t.Fatalf("Expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Kind != "risk_mitigation" || recs[0].Ticker != "PORTFOLIO" {
		t.Errorf("Got %s/%s, want risk_mitigation/PORTFOLIO", recs[0].Kind, recs[0].Ticker)
	}
	if recs[0].Priority != engine.PriorityHigh {
		t.Errorf("Priority = %s, want HIGH", recs[0].Priority)
	}
}

// TestAggregateRecommendations_IncomeGap tests the idle-cash opportunity.
//
// WHY: With a $50/month gap and the best payer at $0.50 weekly, closing the
// gap needs floor(50*12/52/0.50) = 23 shares; the entry must only appear when
// the cash on hand covers that purchase.
func TestAggregateRecommendations_IncomeGap(t *testing.T) {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 10, WeeklyDividend: 0.18, CostBasisPerShare: 19.50},
		{Ticker: "CHPY", Shares: 50, WeeklyDividend: 0.50, CostBasisPerShare: 25.80},
	}
	prices := map[string]float64{"QDTE": 19.80, "CHPY": 26.00}

	// Current income: (10*0.18 + 50*0.50) * 52/12 = 116.13/month.
	target := 166.13 // Leaves a gap just shy of $50/month

	t.Run("enough cash surfaces the opportunity", func(t *testing.T) {
		metrics := eng.ComputeMetrics(holdings, 23*26.00, prices)

		recs := eng.AggregateRecommendations(metrics, healthyRisk(), nil, nil, nil, target)

		if len(recs) != 1 {
			t.Fatalf("Expected 1 recommendation, got %d", len(recs))
		}
		rec := recs[0]
		if rec.Kind != "income_boost" || rec.Ticker != "CHPY" {
			t.Errorf("Got %s/%s, want income_boost/CHPY", rec.Kind, rec.Ticker)
		}
		if !strings.Contains(rec.Action, "23 shares") {
			t.Errorf("Action = %q, want a 23-share purchase", rec.Action)
		}
	})

	t.Run("insufficient cash stays silent", func(t *testing.T) {
		metrics := eng.ComputeMetrics(holdings, 100, prices)

		recs := eng.AggregateRecommendations(metrics, healthyRisk(), nil, nil, nil, target)

		if len(recs) != 0 {
			t.Errorf("Expected no recommendations, got %v", recs)
		}
	})

	t.Run("met target stays silent even with cash", func(t *testing.T) {
		metrics := eng.ComputeMetrics(holdings, 5000, prices)

		recs := eng.AggregateRecommendations(metrics, healthyRisk(), nil, nil, nil, 50)

		if len(recs) != 0 {
			t.Errorf("Expected no recommendations, got %v", recs)
		}
	})
}
