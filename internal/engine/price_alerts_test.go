package engine_test

import (
	"testing"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func snapshotAt(price float64) engine.MetricsSnapshot {
	eng := engine.Default()
	holdings := []model.Holding{
		{Ticker: "QDTE", Shares: 100, WeeklyDividend: 0.18, CostBasisPerShare: 10},
	}
	prices := map[string]float64{}
	if price > 0 {
		prices["QDTE"] = price
	}
	return eng.ComputeMetrics(holdings, 0, prices)
}

// TestEvaluatePriceAlerts_StopLoss tests the stop-loss trigger boundary.
//
// WHY: With a $10 cost basis and a 15% stop the threshold price is $8.50; the
// alert must fire at or below it and stay silent just above it.
func TestEvaluatePriceAlerts_StopLoss(t *testing.T) {
	eng := engine.Default()
	configs := []model.PriceAlertConfig{
		{Ticker: "QDTE", StopLossPct: 15, Enabled: true},
	}

	t.Run("price below threshold fires critical", func(t *testing.T) {
		alerts := eng.EvaluatePriceAlerts(snapshotAt(8.00), configs)

		if len(alerts) != 1 {
			t.Fatalf("Expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Kind != engine.AlertStopLoss {
			t.Errorf("Kind = %s, want %s", alerts[0].Kind, engine.AlertStopLoss)
		}
		if alerts[0].Severity != engine.SeverityCritical {
			t.Errorf("Severity = %s, want %s", alerts[0].Severity, engine.SeverityCritical)
		}
		approx(t, "Threshold", alerts[0].Threshold, 8.50)
		approx(t, "Price", alerts[0].Price, 8.00)
	})

	t.Run("price at the exact threshold fires", func(t *testing.T) {
		if alerts := eng.EvaluatePriceAlerts(snapshotAt(8.50), configs); len(alerts) != 1 {
			t.Errorf("Expected 1 alert at the boundary, got %d", len(alerts))
		}
	})

	t.Run("price above threshold stays silent", func(t *testing.T) {
		if alerts := eng.EvaluatePriceAlerts(snapshotAt(8.60), configs); len(alerts) != 0 {
			t.Errorf("Expected no alerts, got %d", len(alerts))
		}
	})

	t.Run("missing price skips the check", func(t *testing.T) {
		if alerts := eng.EvaluatePriceAlerts(snapshotAt(0), configs); len(alerts) != 0 {
			t.Errorf("Expected no alerts without a price, got %d", len(alerts))
		}
	})

	t.Run("disabled config is ignored", func(t *testing.T) {
		disabled := []model.PriceAlertConfig{
			{Ticker: "QDTE", StopLossPct: 15, Enabled: false},
		}

		if alerts := eng.EvaluatePriceAlerts(snapshotAt(8.00), disabled); len(alerts) != 0 {
			t.Errorf("Expected no alerts when disabled, got %d", len(alerts))
		}
	})
}

// TestEvaluatePriceAlerts_Target tests the take-profit trigger.
func TestEvaluatePriceAlerts_Target(t *testing.T) {
	eng := engine.Default()

	t.Run("price at or above target fires success", func(t *testing.T) {
		configs := []model.PriceAlertConfig{
			{Ticker: "QDTE", StopLossPct: 15, TargetPrice: floatPtr(12), Enabled: true},
		}

		alerts := eng.EvaluatePriceAlerts(snapshotAt(12.00), configs)

		if len(alerts) != 1 {
			t.Fatalf("Expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Kind != engine.AlertTargetReached {
			t.Errorf("Kind = %s, want %s", alerts[0].Kind, engine.AlertTargetReached)
		}
		if alerts[0].Severity != engine.SeveritySuccess {
			t.Errorf("Severity = %s, want %s", alerts[0].Severity, engine.SeveritySuccess)
		}
	})

	t.Run("nil target never fires", func(t *testing.T) {
		configs := []model.PriceAlertConfig{
			{Ticker: "QDTE", StopLossPct: 15, Enabled: true},
		}

		if alerts := eng.EvaluatePriceAlerts(snapshotAt(100), configs); len(alerts) != 0 {
			t.Errorf("Expected no alerts without a target, got %d", len(alerts))
		}
	})
}

// TestEvaluatePriceAlerts_BothConditions tests that stop-loss and target are
// independent checks for one ticker.
//
// WHY: A target set below the stop threshold is a misconfiguration the caller
// is allowed to make; both alerts must still surface rather than one masking
// the other.
func TestEvaluatePriceAlerts_BothConditions(t *testing.T) {
	eng := engine.Default()
	configs := []model.PriceAlertConfig{
		{Ticker: "QDTE", StopLossPct: 15, TargetPrice: floatPtr(7), Enabled: true},
	}

	alerts := eng.EvaluatePriceAlerts(snapshotAt(8.00), configs)

	if len(alerts) != 2 {
		t.Fatalf("Expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].Kind != engine.AlertStopLoss || alerts[1].Kind != engine.AlertTargetReached {
		t.Errorf("Got kinds %s, %s; want stop_loss then target_reached", alerts[0].Kind, alerts[1].Kind)
	}
}
