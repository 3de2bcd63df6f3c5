package engine

import (
	"fmt"

	"github.com/income-strategy/engine/internal/model"
)

// EvaluatePriceAlerts checks stop-loss and target-price conditions for every
// ticker with alerts enabled.
//
// The two checks are independent, not mutually exclusive: a ticker can fire
// both in the same evaluation. Holdings without a usable price or cost basis
// skip the stop-loss check (zero denominators never propagate). Alerts are
// transient and regenerated on each call.
func (e *Engine) EvaluatePriceAlerts(metrics MetricsSnapshot, configs []model.PriceAlertConfig) []Alert {
	var alerts []Alert

	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		holding, ok := metrics.Holding(cfg.Ticker)
		if !ok {
			continue
		}

		if holding.Price > 0 && holding.CostBasisPerShare > 0 {
			lossFromBasis := (holding.Price/holding.CostBasisPerShare - 1) * 100
			if lossFromBasis <= -cfg.StopLossPct {
				alerts = append(alerts, Alert{
					Ticker:    cfg.Ticker,
					Kind:      AlertStopLoss,
					Severity:  SeverityCritical,
					Price:     holding.Price,
					Threshold: holding.CostBasisPerShare * (1 - cfg.StopLossPct/100),
					Message:   fmt.Sprintf("STOP LOSS TRIGGERED: %s down %.1f%% from cost basis", cfg.Ticker, -lossFromBasis),
					Action:    fmt.Sprintf("Consider selling %s to limit losses", cfg.Ticker),
				})
			}
		}

		if cfg.TargetPrice != nil && holding.Price >= *cfg.TargetPrice {
			alerts = append(alerts, Alert{
				Ticker:    cfg.Ticker,
				Kind:      AlertTargetReached,
				Severity:  SeveritySuccess,
				Price:     holding.Price,
				Threshold: *cfg.TargetPrice,
				Message:   fmt.Sprintf("TARGET REACHED: %s hit $%.2f", cfg.Ticker, holding.Price),
				Action:    fmt.Sprintf("Consider taking profits on %s", cfg.Ticker),
			})
		}
	}

	return alerts
}
