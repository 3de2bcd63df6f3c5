package service

import (
	"context"
	"fmt"
	"log"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/model"
	"github.com/income-strategy/engine/internal/notify"
	"github.com/income-strategy/engine/internal/repository"
	"github.com/income-strategy/engine/internal/validation"
)

// AlertService evaluates alert conditions against live data and dispatches
// notifications. Alerts are transient: each evaluation regenerates the full
// set, nothing is persisted.
type AlertService struct {
	portfolioService *PortfolioService
	dividendService  *DividendService
	settingsService  *SettingsService
	alertConfigRepo  *repository.AlertConfigRepository
	notifier         notify.Notifier
	eng              *engine.Engine
}

// NewAlertService creates a new AlertService with the provided dependencies.
func NewAlertService(
	portfolioService *PortfolioService,
	dividendService *DividendService,
	settingsService *SettingsService,
	alertConfigRepo *repository.AlertConfigRepository,
	notifier notify.Notifier,
	eng *engine.Engine,
) *AlertService {
	return &AlertService{
		portfolioService: portfolioService,
		dividendService:  dividendService,
		settingsService:  settingsService,
		alertConfigRepo:  alertConfigRepo,
		notifier:         notifier,
		eng:              eng,
	}
}

// GetConfigs retrieves all price alert configurations.
func (s *AlertService) GetConfigs() ([]model.PriceAlertConfig, error) {
	return s.alertConfigRepo.GetConfigs()
}

// GetConfig retrieves the alert configuration for one ticker.
func (s *AlertService) GetConfig(ticker string) (model.PriceAlertConfig, error) {
	if err := validation.ValidateTicker(ticker); err != nil {
		return model.PriceAlertConfig{}, err
	}
	return s.alertConfigRepo.GetConfig(ticker)
}

// UpdateConfig validates and stores the alert thresholds for one ticker.
func (s *AlertService) UpdateConfig(cfg model.PriceAlertConfig) error {
	if err := validation.ValidateAlertConfig(cfg); err != nil {
		return err
	}
	return s.alertConfigRepo.UpsertConfig(cfg)
}

// EvaluateAlerts regenerates the full alert set: dividend trend alerts from
// stored history plus price alerts from current prices and configured
// thresholds. Dividend alerts precede price alerts, each group in ticker
// order.
func (s *AlertService) EvaluateAlerts(ctx context.Context) ([]engine.Alert, error) {
	metrics, err := s.portfolioService.ComputeMetrics(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return nil, err
	}

	history, err := s.dividendService.GetAllHistory()
	if err != nil {
		return nil, err
	}

	configs, err := s.alertConfigRepo.GetConfigs()
	if err != nil {
		return nil, err
	}

	alerts := s.eng.AnalyzeDividendTrends(history, settings.DividendDropPct)
	alerts = append(alerts, s.eng.EvaluatePriceAlerts(metrics, configs)...)

	return alerts, nil
}

// EvaluateAndNotify evaluates the alert set and dispatches notifications for
// the alerts the user has opted into. Called by the monitor job; delivery
// failures are logged, not returned, so one broken channel cannot stop the
// sweep.
func (s *AlertService) EvaluateAndNotify(ctx context.Context) ([]engine.Alert, error) {
	alerts, err := s.EvaluateAlerts(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return alerts, err
	}

	for _, alert := range alerts {
		if !shouldNotify(alert, settings) {
			continue
		}
		s.dispatch(alert, settings)
	}

	return alerts, nil
}

// shouldNotify applies the user's notification preferences to one alert.
// Dividend increases are informational and never dispatched.
func shouldNotify(alert engine.Alert, settings model.Settings) bool {
	switch alert.Kind {
	case engine.AlertDividendDrop, engine.AlertDividendDecline:
		return settings.AlertOnDividendDrop
	case engine.AlertStopLoss, engine.AlertTargetReached:
		return settings.AlertOnPriceDrop
	default:
		return false
	}
}

func (s *AlertService) dispatch(alert engine.Alert, settings model.Settings) {
	subject := fmt.Sprintf("Portfolio Alert: %s %s", alert.Ticker, alert.Kind)
	body := alert.Message
	if alert.Action != "" {
		body = fmt.Sprintf("%s\n\nSuggested action: %s", alert.Message, alert.Action)
	}

	if settings.EmailEnabled && settings.NotifyEmail != "" {
		if err := s.notifier.Send(notify.ChannelEmail, settings.NotifyEmail, subject, body); err != nil {
			log.Printf("alert: email dispatch failed for %s: %v", alert.Ticker, err)
		}
	}
	if settings.SMSEnabled && settings.NotifySMS != "" {
		if err := s.notifier.Send(notify.ChannelSMS, settings.NotifySMS, subject, alert.Message); err != nil {
			log.Printf("alert: sms dispatch failed for %s: %v", alert.Ticker, err)
		}
	}
}
