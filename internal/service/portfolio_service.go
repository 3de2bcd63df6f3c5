package service

import (
	"context"
	"time"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/marketdata"
	"github.com/income-strategy/engine/internal/model"
	"github.com/income-strategy/engine/internal/repository"
	"github.com/income-strategy/engine/internal/validation"
)

// PortfolioService handles portfolio-related business logic: holdings
// management and the live metrics snapshot that every analysis consumes.
type PortfolioService struct {
	holdingRepo     *repository.HoldingRepository
	settingsService *SettingsService
	gateway         marketdata.Gateway
	eng             *engine.Engine
	fetchTimeout    time.Duration
}

// NewPortfolioService creates a new PortfolioService with the provided
// dependencies.
func NewPortfolioService(
	holdingRepo *repository.HoldingRepository,
	settingsService *SettingsService,
	gateway marketdata.Gateway,
	eng *engine.Engine,
	fetchTimeout time.Duration,
) *PortfolioService {
	return &PortfolioService{
		holdingRepo:     holdingRepo,
		settingsService: settingsService,
		gateway:         gateway,
		eng:             eng,
		fetchTimeout:    fetchTimeout,
	}
}

// GetHoldings retrieves all holdings.
func (s *PortfolioService) GetHoldings() ([]model.Holding, error) {
	return s.holdingRepo.GetHoldings()
}

// GetTickerInfo returns the static reference data for every tracked fund.
func (s *PortfolioService) GetTickerInfo() map[string]model.TickerInfo {
	return model.TickerCatalog
}

// UpdateHolding validates and stores an edited position.
// The ticker must belong to the tracked set and the resulting position must
// satisfy the portfolio preconditions.
func (s *PortfolioService) UpdateHolding(h model.Holding) error {
	if err := validation.ValidateTicker(h.Ticker); err != nil {
		return err
	}
	if err := validation.ValidateHoldings([]model.Holding{h}); err != nil {
		return err
	}
	return s.holdingRepo.UpdateHolding(h)
}

// ValidatePortfolio checks the stored holdings against the portfolio
// preconditions. A non-nil error wraps ErrPortfolioInvalid and means every
// scoring and recommendation operation must refuse to run.
func (s *PortfolioService) ValidatePortfolio() error {
	holdings, err := s.holdingRepo.GetHoldings()
	if err != nil {
		return err
	}
	return validation.ValidateHoldings(holdings)
}

// FetchPrices looks up current prices for the tracked set, bounded by the
// configured fetch timeout. Missing entries mean the price was unavailable.
func (s *PortfolioService) FetchPrices(ctx context.Context) map[string]float64 {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	return marketdata.FetchPrices(ctx, s.gateway, s.eng.Tickers())
}

// ComputeMetrics produces the live portfolio metrics snapshot.
//
// The method loads holdings and cash, validates the portfolio configuration,
// fetches current prices, and runs the metric computation. Unavailable prices
// degrade the affected per-holding fields to zero rather than failing.
//
// Returns:
//   - engine.MetricsSnapshot: The computed metrics
//   - error: ErrPortfolioInvalid (wrapped) when validation fails, or a
//     storage error
func (s *PortfolioService) ComputeMetrics(ctx context.Context) (engine.MetricsSnapshot, error) {
	holdings, err := s.holdingRepo.GetHoldings()
	if err != nil {
		return engine.MetricsSnapshot{}, err
	}
	if err := validation.ValidateHoldings(holdings); err != nil {
		return engine.MetricsSnapshot{}, err
	}

	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return engine.MetricsSnapshot{}, err
	}

	prices := s.FetchPrices(ctx)

	return s.eng.ComputeMetrics(holdings, settings.Cash, prices), nil
}
