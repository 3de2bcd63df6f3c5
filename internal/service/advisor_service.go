package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/marketdata"
	"github.com/income-strategy/engine/internal/model"
)

// historyPeriod is the price history window fed to the weekly trend factor.
const historyPeriod = "1mo"

// AdvisorService runs the analytics pipeline: it gathers live market data and
// stored state, then delegates every computation to the pure engine. All
// market lookups degrade to neutral defaults on failure; only storage errors
// and an invalid portfolio surface as errors.
type AdvisorService struct {
	portfolioService *PortfolioService
	dividendService  *DividendService
	settingsService  *SettingsService
	alertService     *AlertService
	gateway          marketdata.Gateway
	eng              *engine.Engine
}

// NewAdvisorService creates a new AdvisorService with the provided
// dependencies.
func NewAdvisorService(
	portfolioService *PortfolioService,
	dividendService *DividendService,
	settingsService *SettingsService,
	alertService *AlertService,
	gateway marketdata.Gateway,
	eng *engine.Engine,
) *AdvisorService {
	return &AdvisorService{
		portfolioService: portfolioService,
		dividendService:  dividendService,
		settingsService:  settingsService,
		alertService:     alertService,
		gateway:          gateway,
		eng:              eng,
	}
}

// Sentiment fetches recent headlines for every tracked ticker concurrently
// and scores them. Tickers with no fetchable news score 0 (neutral).
func (s *AdvisorService) Sentiment(ctx context.Context) map[string]float64 {
	headlines := s.fetchHeadlines(ctx)
	return s.eng.ScoreNews(headlines)
}

// News fetches the weighted headline set for every tracked ticker and scores
// it, so callers rendering both make a single round of fetches.
func (s *AdvisorService) News(ctx context.Context) (map[string][]model.Headline, map[string]float64) {
	headlines := s.fetchHeadlines(ctx)
	return headlines, s.eng.ScoreNews(headlines)
}

// WeeklyBuy produces the ranked weekly buy recommendation.
func (s *AdvisorService) WeeklyBuy(ctx context.Context) (engine.WeeklyRecommendation, error) {
	metrics, err := s.portfolioService.ComputeMetrics(ctx)
	if err != nil {
		return engine.WeeklyRecommendation{}, err
	}

	divAlerts, err := s.dividendAlerts(ctx)
	if err != nil {
		return engine.WeeklyRecommendation{}, err
	}

	sentiment := s.Sentiment(ctx)
	histories := s.fetchHistories(ctx)

	return s.eng.RecommendWeeklyBuy(metrics, sentiment, histories, divAlerts), nil
}

// Rebalance produces the rebalancing plan derived from current metrics and
// the weekly ranking.
func (s *AdvisorService) Rebalance(ctx context.Context) (engine.RebalancePlan, error) {
	metrics, err := s.portfolioService.ComputeMetrics(ctx)
	if err != nil {
		return engine.RebalancePlan{}, err
	}

	weekly, err := s.WeeklyBuy(ctx)
	if err != nil {
		return engine.RebalancePlan{}, err
	}

	return s.eng.PlanRebalance(metrics, weekly), nil
}

// Risk produces the 0-100 portfolio risk assessment.
func (s *AdvisorService) Risk(ctx context.Context) (engine.RiskScore, error) {
	metrics, err := s.portfolioService.ComputeMetrics(ctx)
	if err != nil {
		return engine.RiskScore{}, err
	}

	divAlerts, err := s.dividendAlerts(ctx)
	if err != nil {
		return engine.RiskScore{}, err
	}

	return s.eng.ScoreRisk(metrics, divAlerts), nil
}

// Recommendations produces the merged, prioritized action list across all
// analyses.
func (s *AdvisorService) Recommendations(ctx context.Context) ([]engine.Recommendation, error) {
	metrics, err := s.portfolioService.ComputeMetrics(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return nil, err
	}

	divAlerts, err := s.dividendAlerts(ctx)
	if err != nil {
		return nil, err
	}

	configs, err := s.alertService.GetConfigs()
	if err != nil {
		return nil, err
	}
	priceAlerts := s.eng.EvaluatePriceAlerts(metrics, configs)

	sentiment := s.Sentiment(ctx)
	risk := s.eng.ScoreRisk(metrics, divAlerts)

	return s.eng.AggregateRecommendations(metrics, risk, divAlerts, priceAlerts, sentiment, settings.TargetIncome), nil
}

// Projection simulates compounding growth until the income target is reached
// or the horizon runs out. Non-nil deposit and target override the stored
// settings for what-if exploration without persisting anything.
func (s *AdvisorService) Projection(ctx context.Context, deposit, target *float64) (engine.Projection, error) {
	holdings, err := s.portfolioService.GetHoldings()
	if err != nil {
		return engine.Projection{}, err
	}
	if err := s.portfolioService.ValidatePortfolio(); err != nil {
		return engine.Projection{}, err
	}

	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return engine.Projection{}, err
	}

	monthlyDeposit := settings.MonthlyDeposit
	if deposit != nil {
		monthlyDeposit = *deposit
	}
	targetIncome := settings.TargetIncome
	if target != nil {
		targetIncome = *target
	}

	prices := s.portfolioService.FetchPrices(ctx)

	return s.eng.ProjectGrowth(holdings, settings.Cash, prices, monthlyDeposit, targetIncome), nil
}

// dividendAlerts loads stored history and runs the trend analysis with the
// user's configured drop threshold.
func (s *AdvisorService) dividendAlerts(ctx context.Context) ([]engine.Alert, error) {
	history, err := s.dividendService.GetAllHistory()
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return nil, err
	}

	return s.eng.AnalyzeDividendTrends(history, settings.DividendDropPct), nil
}

// fetchHeadlines loads headlines for all tickers concurrently. Per-ticker
// failures leave that ticker's entry empty.
func (s *AdvisorService) fetchHeadlines(ctx context.Context) map[string][]model.Headline {
	headlines := make(map[string][]model.Headline, len(s.eng.Tickers()))
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	for _, ticker := range s.eng.Tickers() {
		ticker := ticker
		group.Go(func() error {
			items := s.gateway.Headlines(ctx, ticker)
			mu.Lock()
			headlines[ticker] = items
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	return headlines
}

// fetchHistories loads recent price history for all tickers concurrently.
// Per-ticker failures leave that ticker's history empty, which downgrades its
// trend factor to neutral.
func (s *AdvisorService) fetchHistories(ctx context.Context) map[string][]engine.PricePoint {
	histories := make(map[string][]engine.PricePoint, len(s.eng.Tickers()))
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	for _, ticker := range s.eng.Tickers() {
		ticker := ticker
		group.Go(func() error {
			points := s.gateway.PriceHistory(ctx, ticker, historyPeriod)
			mu.Lock()
			histories[ticker] = points
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	return histories
}
