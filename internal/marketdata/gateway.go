package marketdata

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/model"
)

const (
	weightDirect     = 1.0
	weightHolding    = 0.7
	weightIndex      = 0.5
	headlinesPerItem = 8
)

// Gateway is the non-throwing market data interface consumed by services.
// Every lookup degrades instead of failing: absent prices, empty histories,
// and empty headline lists stand in for upstream errors so that callers can
// always produce a result from whatever data is available.
type Gateway interface {
	// CurrentPrice returns the latest price for ticker, or false when no
	// price could be fetched.
	CurrentPrice(ctx context.Context, ticker string) (float64, bool)

	// PriceHistory returns daily closes for ticker over a Yahoo range string
	// (e.g. "1mo"). Empty on failure.
	PriceHistory(ctx context.Context, ticker, period string) []engine.PricePoint

	// Headlines returns recent news for ticker, including underlying-holding
	// and index stories at reduced weight. Empty on failure.
	Headlines(ctx context.Context, ticker string) []model.Headline
}

// YahooGateway implements Gateway on top of the Yahoo Finance client.
type YahooGateway struct {
	client *FinanceClient
}

// NewYahooGateway creates a gateway backed by Yahoo Finance.
//
// Parameters:
//   - timeout: Maximum duration for a single upstream request
//
// Returns:
//   - *YahooGateway: Gateway ready for use
func NewYahooGateway(timeout time.Duration) *YahooGateway {
	return &YahooGateway{client: NewFinanceClient(timeout)}
}

// CurrentPrice fetches the latest available price for a ticker.
// It prefers the regular market price from chart metadata and falls back to
// the most recent non-zero daily close.
//
// Returns:
//   - float64: The latest price
//   - bool: false when the lookup failed or returned no usable price
func (g *YahooGateway) CurrentPrice(ctx context.Context, ticker string) (float64, bool) {
	resp, err := g.client.QueryChart(ctx, ticker, "5d")
	if err != nil {
		log.Printf("marketdata: price lookup failed for %s: %v", ticker, err)
		return 0, false
	}

	result := resp.Chart.Result[0]
	if result.Meta.RegularMarketPrice > 0 {
		return result.Meta.RegularMarketPrice, true
	}

	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] > 0 {
				return closes[i], true
			}
		}
	}

	return 0, false
}

// PriceHistory fetches daily closing prices for a ticker over a Yahoo range
// string. Days with a zero close (holidays, missing data) are dropped.
//
// Returns:
//   - []engine.PricePoint: Closes in chronological order, empty on failure
func (g *YahooGateway) PriceHistory(ctx context.Context, ticker, period string) []engine.PricePoint {
	resp, err := g.client.QueryChart(ctx, ticker, period)
	if err != nil {
		log.Printf("marketdata: history lookup failed for %s: %v", ticker, err)
		return nil
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}

	closes := result.Indicators.Quote[0].Close
	points := make([]engine.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] <= 0 {
			continue
		}
		points = append(points, engine.PricePoint{Date: ts, Close: closes[i]})
	}

	return points
}

// Headlines fetches news for a ticker together with stories about its top
// holdings (weight 0.7) and its underlying index proxy (weight 0.5). Duplicate
// titles are dropped, keeping the highest-weight occurrence.
//
// Returns:
//   - []model.Headline: Weighted headlines, empty when nothing could be fetched
func (g *YahooGateway) Headlines(ctx context.Context, ticker string) []model.Headline {
	info, ok := model.TickerCatalog[ticker]
	if !ok {
		return nil
	}

	var headlines []model.Headline
	seen := make(map[string]bool)

	appendNews := func(symbol string, weight float64) {
		resp, err := g.client.QueryNews(ctx, symbol, headlinesPerItem)
		if err != nil {
			log.Printf("marketdata: news lookup failed for %s: %v", symbol, err)
			return
		}
		for _, item := range resp.News {
			if item.Title == "" || seen[item.Title] {
				continue
			}
			seen[item.Title] = true
			headlines = append(headlines, model.Headline{
				Ticker:      ticker,
				Title:       item.Title,
				Publisher:   item.Publisher,
				PublishedAt: time.Unix(item.ProviderTimeUT, 0).UTC(),
				Link:        item.Link,
				Weight:      weight,
			})
		}
	}

	appendNews(ticker, weightDirect)
	for _, holding := range info.TopHoldings {
		appendNews(holding, weightHolding)
	}
	if proxy, ok := model.IndexProxy[info.UnderlyingIndex]; ok {
		appendNews(proxy, weightIndex)
	}

	return headlines
}

// FetchPrices looks up current prices for all tickers concurrently.
// Individual failures are omitted from the result rather than failing the
// batch; callers treat missing entries as unavailable data.
//
// Parameters:
//   - ctx: Context bounding the whole batch
//   - g: Gateway used for the per-ticker lookups
//   - tickers: Tickers to fetch, typically the full tracked set
//
// Returns:
//   - map[string]float64: Prices keyed by ticker, entries missing on failure
func FetchPrices(ctx context.Context, g Gateway, tickers []string) map[string]float64 {
	prices := make(map[string]float64, len(tickers))
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	for _, ticker := range tickers {
		ticker := ticker
		group.Go(func() error {
			if price, ok := g.CurrentPrice(ctx, ticker); ok {
				mu.Lock()
				prices[ticker] = price
				mu.Unlock()
			}
			return nil
		})
	}

	// Goroutines never return errors; Wait only synchronizes completion.
	_ = group.Wait()

	return prices
}
