package testutil

import (
	"context"

	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/model"
)

// FakeGateway is an in-memory implementation of marketdata.Gateway.
// It returns predefined data instead of making actual API calls; missing
// entries reproduce the gateway's degrade-on-failure behavior.
type FakeGateway struct {
	// Prices maps ticker to current price; absent tickers report no price.
	Prices map[string]float64
	// Histories maps ticker to its price history; absent tickers return empty.
	Histories map[string][]engine.PricePoint
	// News maps ticker to its headline set; absent tickers return empty.
	News map[string][]model.Headline
}

// NewFakeGateway creates a gateway with prices for all three tracked funds,
// matched to the default seeded positions so metrics come out positive.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		Prices: map[string]float64{
			"QDTE": 19.80,
			"CHPY": 26.10,
			"XDTE": 18.20,
		},
		Histories: map[string][]engine.PricePoint{},
		News:      map[string][]model.Headline{},
	}
}

// CurrentPrice returns the configured price for ticker.
func (g *FakeGateway) CurrentPrice(_ context.Context, ticker string) (float64, bool) {
	price, ok := g.Prices[ticker]
	return price, ok
}

// PriceHistory returns the configured history for ticker.
func (g *FakeGateway) PriceHistory(_ context.Context, ticker, _ string) []engine.PricePoint {
	return g.Histories[ticker]
}

// Headlines returns the configured headlines for ticker.
func (g *FakeGateway) Headlines(_ context.Context, ticker string) []model.Headline {
	return g.News[ticker]
}

// WithPrice overrides one ticker's price.
func (g *FakeGateway) WithPrice(ticker string, price float64) *FakeGateway {
	g.Prices[ticker] = price
	return g
}

// WithoutPrice removes a ticker's price, simulating an upstream failure.
func (g *FakeGateway) WithoutPrice(ticker string) *FakeGateway {
	delete(g.Prices, ticker)
	return g
}

// WithHeadline appends a direct headline for a ticker.
func (g *FakeGateway) WithHeadline(ticker, title string) *FakeGateway {
	g.News[ticker] = append(g.News[ticker], model.Headline{
		Ticker: ticker,
		Title:  title,
		Weight: 1.0,
	})
	return g
}
