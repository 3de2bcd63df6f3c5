// Package engine implements the portfolio analytics and recommendation core:
// metric calculation, sentiment scoring, dividend trend detection, price
// alerts, risk scoring, the weekly investment ranking, rebalance planning,
// compound growth projection and recommendation aggregation.
//
// Every method is a pure function over snapshot inputs. The engine holds no
// state between calls beyond immutable reference data and policy constants,
// performs no I/O, and never mutates its arguments. Missing external data
// (absent prices, empty histories, zero headlines) degrades to documented
// neutral defaults instead of errors.
package engine

import "github.com/income-strategy/engine/internal/model"

// Engine evaluates a portfolio over the fixed set of tracked tickers.
type Engine struct {
	tickers []string
	info    map[string]model.TickerInfo
	policy  Policy
}

// New creates an Engine for the given ticker set. The ticker order fixes the
// iteration order of every per-ticker evaluation, which keeps outputs
// deterministic across calls.
func New(tickers []string, info map[string]model.TickerInfo, policy Policy) *Engine {
	return &Engine{
		tickers: tickers,
		info:    info,
		policy:  policy,
	}
}

// Default creates an Engine over the built-in tracked ticker catalog with the
// canonical policy constants.
func Default() *Engine {
	return New(model.Tickers, model.TickerCatalog, DefaultPolicy())
}

// Policy returns the engine's strategy constants.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Tickers returns the tracked ticker set in evaluation order.
func (e *Engine) Tickers() []string {
	out := make([]string, len(e.tickers))
	copy(out, e.tickers)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
