package models

import (
	"stock-backtest/internal/analysis"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/indicator"
	"stock-backtest/internal/model"
	"stock-backtest/internal/portfolio"
)

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	ID         string                   `json:"id,omitempty"`
	Status     string                   `json:"status"`
	Symbol     string                   `json:"symbol"`
	Summary    backtest.Summary         `json:"summary"`
	Benchmark  analysis.SeriesPotential `json:"benchmark"`
	Trades     []model.Trade            `json:"trades,omitempty"`
	RoundTrips []backtest.RoundTrip     `json:"round_trips,omitempty"`
	Equity     []backtest.EquityPoint   `json:"equity,omitempty"`
}

// TradesResponse is the stored trade sequence of an earlier run.
type TradesResponse struct {
	ID     string        `json:"id"`
	Symbol string        `json:"symbol"`
	Count  int           `json:"count"`
	Trades []model.Trade `json:"trades"`
}

// CompareBacktestResponse represents the response from a comparison
type CompareBacktestResponse struct {
	Symbol     string                   `json:"symbol"`
	Benchmark  analysis.SeriesPotential `json:"benchmark"`
	Comparison []ComparisonResult       `json:"comparison"`
	Skipped    []SkippedVariation       `json:"skipped,omitempty"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Rank    int              `json:"rank"`
	Name    string           `json:"name"`
	ID      string           `json:"id"`
	Summary backtest.Summary `json:"summary"`
}

// SkippedVariation is a variation that could not be run.
type SkippedVariation struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// IndicatorsResponse holds one value per bar; null where the window is not filled.
type IndicatorsResponse struct {
	Symbol     string            `json:"symbol"`
	Window     int               `json:"window"`
	RSIWindow  int               `json:"rsi_window"`
	Dates      []string          `json:"dates"`
	Close      []float64         `json:"close"`
	SMA        []indicator.Value `json:"sma"`
	EMA        []indicator.Value `json:"ema"`
	RSI        []indicator.Value `json:"rsi"`
	Momentum   []indicator.Value `json:"momentum"`
	RecentHigh []indicator.Value `json:"recent_high"`
	RecentLow  []indicator.Value `json:"recent_low"`
	Volatility []indicator.Value `json:"volatility"`
	ATR        []indicator.Value `json:"atr"`
}

// RankResponse represents the response from ranking symbols
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked symbol
type Ranking struct {
	Rank int `json:"rank"`
	analysis.SeriesPotential
}

// PortfolioResponse is a ledger snapshot under its ID.
type PortfolioResponse struct {
	ID string `json:"id"`
	portfolio.Snapshot
}

// PortfolioTradesResponse lists a ledger's journal.
type PortfolioTradesResponse struct {
	ID     string        `json:"id"`
	Count  int           `json:"count"`
	Trades []model.Trade `json:"trades"`
}

// StrategyPreset is a named strategy file shipped with the server.
type StrategyPreset struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Strategy string         `json:"strategy"`
	Params   map[string]any `json:"params,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
