package models

import "stock-backtest/internal/model"

// BacktestRequest represents the request body for running a backtest
type BacktestRequest struct {
	Series         model.Series    `json:"series" binding:"required"`
	Config         BacktestConfig  `json:"config" binding:"required"`
	InitialCapital float64         `json:"initial_capital,omitempty"` // default from server config
	Options        BacktestOptions `json:"options,omitempty"`
}

// BacktestConfig names the strategy, either inline or as a preset file.
type BacktestConfig struct {
	StrategyFile string         `json:"strategy_file,omitempty"` // preset ID, e.g. "golden_cross"
	Strategy     StrategyConfig `json:"strategy"`
}

// StrategyConfig defines strategy and its parameters
type StrategyConfig struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// BacktestOptions contains optional backtest parameters
type BacktestOptions struct {
	LookbackDays  int  `json:"lookback_days,omitempty"`  // 0 = all bars
	IncludeTrades bool `json:"include_trades,omitempty"` // default: false
	IncludeEquity bool `json:"include_equity,omitempty"` // default: false
}

// CompareBacktestRequest runs several strategies over one series.
// No variations means every built-in strategy with defaults.
type CompareBacktestRequest struct {
	Series         model.Series        `json:"series" binding:"required"`
	InitialCapital float64             `json:"initial_capital,omitempty"`
	LookbackDays   int                 `json:"lookback_days,omitempty"`
	Variations     []BacktestVariation `json:"variations,omitempty"`
}

// BacktestVariation defines a variation to test
type BacktestVariation struct {
	Name   string         `json:"name" binding:"required"`
	Config BacktestConfig `json:"config" binding:"required"`
}

// RecommendationRequest scores a symbol. Without a quote the latest bars stand in.
type RecommendationRequest struct {
	Quote  *model.Quote `json:"quote,omitempty"`
	Series model.Series `json:"series" binding:"required"`
}

// IndicatorsRequest asks for indicator series over the given bars.
type IndicatorsRequest struct {
	Series    model.Series `json:"series" binding:"required"`
	Window    int          `json:"window,omitempty"`     // default: 20
	RSIWindow int          `json:"rsi_window,omitempty"` // default: 14
}

// RankRequest ranks several symbols by what their history offered.
type RankRequest struct {
	Series []model.Series `json:"series" binding:"required,min=1"`
	Limit  int            `json:"limit,omitempty"` // default: all
}

// CreatePortfolioRequest opens a new ledger.
type CreatePortfolioRequest struct {
	InitialCash *float64 `json:"initial_cash,omitempty"` // default from server config
}

// TradeRequest is a buy or sell against a portfolio.
type TradeRequest struct {
	Symbol string  `json:"symbol"`
	Shares int64   `json:"shares"`
	Price  float64 `json:"price"`
}

// PricesRequest marks holdings to new prices.
type PricesRequest struct {
	Prices map[string]float64 `json:"prices" binding:"required"`
}
