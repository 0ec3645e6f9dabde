package backtest

import (
	"time"

	"stock-backtest/internal/model"
)

// EquityPoint is one row of per-bar output.
// This is the primary artifact for "what happened" in a backtest.
type EquityPoint struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`

	Signal model.Signal `json:"signal"`
	// Executed is true when the signal produced a trade on this bar.
	Executed bool `json:"executed"`

	Cash   float64 `json:"cash"`
	Shares int64   `json:"shares"`
	Equity float64 `json:"equity"`
}

// RoundTrip pairs a BUY with the SELL that closed it.
type RoundTrip struct {
	Buy           model.Trade `json:"buy"`
	Sell          model.Trade `json:"sell"`
	Profit        float64     `json:"profit"`
	ReturnPercent float64     `json:"return_percent"`
}

// Summary holds the aggregate performance metrics of one run.
type Summary struct {
	StrategyName       string    `json:"strategy_name"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	InitialCapital     float64   `json:"initial_capital"`
	FinalValue         float64   `json:"final_value"`
	TotalReturn        float64   `json:"total_return"`
	TotalReturnPercent float64   `json:"total_return_percent"`
	TradeCount         int       `json:"trade_count"`
	WinRate            float64   `json:"win_rate"`
	SharpeRatio        float64   `json:"sharpe_ratio"`
	MaxDrawdown        float64   `json:"max_drawdown"`
	AvgTradeReturn     float64   `json:"avg_trade_return"`
}

type Result struct {
	Summary    Summary
	Trades     []model.Trade
	RoundTrips []RoundTrip
	Equity     []EquityPoint

	// Final position state, kept for mark-to-market checks.
	Cash       float64
	SharesHeld int64
	LastClose  float64
}
