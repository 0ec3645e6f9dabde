package backtest

import (
	"errors"
	"fmt"
	"math"

	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

// maxShares is 2^63, the first share count an int64 cannot hold.
const maxShares = float64(1 << 63)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run simulates an all-in/all-out long-only strategy over the series.
//
// Bars are visited from the strategy's warmup index to the end. A BUY while
// flat spends as many whole shares as cash allows at the close; a SELL while
// invested liquidates at the close. Other signals are no-ops. An open
// position at the end is marked to market, never closed.
func (e *Engine) Run(series model.Series, strat strategy.Strategy, initialCapital float64) (*Result, error) {
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if !(initialCapital > 0) || math.IsInf(initialCapital, 0) {
		return nil, fmt.Errorf("%w: initial capital must be > 0, got %v", model.ErrInvalidCapital, initialCapital)
	}

	bars := series.Bars
	cash := initialCapital
	var shares int64

	start := strat.Warmup()
	if start < 0 {
		start = 0
	}

	trades := make([]model.Trade, 0)
	equity := make([]EquityPoint, 0, len(bars))

	for i := start; i < len(bars); i++ {
		bar := bars[i]
		sig := strat.SignalAt(bars[:i+1], i)
		executed := false

		switch {
		case sig == model.SignalBuy && shares == 0 && cash >= bar.Close:
			q := math.Floor(cash / bar.Close)
			if q >= maxShares {
				return nil, fmt.Errorf("%w: bar %d buy of %v shares exceeds the share limit", model.ErrInvalidCapital, i, q)
			}
			n := int64(q)
			tr, err := model.NewTrade(bar.Date, model.SideBuy, series.Symbol, n, bar.Close)
			if err != nil {
				return nil, fmt.Errorf("bar %d buy: %w", i, err)
			}
			cash -= tr.Total
			shares = n
			trades = append(trades, tr)
			executed = true
		case sig == model.SignalSell && shares > 0:
			tr, err := model.NewTrade(bar.Date, model.SideSell, series.Symbol, shares, bar.Close)
			if err != nil {
				return nil, fmt.Errorf("bar %d sell: %w", i, err)
			}
			cash += tr.Total
			shares = 0
			trades = append(trades, tr)
			executed = true
		}

		equity = append(equity, EquityPoint{
			Index:    i,
			Date:     bar.Date,
			Close:    bar.Close,
			Signal:   sig,
			Executed: executed,
			Cash:     cash,
			Shares:   shares,
			Equity:   cash + float64(shares)*bar.Close,
		})
	}

	last := series.Last()
	finalValue := cash + float64(shares)*last.Close
	totalReturn := finalValue - initialCapital
	trips := pairRoundTrips(trades)

	return &Result{
		Summary: Summary{
			StrategyName:       strat.Name(),
			StartDate:          bars[0].Date,
			EndDate:            last.Date,
			InitialCapital:     initialCapital,
			FinalValue:         finalValue,
			TotalReturn:        totalReturn,
			TotalReturnPercent: totalReturn / initialCapital * 100,
			TradeCount:         len(trades),
			WinRate:            winRate(trips),
			SharpeRatio:        sharpeRatio(dailyReturns(equity)),
			MaxDrawdown:        maxDrawdown(equity),
			AvgTradeReturn:     avgTradeReturn(trips),
		},
		Trades:     trades,
		RoundTrips: trips,
		Equity:     equity,
		Cash:       cash,
		SharesHeld: shares,
		LastClose:  last.Close,
	}, nil
}

// Compare runs each strategy over the same series. Results keep input order.
func (e *Engine) Compare(series model.Series, strats []strategy.Strategy, initialCapital float64) ([]*Result, error) {
	if len(strats) == 0 {
		return nil, errors.New("no strategies to compare")
	}
	out := make([]*Result, 0, len(strats))
	for _, s := range strats {
		res, err := e.Run(series, s, initialCapital)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
		out = append(out, res)
	}
	return out, nil
}
