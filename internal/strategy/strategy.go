package strategy

import "stock-backtest/internal/model"

// Kind identifies one of the closed set of strategy variants.
type Kind string

const (
	KindMACrossover  Kind = "ma_crossover"
	KindRSIReversion Kind = "rsi_reversion"
	KindMomentum     Kind = "momentum"
	KindBreakout     Kind = "breakout"
)

// Strategy maps a price history to an action for one bar.
//
// SignalAt must only read bars[0..i]. The backtest engine passes bars
// truncated at i, so reading past i is also impossible in practice.
// Warmup is the first index at which SignalAt can return something other than HOLD.
type Strategy interface {
	Name() string
	Kind() Kind
	Warmup() int
	SignalAt(bars []model.PriceBar, i int) model.Signal
}

func closesUpTo(bars []model.PriceBar, i int) []float64 {
	out := make([]float64, i+1)
	for k := 0; k <= i; k++ {
		out[k] = bars[k].Close
	}
	return out
}

func inRange(bars []model.PriceBar, i int) bool {
	return i >= 0 && i < len(bars)
}
