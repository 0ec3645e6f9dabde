package strategy

import (
	"stock-backtest/internal/indicator"
	"stock-backtest/internal/model"
)

// Momentum follows the trailing percentage change over Window bars.
// Threshold is in percent and applies symmetrically.
type Momentum struct {
	Window    int
	Threshold float64
}

func (s *Momentum) Name() string { return "Momentum Strategy" }
func (s *Momentum) Kind() Kind   { return KindMomentum }
func (s *Momentum) Warmup() int  { return s.Window }

func (s *Momentum) SignalAt(bars []model.PriceBar, i int) model.Signal {
	if !inRange(bars, i) {
		return model.SignalHold
	}
	mom, err := indicator.MomentumAt(closesUpTo(bars, i), s.Window, i)
	if err != nil {
		return model.SignalHold
	}
	switch {
	case mom > s.Threshold:
		return model.SignalBuy
	case mom < -s.Threshold:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}
