package strategy

import (
	"stock-backtest/internal/indicator"
	"stock-backtest/internal/model"
)

// RSIReversion buys oversold and sells overbought readings.
type RSIReversion struct {
	Window     int
	Oversold   float64
	Overbought float64
}

func (s *RSIReversion) Name() string { return "RSI Mean Reversion" }
func (s *RSIReversion) Kind() Kind   { return KindRSIReversion }
func (s *RSIReversion) Warmup() int  { return s.Window }

func (s *RSIReversion) SignalAt(bars []model.PriceBar, i int) model.Signal {
	if !inRange(bars, i) {
		return model.SignalHold
	}
	rsi, err := indicator.RSIAt(closesUpTo(bars, i), s.Window, i)
	if err != nil {
		return model.SignalHold
	}
	switch {
	case rsi < s.Oversold:
		return model.SignalBuy
	case rsi > s.Overbought:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}
