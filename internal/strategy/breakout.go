package strategy

import (
	"stock-backtest/internal/indicator"
	"stock-backtest/internal/model"
)

// Breakout compares the close with the high/low of the Window bars before it.
type Breakout struct {
	Window int
}

func (s *Breakout) Name() string { return "Breakout Strategy" }
func (s *Breakout) Kind() Kind   { return KindBreakout }
func (s *Breakout) Warmup() int  { return s.Window }

func (s *Breakout) SignalAt(bars []model.PriceBar, i int) model.Signal {
	if !inRange(bars, i) || i < 1 {
		return model.SignalHold
	}
	highs := make([]float64, i)
	lows := make([]float64, i)
	for k := 0; k < i; k++ {
		highs[k] = bars[k].High
		lows[k] = bars[k].Low
	}
	priorHigh, err1 := indicator.RecentHighAt(highs, s.Window, i-1)
	priorLow, err2 := indicator.RecentLowAt(lows, s.Window, i-1)
	if err1 != nil || err2 != nil {
		return model.SignalHold
	}
	c := bars[i].Close
	switch {
	case c > priorHigh:
		return model.SignalBuy
	case c < priorLow:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}
