package strategy

import (
	"stock-backtest/internal/indicator"
	"stock-backtest/internal/model"
)

// MACrossover buys when the short SMA moves above the long SMA and sells
// when it moves back to or below it. Only the bar where the ordering changes fires.
type MACrossover struct {
	Short int
	Long  int
}

func (s *MACrossover) Name() string { return "Moving Average Crossover" }
func (s *MACrossover) Kind() Kind   { return KindMACrossover }

// Warmup needs the long SMA on both i-1 and i.
func (s *MACrossover) Warmup() int { return s.Long }

func (s *MACrossover) SignalAt(bars []model.PriceBar, i int) model.Signal {
	if !inRange(bars, i) || i < 1 {
		return model.SignalHold
	}
	closes := closesUpTo(bars, i)
	prevShort, err1 := indicator.SMAAt(closes, s.Short, i-1)
	prevLong, err2 := indicator.SMAAt(closes, s.Long, i-1)
	curShort, err3 := indicator.SMAAt(closes, s.Short, i)
	curLong, err4 := indicator.SMAAt(closes, s.Long, i)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return model.SignalHold
	}

	wasAbove := prevShort > prevLong
	isAbove := curShort > curLong
	switch {
	case !wasAbove && isAbove:
		return model.SignalBuy
	case wasAbove && !isAbove:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}
