package indicator

import (
	"fmt"

	"stock-backtest/internal/model"
)

// MomentumAt is the percentage change from the close window bars before i to the close at i.
func MomentumAt(closes []float64, window, i int) (float64, error) {
	if err := checkPoint(len(closes), window, i, window+1); err != nil {
		return 0, err
	}
	base := closes[i-window]
	if base == 0 {
		return 0, fmt.Errorf("%w: zero close at index %d", model.ErrInsufficientData, i-window)
	}
	return (closes[i] - base) / base * 100, nil
}

func Momentum(closes []float64, window int) []Value {
	return series(len(closes), func(i int) (float64, error) { return MomentumAt(closes, window, i) })
}
