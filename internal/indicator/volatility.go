package indicator

import (
	"fmt"
	"math"

	"stock-backtest/internal/model"
)

// ReturnsStdDevAt is the sample standard deviation, in percent, of the last
// window daily close-to-close returns ending at index i. Needs window+1 bars
// and at least two returns.
func ReturnsStdDevAt(closes []float64, window, i int) (float64, error) {
	if err := checkPoint(len(closes), window, i, window+1); err != nil {
		return 0, err
	}
	rets := make([]float64, 0, window)
	for k := i - window + 1; k <= i; k++ {
		if closes[k-1] == 0 {
			continue
		}
		rets = append(rets, (closes[k]-closes[k-1])/closes[k-1]*100)
	}
	_, sd, ok := MeanStdDev(rets)
	if !ok {
		return 0, fmt.Errorf("%w: fewer than 2 returns", model.ErrInsufficientData)
	}
	return sd, nil
}

// ATRAt is the simple average of the last window true ranges ending at index i.
func ATRAt(highs, lows, closes []float64, window, i int) (float64, error) {
	n := len(closes)
	if len(highs) != n || len(lows) != n {
		return 0, fmt.Errorf("%w: highs/lows/closes length mismatch", ErrOutOfRange)
	}
	if err := checkPoint(n, window, i, window+1); err != nil {
		return 0, err
	}
	sum := 0.0
	for k := i - window + 1; k <= i; k++ {
		prev := closes[k-1]
		tr := math.Max(highs[k]-lows[k], math.Max(math.Abs(highs[k]-prev), math.Abs(lows[k]-prev)))
		sum += tr
	}
	return sum / float64(window), nil
}

// MeanStdDev returns the mean and sample standard deviation of xs.
// ok is false when fewer than two values are supplied.
func MeanStdDev(xs []float64) (mean, sd float64, ok bool) {
	if len(xs) < 2 {
		return 0, 0, false
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1)), true
}

// ReturnsStdDev evaluates ReturnsStdDevAt at every index.
func ReturnsStdDev(closes []float64, window int) []Value {
	return series(len(closes), func(i int) (float64, error) {
		return ReturnsStdDevAt(closes, window, i)
	})
}

// ATR evaluates ATRAt at every index. Mismatched inputs yield no values.
func ATR(highs, lows, closes []float64, window int) []Value {
	return series(len(closes), func(i int) (float64, error) {
		return ATRAt(highs, lows, closes, window, i)
	})
}
