package indicator

// RecentHighAt is the maximum of the window values ending at index i (inclusive).
func RecentHighAt(highs []float64, window, i int) (float64, error) {
	if err := checkPoint(len(highs), window, i, window); err != nil {
		return 0, err
	}
	hi := highs[i-window+1]
	for k := i - window + 2; k <= i; k++ {
		if highs[k] > hi {
			hi = highs[k]
		}
	}
	return hi, nil
}

// RecentLowAt is the minimum of the window values ending at index i (inclusive).
func RecentLowAt(lows []float64, window, i int) (float64, error) {
	if err := checkPoint(len(lows), window, i, window); err != nil {
		return 0, err
	}
	lo := lows[i-window+1]
	for k := i - window + 2; k <= i; k++ {
		if lows[k] < lo {
			lo = lows[k]
		}
	}
	return lo, nil
}

func RecentHigh(highs []float64, window int) []Value {
	return series(len(highs), func(i int) (float64, error) { return RecentHighAt(highs, window, i) })
}

func RecentLow(lows []float64, window int) []Value {
	return series(len(lows), func(i int) (float64, error) { return RecentLowAt(lows, window, i) })
}
