package indicator

// SMAAt is the arithmetic mean of the window closes ending at index i.
func SMAAt(closes []float64, window, i int) (float64, error) {
	if err := checkPoint(len(closes), window, i, window); err != nil {
		return 0, err
	}
	sum := 0.0
	for k := i - window + 1; k <= i; k++ {
		sum += closes[k]
	}
	return sum / float64(window), nil
}

// SMA computes the simple moving average at every index with a rolling sum.
func SMA(closes []float64, window int) []Value {
	out := make([]Value, len(closes))
	if window <= 0 {
		return out
	}
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i+1 >= window {
			out[i] = Value{V: sum / float64(window), Valid: true}
		}
	}
	return out
}

// EMA computes an exponential moving average seeded with the SMA of the
// first window closes; earlier indices have no value.
func EMA(closes []float64, window int) []Value {
	out := make([]Value, len(closes))
	if window <= 0 || len(closes) < window {
		return out
	}
	k := 2.0 / float64(window+1)
	seed, _ := SMAAt(closes, window, window-1)
	out[window-1] = Value{V: seed, Valid: true}
	prev := seed
	for i := window; i < len(closes); i++ {
		prev = closes[i]*k + prev*(1-k)
		out[i] = Value{V: prev, Valid: true}
	}
	return out
}
