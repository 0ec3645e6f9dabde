package indicator

// RSIAt is Wilder's relative strength index at index i.
// The first value needs window+1 bars (window price changes); later values
// apply Wilder smoothing to the averages. RSI is 100 when the average loss is 0.
func RSIAt(closes []float64, window, i int) (float64, error) {
	if err := checkPoint(len(closes), window, i, window+1); err != nil {
		return 0, err
	}
	avgGain, avgLoss := seedRSI(closes, window)
	for k := window + 1; k <= i; k++ {
		avgGain, avgLoss = smoothRSI(avgGain, avgLoss, closes[k]-closes[k-1], window)
	}
	return rsiFrom(avgGain, avgLoss), nil
}

// RSI computes Wilder's RSI at every index in a single pass.
func RSI(closes []float64, window int) []Value {
	out := make([]Value, len(closes))
	if window <= 0 || len(closes) < window+1 {
		return out
	}
	avgGain, avgLoss := seedRSI(closes, window)
	out[window] = Value{V: rsiFrom(avgGain, avgLoss), Valid: true}
	for k := window + 1; k < len(closes); k++ {
		avgGain, avgLoss = smoothRSI(avgGain, avgLoss, closes[k]-closes[k-1], window)
		out[k] = Value{V: rsiFrom(avgGain, avgLoss), Valid: true}
	}
	return out
}

func seedRSI(closes []float64, window int) (avgGain, avgLoss float64) {
	for k := 1; k <= window; k++ {
		d := closes[k] - closes[k-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	return avgGain / float64(window), avgLoss / float64(window)
}

func smoothRSI(avgGain, avgLoss, change float64, window int) (float64, float64) {
	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}
	w := float64(window)
	return (avgGain*(w-1) + gain) / w, (avgLoss*(w-1) + loss) / w
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
