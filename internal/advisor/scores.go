package advisor

import "math"

const (
	technicalWeight   = 0.5
	fundamentalWeight = 0.25
	sentimentWeight   = 0.25

	largeCap = 200e9
	smallCap = 2e9
)

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func above(a, b float64) float64 {
	if a > b {
		return 1
	}
	return -1
}

// trendPart rewards price above both averages and the short average above the long.
func trendPart(in inputs) float64 {
	t := 0.0
	if in.sma20.Valid {
		t += 10 * above(in.price, in.sma20.V)
	}
	if in.sma50.Valid {
		t += 10 * above(in.price, in.sma50.V)
	}
	if in.sma20.Valid && in.sma50.Valid {
		t += 5 * above(in.sma20.V, in.sma50.V)
	}
	return t
}

// rsiPart peaks at RSI 50 and turns negative past 30/70.
func rsiPart(in inputs) float64 {
	if !in.rsi.Valid {
		return 0
	}
	return 10 - 0.5*math.Abs(in.rsi.V-50)
}

func technicalScore(in inputs) float64 {
	mom := 0.0
	if in.mom20.Valid {
		mom = clamp(1.5*in.mom20.V, -15, 15)
	}
	return clamp(50+trendPart(in)+rsiPart(in)+mom, 0, 100)
}

// rangePosition is where price sits in the 52-week range, 0 at the low and 1 at the high.
func rangePosition(in inputs) (float64, bool) {
	if in.high52 <= in.low52 {
		return 0, false
	}
	return clamp((in.price-in.low52)/(in.high52-in.low52), 0, 1), true
}

func volumeRatio(in inputs) (float64, bool) {
	if !in.avgVolume.Valid || in.avgVolume.V <= 0 {
		return 0, false
	}
	return in.volume / in.avgVolume.V, true
}

func fundamentalScore(in inputs) float64 {
	score := 50.0
	if pos, ok := rangePosition(in); ok {
		score += (0.5 - pos) * 30
	}
	if r, ok := volumeRatio(in); ok {
		score += clamp((r-1)*10, -10, 10)
	}
	switch {
	case in.marketCap >= largeCap:
		score += 5
	case in.marketCap > 0 && in.marketCap < smallCap:
		score -= 5
	}
	return clamp(score, 0, 100)
}

func sentimentScore(in inputs) float64 {
	score := 50 + clamp(2*in.changePercent, -10, 10)
	if in.mom5.Valid {
		score += clamp(3*in.mom5.V, -25, 25)
		if r, ok := volumeRatio(in); ok && r >= 1.5 {
			score += 10 * sign(in.mom5.V)
		}
	}
	return clamp(score, 0, 100)
}

func compositeScore(technical, fundamental, sentiment float64) float64 {
	return technicalWeight*technical + fundamentalWeight*fundamental + sentimentWeight*sentiment
}
