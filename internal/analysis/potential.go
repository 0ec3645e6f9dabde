package analysis

import (
	"math"
	"sort"
	"time"

	"stock-backtest/internal/model"
)

// SeriesPotential summarizes what a series offered, independent of any strategy.
// BuyHoldPercent and OraclePercent are the benchmarks a strategy's return is
// read against: holding from first to last close, and a long-only trader who
// knows every next close.
type SeriesPotential struct {
	Symbol string    `json:"symbol"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Count  int       `json:"count"`

	MinClose  float64 `json:"min_close"`
	MaxClose  float64 `json:"max_close"`
	MeanClose float64 `json:"mean_close"`
	P05Close  float64 `json:"p05_close"`
	P95Close  float64 `json:"p95_close"`

	SpreadP95P05 float64 `json:"spread_p95_p05"`

	BuyHoldPercent float64 `json:"buy_hold_percent"`
	OraclePercent  float64 `json:"oracle_percent"`
}

func ComputePotential(series model.Series) SeriesPotential {
	bars := series.Bars
	p := SeriesPotential{Symbol: series.Symbol}
	if len(bars) == 0 {
		return p
	}
	p.Count = len(bars)
	p.Start = bars[0].Date
	p.End = bars[len(bars)-1].Date

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(bars))
	for _, b := range bars {
		v := b.Close
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	p.MinClose = minv
	p.MaxClose = maxv
	p.MeanClose = sum / float64(len(vals))
	p.P05Close = percentileSorted(vals, 0.05)
	p.P95Close = percentileSorted(vals, 0.95)
	p.SpreadP95P05 = p.P95Close - p.P05Close

	first, last := bars[0].Close, bars[len(bars)-1].Close
	if first > 0 {
		p.BuyHoldPercent = (last - first) / first * 100
	}
	p.OraclePercent = oracleReturn(series.Closes())
	return p
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// oracleReturn is the best percent return of an all-in/all-out long-only
// trader with perfect foresight, trading at closes with no costs.
// Two-state DP over wealth: flat (cash) or long (marked at the close).
func oracleReturn(closes []float64) float64 {
	if len(closes) < 2 || closes[0] <= 0 {
		return 0
	}
	flat, long := 1.0, 1.0
	for i := 1; i < len(closes); i++ {
		growth := closes[i] / closes[i-1]
		// Being long through bar i multiplies wealth by growth; switching
		// side at close i-1 is free.
		prevBest := math.Max(flat, long)
		long = prevBest * growth
		flat = prevBest
	}
	return (math.Max(flat, long) - 1) * 100
}
