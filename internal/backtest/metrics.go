package backtest

import (
	"math"

	"stock-backtest/internal/indicator"
	"stock-backtest/internal/model"
)

const tradingDaysPerYear = 252

// pairRoundTrips matches each BUY with the next SELL. A trailing open BUY is ignored.
func pairRoundTrips(trades []model.Trade) []RoundTrip {
	out := make([]RoundTrip, 0, len(trades)/2)
	var open *model.Trade
	for i := range trades {
		tr := trades[i]
		switch tr.Side {
		case model.SideBuy:
			open = &trades[i]
		case model.SideSell:
			if open == nil {
				continue
			}
			profit := tr.Total - open.Total
			out = append(out, RoundTrip{
				Buy:           *open,
				Sell:          tr,
				Profit:        profit,
				ReturnPercent: profit / open.Total * 100,
			})
			open = nil
		}
	}
	return out
}

// winRate is the percentage of round trips whose proceeds exceeded their cost.
func winRate(trips []RoundTrip) float64 {
	if len(trips) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trips {
		if t.Sell.Total > t.Buy.Total {
			wins++
		}
	}
	return float64(wins) / float64(len(trips)) * 100
}

func avgTradeReturn(trips []RoundTrip) float64 {
	if len(trips) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range trips {
		sum += t.ReturnPercent
	}
	return sum / float64(len(trips))
}

// dailyReturns are bar-over-bar percentage changes of the equity curve.
func dailyReturns(equity []EquityPoint) []float64 {
	if len(equity) < 2 {
		return nil
	}
	out := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Equity
		if prev == 0 {
			continue
		}
		out = append(out, (equity[i].Equity-prev)/prev*100)
	}
	return out
}

// sharpeRatio is mean/stddev of daily returns annualized by sqrt(252);
// 0 with fewer than two returns or zero deviation.
func sharpeRatio(returns []float64) float64 {
	mean, sd, ok := indicator.MeanStdDev(returns)
	if !ok || sd == 0 {
		return 0
	}
	return mean / sd * math.Sqrt(tradingDaysPerYear)
}

// maxDrawdown is the largest peak-to-trough decline of the equity curve, in percent.
func maxDrawdown(equity []EquityPoint) float64 {
	peak := 0.0
	worst := 0.0
	for _, p := range equity {
		if p.Equity > peak {
			peak = p.Equity
		}
		if peak > 0 {
			if dd := (peak - p.Equity) / peak * 100; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}
