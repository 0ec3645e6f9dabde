package data

import (
	"stock-backtest/internal/indicator"
	"stock-backtest/internal/model"
)

const (
	yearBars     = 252
	avgVolumeLen = 20
)

// QuoteFromSeries derives a quote from the last bars when no live quote is
// available. The previous close falls back to the last open for a single bar.
// AvgVolume stays zero until 20 bars exist.
func QuoteFromSeries(s model.Series) (model.Quote, error) {
	if err := s.Validate(); err != nil {
		return model.Quote{}, err
	}
	last := s.Last()
	i := s.Len() - 1

	prev := last.Open
	if i > 0 {
		prev = s.Bars[i-1].Close
	}

	q := model.Quote{
		Symbol:        s.Symbol,
		Price:         last.Close,
		Open:          last.Open,
		High:          last.High,
		Low:           last.Low,
		PreviousClose: prev,
		Volume:        last.Volume,
	}
	if prev > 0 {
		q.Change = last.Close - prev
		q.ChangePercent = q.Change / prev * 100
	}

	w := min(yearBars, s.Len())
	q.FiftyTwoWeekHigh, _ = indicator.RecentHighAt(s.Highs(), w, i)
	q.FiftyTwoWeekLow, _ = indicator.RecentLowAt(s.Lows(), w, i)
	if avg, err := indicator.SMAAt(s.Volumes(), avgVolumeLen, i); err == nil {
		q.AvgVolume = avg
	}
	return q, nil
}
