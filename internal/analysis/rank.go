package analysis

import (
	"sort"

	"stock-backtest/internal/backtest"
	"stock-backtest/internal/model"
)

type RankedSummary struct {
	Rank int `json:"rank"`
	backtest.Summary
}

// RankByReturn orders summaries by total return percent, best first.
// Ties keep input order.
func RankByReturn(summaries []backtest.Summary) []RankedSummary {
	out := make([]RankedSummary, len(summaries))
	for i, s := range summaries {
		out[i] = RankedSummary{Summary: s}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalReturnPercent > out[j].TotalReturnPercent
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// RankByPotential computes potentials per symbol and sorts descending by
// OraclePercent, breaking ties by symbol.
func RankByPotential(bySymbol map[string]model.Series) []SeriesPotential {
	out := make([]SeriesPotential, 0, len(bySymbol))
	for symbol, s := range bySymbol {
		p := ComputePotential(s)
		if p.Symbol == "" {
			p.Symbol = symbol
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OraclePercent != out[j].OraclePercent {
			return out[i].OraclePercent > out[j].OraclePercent
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
