package report

import (
	"fmt"
	"strings"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/model"
)

func period(b *strings.Builder, s backtest.Summary) {
	fmt.Fprintf(b, "Period %s to %s\n\n", s.StartDate.Format(model.DateLayout), s.EndDate.Format(model.DateLayout))
}

// BacktestMarkdown renders one run: summary table then trades.
func BacktestMarkdown(symbol string, res *backtest.Result) string {
	s := res.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "# Backtest: %s on %s\n\n", s.StrategyName, symbol)
	period(&b, s)

	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Initial capital | %s |\n", USDFloat(s.InitialCapital))
	fmt.Fprintf(&b, "| Final value | %s |\n", USDFloat(s.FinalValue))
	fmt.Fprintf(&b, "| Total return | %s (%s) |\n", USDFloat(s.TotalReturn), SignedPercent(s.TotalReturnPercent))
	fmt.Fprintf(&b, "| Trades | %d |\n", s.TradeCount)
	fmt.Fprintf(&b, "| Win rate | %s |\n", Percent(s.WinRate))
	fmt.Fprintf(&b, "| Avg trade return | %s |\n", SignedPercent(s.AvgTradeReturn))
	fmt.Fprintf(&b, "| Sharpe ratio | %.2f |\n", s.SharpeRatio)
	fmt.Fprintf(&b, "| Max drawdown | %s |\n", Percent(s.MaxDrawdown))
	if res.SharesHeld > 0 {
		fmt.Fprintf(&b, "| Open position | %d shares @ %s |\n", res.SharesHeld, USDFloat(res.LastClose))
	}
	b.WriteString("\n")
	b.WriteString(TradesMarkdown(res.Trades))
	return b.String()
}

func TradesMarkdown(trades []model.Trade) string {
	var b strings.Builder
	fmt.Fprintln(&b, "## Trades")
	fmt.Fprintln(&b)
	if len(trades) == 0 {
		fmt.Fprintln(&b, "No trades.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Type | Symbol | Shares | Price | Total |")
	fmt.Fprintln(&b, "|:---|:---:|:---|---:|---:|---:|")
	for _, t := range trades {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s |\n",
			t.Date.Format(model.DateLayout),
			t.Side,
			t.Symbol,
			t.Shares,
			USDFloat(t.Price),
			USDFloat(t.Total),
		)
	}
	return b.String()
}

// CompareMarkdown ranks several runs over one series against its benchmarks.
func CompareMarkdown(symbol string, results []*backtest.Result, pot analysis.SeriesPotential) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Strategy comparison: %s\n\n", symbol)
	if len(results) > 0 {
		period(&b, results[0].Summary)
	}

	summaries := make([]backtest.Summary, len(results))
	for i, r := range results {
		summaries[i] = r.Summary
	}

	fmt.Fprintln(&b, "| # | Strategy | Return | Final value | Trades | Win rate | Sharpe | Max DD |")
	fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|---:|---:|---:|")
	for _, r := range analysis.RankByReturn(summaries) {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %d | %s | %.2f | %s |\n",
			r.Rank,
			r.StrategyName,
			SignedPercent(r.TotalReturnPercent),
			USDFloat(r.FinalValue),
			r.TradeCount,
			Percent(r.WinRate),
			r.SharpeRatio,
			Percent(r.MaxDrawdown),
		)
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "## Benchmarks")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "- Buy and hold: %s\n", SignedPercent(pot.BuyHoldPercent))
	fmt.Fprintf(&b, "- Perfect foresight: %s\n", SignedPercent(pot.OraclePercent))
	fmt.Fprintf(&b, "- Close range: %s to %s (p05-p95 spread %s)\n",
		USDFloat(pot.MinClose), USDFloat(pot.MaxClose), USDFloat(pot.SpreadP95P05))
	return b.String()
}
