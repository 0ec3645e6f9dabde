package report

import (
	"fmt"
	"strings"

	"stock-backtest/internal/portfolio"
)

func PortfolioMarkdown(snap portfolio.Snapshot) string {
	var b strings.Builder
	fmt.Fprintln(&b, "# Portfolio")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "- Cash: %s\n", USD(snap.Cash))
	fmt.Fprintf(&b, "- Holdings value: %s\n", USD(snap.HoldingsValue))
	fmt.Fprintf(&b, "- Total value: %s\n", USD(snap.TotalValue))
	fmt.Fprintf(&b, "- Unrealized gain/loss: %s (%s)\n", SignedUSD(snap.GainLoss), SignedPercent(snap.GainLossPercent))
	fmt.Fprintf(&b, "- Trades: %d\n", snap.TradeCount)
	fmt.Fprintln(&b)

	if len(snap.Holdings) == 0 {
		fmt.Fprintln(&b, "No holdings.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Symbol | Shares | Avg price | Price | Value | Gain/loss |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, h := range snap.Holdings {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s (%s) |\n",
			h.Symbol,
			h.Shares,
			USD(h.AveragePrice),
			USD(h.CurrentPrice),
			USD(h.TotalValue),
			SignedUSD(h.GainLoss),
			SignedPercent(h.GainLossPercent),
		)
	}
	return b.String()
}
