package report

import (
	"fmt"
	"strings"

	"stock-backtest/internal/advisor"
)

func RecommendationMarkdown(rec *advisor.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", rec.Symbol, rec.Action)
	fmt.Fprintf(&b, "Price %s, confidence %.0f%%, risk %s\n\n", USDFloat(rec.Price), rec.Confidence, rec.RiskLevel)

	fmt.Fprintln(&b, "| Score | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Technical | %.2f |\n", rec.TechnicalScore)
	fmt.Fprintf(&b, "| Fundamental | %.2f |\n", rec.FundamentalScore)
	fmt.Fprintf(&b, "| Sentiment | %.2f |\n", rec.SentimentScore)
	fmt.Fprintf(&b, "| **Composite** | **%.2f** |\n", rec.CompositeScore)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "- Target price: %s\n", USDFloat(rec.TargetPrice))
	fmt.Fprintf(&b, "- Stop loss: %s\n", USDFloat(rec.StopLoss))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "## Reasoning")
	fmt.Fprintln(&b)
	for _, r := range rec.Reasoning {
		fmt.Fprintf(&b, "1. %s\n", r)
	}
	return b.String()
}
