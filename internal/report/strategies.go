package report

import (
	"fmt"
	"strings"

	"stock-backtest/internal/strategy"
)

func StrategiesMarkdown(infos []strategy.Info) string {
	var b strings.Builder
	fmt.Fprintln(&b, "# Strategies")
	for _, info := range infos {
		fmt.Fprintf(&b, "\n## %s (`%s`)\n\n%s\n\n", info.Name, info.Kind, info.Description)
		fmt.Fprintln(&b, "| Parameter | Type | Default | Description |")
		fmt.Fprintln(&b, "|:---|:---|---:|:---|")
		for _, p := range info.Parameters {
			fmt.Fprintf(&b, "| %s | %s | %v | %s |\n", p.Name, p.Type, p.Default, p.Description)
		}
	}
	return b.String()
}
