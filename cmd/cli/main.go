// stock-backtest - backtest, score and track stock positions from the terminal
package main

import (
	"fmt"
	"os"
	"strings"

	"stock-backtest/internal/config"
	"stock-backtest/internal/report"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	plain   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stock-backtest",
		Short: "Backtest trading strategies and score stocks",
		Long: `stock-backtest runs rule-based trading strategies over daily price history,
scores symbols with a BUY/SELL/HOLD recommendation, and replays portfolio trades.

Price history is read from JSON or CSV files with date/open/high/low/close/volume.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to YAML config (defaults built in)")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Print raw markdown instead of styled output")

	rootCmd.AddCommand(backtestCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(recommendCmd())
	rootCmd.AddCommand(rankCmd())
	rootCmd.AddCommand(strategiesCmd())
	rootCmd.AddCommand(portfolioCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

// printMarkdown renders md to the command's output.
func printMarkdown(cmd *cobra.Command, md string) error {
	out, err := report.Render(md, plain)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
