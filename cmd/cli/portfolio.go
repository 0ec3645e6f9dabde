package main

import (
	"fmt"
	"time"

	"stock-backtest/internal/config"
	"stock-backtest/internal/model"
	"stock-backtest/internal/portfolio"
	"stock-backtest/internal/report"

	"github.com/spf13/cobra"
)

func portfolioCmd() *cobra.Command {
	var (
		scriptPath string
		cash       float64
	)

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Replay a trade script into a ledger and print the holdings",
		Long: `portfolio replays the BUY/SELL entries of a YAML trade script in order,
marks holdings to the script's prices and prints the resulting portfolio.
A rejected trade stops the replay.`,
		Example: `  stock-backtest portfolio --trades examples/trades.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			script, err := config.LoadTradeScript(scriptPath)
			if err != nil {
				return err
			}

			initial := cfg.Portfolio.InitialCash
			if script.InitialCash > 0 {
				initial = script.InitialCash
			}
			if cmd.Flags().Changed("cash") {
				initial = cash
			}

			// Journal entries carry the script's dates.
			var tradeDate time.Time
			ledger, err := portfolio.NewLedger(initial, portfolio.WithClock(func() time.Time {
				if tradeDate.IsZero() {
					return time.Now()
				}
				return tradeDate
			}))
			if err != nil {
				return err
			}

			for i, t := range script.Trades {
				if tradeDate, err = t.When(); err != nil {
					return fmt.Errorf("trade %d: %w", i+1, err)
				}
				if t.Side == model.SideBuy {
					err = ledger.Buy(t.Symbol, t.Shares, t.Price)
				} else {
					err = ledger.Sell(t.Symbol, t.Shares, t.Price)
				}
				if err != nil {
					return fmt.Errorf("trade %d (%s %d %s @ %.2f): %w", i+1, t.Side, t.Shares, t.Symbol, t.Price, err)
				}
			}
			if err := ledger.UpdatePrices(script.Prices); err != nil {
				return err
			}

			md := report.PortfolioMarkdown(ledger.Snapshot()) + "\n" + report.TradesMarkdown(ledger.Trades())
			return printMarkdown(cmd, md)
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "trades", "t", "", "YAML trade script")
	cmd.Flags().Float64Var(&cash, "cash", config.DefaultPortfolioCash, "Initial cash (overrides the script)")
	_ = cmd.MarkFlagRequired("trades")
	return cmd
}
