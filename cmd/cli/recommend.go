package main

import (
	"strings"

	"stock-backtest/internal/advisor"
	"stock-backtest/internal/data"
	"stock-backtest/internal/model"
	"stock-backtest/internal/report"

	"github.com/spf13/cobra"
)

func recommendCmd() *cobra.Command {
	var (
		dataPath  string
		quotePath string
		symbol    string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Score a symbol and print a BUY/SELL/HOLD recommendation",
		Example: `  stock-backtest recommend --data data/AAPL.csv
  stock-backtest recommend --data data/AAPL.csv --quote data/AAPL.quote.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := data.LoadSeries(dataPath)
			if err != nil {
				return err
			}
			if symbol != "" {
				series.Symbol = strings.ToUpper(symbol)
			}

			var q model.Quote
			if quotePath != "" {
				q, err = data.LoadQuoteJSON(quotePath)
			} else {
				q, err = data.QuoteFromSeries(series)
			}
			if err != nil {
				return err
			}
			if q.Symbol == "" {
				q.Symbol = series.Symbol
			}

			rec, err := advisor.Recommend(q, series)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, report.RecommendationMarkdown(rec))
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Price history file (.json or .csv)")
	cmd.Flags().StringVarP(&quotePath, "quote", "q", "", "Latest quote JSON (default: derived from the last bars)")
	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Ticker to report under (default: from the data file name)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
