package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/data"
	"stock-backtest/internal/model"

	"github.com/spf13/cobra"
)

func rankCmd() *cobra.Command {
	var dataPaths string

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank symbols by what their history offered",
		Long: `rank computes buy-and-hold and perfect-foresight returns per symbol and
sorts by the latter. Pass comma-separated files or a directory of .json/.csv files.`,
		Example: `  stock-backtest rank --data data/
  stock-backtest rank --data data/AAPL.csv,data/MSFT.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bySymbol := map[string]model.Series{}
			for _, p := range splitPaths(dataPaths) {
				files, err := seriesFiles(p)
				if err != nil {
					return err
				}
				for _, f := range files {
					s, err := data.LoadSeries(f)
					if err != nil {
						return err
					}
					if _, dup := bySymbol[s.Symbol]; dup {
						return fmt.Errorf("%s: duplicate series for %s", f, s.Symbol)
					}
					bySymbol[s.Symbol] = s
				}
			}
			if len(bySymbol) == 0 {
				return fmt.Errorf("no series found in %s", dataPaths)
			}

			out := cmd.OutOrStdout()
			ranked := analysis.RankByPotential(bySymbol)
			fmt.Fprintf(out, "%-4s %-8s %-6s %-12s %-10s %-19s %-10s %-10s\n",
				"rank", "symbol", "bars", "start", "p95-p05", "min/max", "hold%", "oracle%")
			for i, r := range ranked {
				fmt.Fprintf(out, "%-4d %-8s %-6d %-12s %-10.2f %-8.2f/%-10.2f %-10.2f %-10.2f\n",
					i+1,
					r.Symbol,
					r.Count,
					r.Start.Format(model.DateLayout),
					r.SpreadP95P05,
					r.MinClose,
					r.MaxClose,
					r.BuyHoldPercent,
					r.OraclePercent,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataPaths, "data", "d", "", "Comma-separated series files or a directory")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

// seriesFiles expands a directory into its .json and .csv files.
func seriesFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".csv":
			out = append(out, filepath.Join(path, e.Name()))
		}
	}
	return out, nil
}
