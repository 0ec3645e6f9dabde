package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/model"
	"stock-backtest/internal/report"
	"stock-backtest/internal/strategy"

	"github.com/spf13/cobra"
)

func backtestCmd() *cobra.Command {
	var (
		dataPath  string
		stratName string
		params    map[string]string
		capital   float64
		lookback  int
		tradesOut string
		equityOut string
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run one strategy over a price history",
		Example: `  stock-backtest backtest --data data/AAPL.csv --strategy momentum
  stock-backtest backtest --data data/AAPL.json --config examples/config.yaml --trades results/trades.csv
  stock-backtest backtest --data data/AAPL.csv --strategy ma_crossover --param short_window=10 --param long_window=30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if stratName != "" && stratName != cfg.Strategy.Name {
				cfg.Strategy = config.StrategyConfig{Name: stratName}
			}
			overrides, err := parseParams(params)
			if err != nil {
				return err
			}
			cfg.Strategy = config.MergeStrategy(cfg.Strategy, config.StrategyConfig{Params: overrides})
			if cmd.Flags().Changed("capital") {
				cfg.Backtest.InitialCapital = capital
			}
			if cmd.Flags().Changed("lookback") {
				cfg.Backtest.LookbackDays = lookback
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			strat, err := cfg.BuildStrategy()
			if err != nil {
				return err
			}

			series, err := loadWindow(dataPath, cfg.Backtest.LookbackDays)
			if err != nil {
				return err
			}

			res, err := backtest.New().Run(series, strat, cfg.Backtest.InitialCapital)
			if err != nil {
				return err
			}

			if tradesOut != "" {
				if err := ensureDir(tradesOut); err != nil {
					return err
				}
				if err := backtest.WriteTradesCSV(tradesOut, res.Trades); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d trades to %s\n", len(res.Trades), tradesOut)
			}
			if equityOut != "" {
				if err := ensureDir(equityOut); err != nil {
					return err
				}
				if err := backtest.WriteEquityCSV(equityOut, res.Equity); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(res.Equity), equityOut)
			}

			return printMarkdown(cmd, report.BacktestMarkdown(series.Symbol, res))
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Price history file (.json or .csv)")
	cmd.Flags().StringVarP(&stratName, "strategy", "s", "", "Strategy key, e.g. momentum, ma_crossover, rsi_reversion, breakout")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "Strategy parameter override, key=value (repeatable)")
	cmd.Flags().Float64Var(&capital, "capital", config.DefaultInitialCapital, "Initial capital")
	cmd.Flags().IntVar(&lookback, "lookback", 0, "Use only the trailing N bars (0 = all)")
	cmd.Flags().StringVar(&tradesOut, "trades", "", "Write executed trades to this CSV")
	cmd.Flags().StringVar(&equityOut, "equity", "", "Write the per-bar equity curve to this CSV")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func compareCmd() *cobra.Command {
	var (
		dataPath string
		names    []string
		capital  float64
		lookback int
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run several strategies over the same history and rank them",
		Example: `  stock-backtest compare --data data/AAPL.csv
  stock-backtest compare --data data/AAPL.csv --strategies momentum,breakout --lookback 180`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("capital") {
				cfg.Backtest.InitialCapital = capital
			}
			if cmd.Flags().Changed("lookback") {
				cfg.Backtest.LookbackDays = lookback
			}

			var strats []strategy.Strategy
			if len(names) == 0 {
				strats = strategy.All()
			}
			for _, n := range names {
				s, err := strategy.New(n, nil)
				if err != nil {
					return err
				}
				strats = append(strats, s)
			}

			series, err := loadWindow(dataPath, cfg.Backtest.LookbackDays)
			if err != nil {
				return err
			}
			results, err := backtest.New().Compare(series, strats, cfg.Backtest.InitialCapital)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, report.CompareMarkdown(series.Symbol, results, analysis.ComputePotential(series)))
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Price history file (.json or .csv)")
	cmd.Flags().StringSliceVar(&names, "strategies", nil, "Strategies to compare (default: all)")
	cmd.Flags().Float64Var(&capital, "capital", config.DefaultInitialCapital, "Initial capital")
	cmd.Flags().IntVar(&lookback, "lookback", 0, "Use only the trailing N bars (0 = all)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func loadWindow(path string, lookback int) (model.Series, error) {
	series, err := data.LoadSeries(path)
	if err != nil {
		return model.Series{}, err
	}
	return series.Window(lookback), nil
}

// parseParams turns key=value flags into numeric strategy params.
func parseParams(raw map[string]string) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("--param %s=%s: value must be a number", k, v)
		}
		out[k] = f
	}
	return out, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
