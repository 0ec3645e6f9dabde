package main

import (
	"stock-backtest/internal/report"
	"stock-backtest/internal/strategy"

	"github.com/spf13/cobra"
)

func strategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the built-in strategies and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMarkdown(cmd, report.StrategiesMarkdown(strategy.Describe()))
		},
	}
}
