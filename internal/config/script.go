package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"stock-backtest/internal/model"

	"gopkg.in/yaml.v3"
)

// TradeScript is a YAML list of ledger operations replayed by the CLI.
//
//	initial_cash: 100000
//	trades:
//	  - {date: 2024-01-02, type: BUY, symbol: AAPL, shares: 50, price: 175}
//	prices: {AAPL: 182.5}
type TradeScript struct {
	InitialCash float64            `yaml:"initial_cash"`
	Trades      []ScriptTrade      `yaml:"trades"`
	Prices      map[string]float64 `yaml:"prices"`
}

type ScriptTrade struct {
	Date   string     `yaml:"date"`
	Side   model.Side `yaml:"type"`
	Symbol string     `yaml:"symbol"`
	Shares int64      `yaml:"shares"`
	Price  float64    `yaml:"price"`
}

// When returns the trade date, or the zero time if none was given.
func (t ScriptTrade) When() (time.Time, error) {
	if t.Date == "" {
		return time.Time{}, nil
	}
	return model.ParseDate(t.Date)
}

func LoadTradeScript(path string) (*TradeScript, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s TradeScript
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	for i := range s.Trades {
		tr := &s.Trades[i]
		tr.Side = model.Side(strings.ToUpper(string(tr.Side)))
		if tr.Side != model.SideBuy && tr.Side != model.SideSell {
			return nil, fmt.Errorf("trade %d: type must be BUY or SELL, got %q", i+1, tr.Side)
		}
		if _, err := tr.When(); err != nil {
			return nil, fmt.Errorf("trade %d: %w", i+1, err)
		}
	}
	return &s, nil
}
