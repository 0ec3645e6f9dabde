package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// writeSeriesCSV writes flat daily bars starting 2024-01-01.
func writeSeriesCSV(t *testing.T, dir, name string, closes ...float64) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Date,Open,High,Low,Close,Volume\n")
	for i, c := range closes {
		fmt.Fprintf(&b, "2024-%02d-%02d,%g,%g,%g,%g,1000\n", 1+i/28, 1+i%28, c, c, c, c)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func risingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	plain = true
	cfgPath = ""
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBacktestCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeSeriesCSV(t, dir, "AAPL.csv", risingCloses(60)...)
	tradesOut := filepath.Join(dir, "out", "trades.csv")
	equityOut := filepath.Join(dir, "out", "equity.csv")

	out, err := run(t, backtestCmd(), "--data", data, "--strategy", "momentum",
		"--trades", tradesOut, "--equity", equityOut)
	if err != nil {
		t.Fatalf("backtest: %v\n%s", err, out)
	}
	for _, want := range []string{"# Backtest: Momentum Strategy on AAPL", "| 2024-01-11 | BUY | AAPL | 90 | $110.00 |", "Wrote 1 trades"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	raw, err := os.ReadFile(equityOut)
	if err != nil {
		t.Fatalf("equity csv: %v", err)
	}
	if lines := strings.Count(strings.TrimSpace(string(raw)), "\n"); lines != 50 {
		t.Fatalf("equity rows = %d, want 50", lines)
	}
	if _, err := os.Stat(tradesOut); err != nil {
		t.Fatalf("trades csv: %v", err)
	}
}

func TestBacktestCommandRejects(t *testing.T) {
	dir := t.TempDir()
	data := writeSeriesCSV(t, dir, "AAPL.csv", risingCloses(30)...)

	if _, err := run(t, backtestCmd(), "--data", data, "--strategy", "astrology"); err == nil {
		t.Fatal("unknown strategy accepted")
	}
	if _, err := run(t, backtestCmd(), "--data", data, "--param", "window=abc"); err == nil ||
		!strings.Contains(err.Error(), "must be a number") {
		t.Fatalf("bad param: %v", err)
	}
	if _, err := run(t, backtestCmd()); err == nil {
		t.Fatal("missing --data accepted")
	}
}

func TestCompareAndRankCommands(t *testing.T) {
	dir := t.TempDir()
	writeSeriesCSV(t, dir, "UP.csv", risingCloses(80)...)
	flat := make([]float64, 80)
	for i := range flat {
		flat[i] = 50
	}
	writeSeriesCSV(t, dir, "FLAT.csv", flat...)

	out, err := run(t, compareCmd(), "--data", filepath.Join(dir, "UP.csv"), "--strategies", "momentum,breakout")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(out, "Momentum Strategy") || !strings.Contains(out, "Breakout Strategy") {
		t.Fatalf("compare output:\n%s", out)
	}

	out, err = run(t, rankCmd(), "--data", dir)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	up := strings.Index(out, "UP")
	fl := strings.Index(out, "FLAT")
	if up < 0 || fl < 0 || up > fl {
		t.Fatalf("rank order:\n%s", out)
	}
}

func TestRecommendAndStrategiesCommands(t *testing.T) {
	dir := t.TempDir()
	data := writeSeriesCSV(t, dir, "MSFT.csv", risingCloses(120)...)

	out, err := run(t, recommendCmd(), "--data", data)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if !strings.Contains(out, "MSFT") || !strings.Contains(out, "Trend:") {
		t.Fatalf("recommend output:\n%s", out)
	}

	out, err = run(t, recommendCmd(), "--data", data, "--symbol", "msft.x")
	if err != nil {
		t.Fatalf("recommend --symbol: %v", err)
	}
	if !strings.Contains(out, "# MSFT.X:") {
		t.Fatalf("recommend --symbol output:\n%s", out)
	}

	out, err = run(t, strategiesCmd())
	if err != nil {
		t.Fatalf("strategies: %v", err)
	}
	for _, want := range []string{"Moving Average Crossover", "RSI Mean Reversion", "Momentum Strategy", "Breakout Strategy"} {
		if !strings.Contains(out, want) {
			t.Errorf("strategies missing %q", want)
		}
	}
}

func TestPortfolioCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "trades.yaml")
	body := `initial_cash: 10000
trades:
  - {date: 2024-01-02, type: buy, symbol: aapl, shares: 10, price: 100}
  - {date: 2024-01-05, type: SELL, symbol: AAPL, shares: 4, price: 120}
prices:
  AAPL: 130
`
	if err := os.WriteFile(script, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, portfolioCmd(), "--trades", script)
	if err != nil {
		t.Fatalf("portfolio: %v\n%s", err, out)
	}
	for _, want := range []string{"Cash: $9,480.00", "Total value: $10,260.00", "| 2024-01-05 | SELL | AAPL | 4 |"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("trades:\n  - {type: SELL, symbol: MSFT, shares: 1, price: 10}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, portfolioCmd(), "--trades", bad); err == nil || !strings.Contains(err.Error(), "no such holding") {
		t.Fatalf("want no such holding, got %v", err)
	}
}
