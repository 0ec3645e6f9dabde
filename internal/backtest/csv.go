package backtest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"stock-backtest/internal/model"
)

func WriteTradesCSV(path string, trades []model.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeTradesCSV(f, trades)
}

func WriteEquityCSV(path string, points []EquityPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeEquityCSV(f, points)
}

func writeTradesCSV(out io.Writer, trades []model.Trade) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"date", "symbol", "type", "shares", "price", "total"}); err != nil {
		return err
	}
	for _, t := range trades {
		row := []string{
			fmtDate(t.Date),
			t.Symbol,
			string(t.Side),
			strconv.FormatInt(t.Shares, 10),
			fmtFloat(t.Price),
			fmtFloat(t.Total),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeEquityCSV(out io.Writer, points []EquityPoint) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"index",
		"date",
		"close",
		"signal",
		"executed",
		"cash",
		"shares",
		"equity",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Index),
			fmtDate(p.Date),
			fmtFloat(p.Close),
			string(p.Signal),
			strconv.FormatBool(p.Executed),
			fmtFloat(p.Cash),
			strconv.FormatInt(p.Shares, 10),
			fmtFloat(p.Equity),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
