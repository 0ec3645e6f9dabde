package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"stock-backtest/internal/model"
)

var csvColumns = []string{"date", "open", "high", "low", "close", "volume"}

// LoadSeriesCSV reads a daily OHLCV file. The symbol comes from the file name.
func LoadSeriesCSV(path string) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Series{}, err
	}
	defer f.Close()

	s, err := DecodeSeriesCSV(f, symbolFromPath(path))
	if err != nil {
		return model.Series{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// DecodeSeriesCSV reads a header row naming date, open, high, low, close and
// volume in any order; other columns are ignored. The result is validated.
func DecodeSeriesCSV(r io.Reader, symbol string) (model.Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return model.Series{}, fmt.Errorf("failed to read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return model.Series{}, fmt.Errorf("missing column %q", col)
		}
	}

	s := model.Series{Symbol: strings.ToUpper(symbol)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Series{}, err
		}
		bar, err := parseBar(rec, idx)
		if err != nil {
			return model.Series{}, fmt.Errorf("line %d: %w", line, err)
		}
		s.Bars = append(s.Bars, bar)
	}
	if err := s.Validate(); err != nil {
		return model.Series{}, err
	}
	return s, nil
}

func parseBar(rec []string, idx map[string]int) (model.PriceBar, error) {
	var b model.PriceBar
	date, err := model.ParseDate(rec[idx["date"]])
	if err != nil {
		return b, err
	}
	b.Date = date

	prices := []struct {
		col string
		dst *float64
	}{
		{"open", &b.Open},
		{"high", &b.High},
		{"low", &b.Low},
		{"close", &b.Close},
	}
	for _, p := range prices {
		v, err := strconv.ParseFloat(rec[idx[p.col]], 64)
		if err != nil {
			return b, fmt.Errorf("%s: %w", p.col, err)
		}
		*p.dst = v
	}

	vol, err := strconv.ParseFloat(rec[idx["volume"]], 64)
	if err != nil {
		return b, fmt.Errorf("volume: %w", err)
	}
	if math.IsNaN(vol) || math.IsInf(vol, 0) {
		return b, fmt.Errorf("volume: not a finite number: %q", rec[idx["volume"]])
	}
	b.Volume = int64(vol)
	return b, nil
}
