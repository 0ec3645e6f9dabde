package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"stock-backtest/internal/model"
)

// LoadSeries picks a decoder from the file extension (.json or .csv).
func LoadSeries(path string) (model.Series, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadSeriesJSON(path)
	case ".csv":
		return LoadSeriesCSV(path)
	default:
		return model.Series{}, fmt.Errorf("unsupported series file %q: want .json or .csv", path)
	}
}

func LoadSeriesJSON(path string) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Series{}, err
	}
	defer f.Close()

	s, err := DecodeSeriesJSON(f)
	if err != nil {
		return model.Series{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.Symbol == "" {
		s.Symbol = symbolFromPath(path)
	}
	return s, nil
}

// DecodeSeriesJSON reads either {"symbol": ..., "bars": [...]} or a bare
// array of bars. The result is validated.
func DecodeSeriesJSON(r io.Reader) (model.Series, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return model.Series{}, err
	}
	raw = bytes.TrimSpace(raw)

	var s model.Series
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &s.Bars); err != nil {
			return model.Series{}, fmt.Errorf("failed to parse bars: %w", err)
		}
	} else if err := json.Unmarshal(raw, &s); err != nil {
		return model.Series{}, fmt.Errorf("failed to parse series: %w", err)
	}
	s.Symbol = strings.ToUpper(s.Symbol)
	if err := s.Validate(); err != nil {
		return model.Series{}, err
	}
	return s, nil
}

func LoadQuoteJSON(path string) (model.Quote, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Quote{}, err
	}
	var q model.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return model.Quote{}, fmt.Errorf("failed to parse quote %s: %w", path, err)
	}
	q.Symbol = strings.ToUpper(q.Symbol)
	return q, nil
}

// symbolFromPath turns data/aapl.csv into AAPL.
func symbolFromPath(path string) string {
	base := filepath.Base(path)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}
