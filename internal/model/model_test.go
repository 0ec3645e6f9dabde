package model

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestSeriesValidate(t *testing.T) {
	tests := []struct {
		name    string
		bars    []PriceBar
		wantErr bool
	}{
		{name: "empty", bars: nil, wantErr: true},
		{name: "single bar", bars: []PriceBar{{Date: day(0), Close: 10}}},
		{name: "ascending", bars: []PriceBar{{Date: day(0), Close: 10}, {Date: day(1), Close: 11}}},
		{name: "duplicate date", bars: []PriceBar{{Date: day(0), Close: 10}, {Date: day(0), Close: 11}}, wantErr: true},
		{name: "descending", bars: []PriceBar{{Date: day(1), Close: 10}, {Date: day(0), Close: 11}}, wantErr: true},
		{name: "zero close", bars: []PriceBar{{Date: day(0), Close: 0}}, wantErr: true},
		{name: "NaN close", bars: []PriceBar{{Date: day(0), Close: 10}, {Date: day(1), Close: math.NaN()}}, wantErr: true},
		{name: "infinite close", bars: []PriceBar{{Date: day(0), Close: math.Inf(1)}}, wantErr: true},
		{name: "NaN high", bars: []PriceBar{{Date: day(0), High: math.NaN(), Close: 10}}, wantErr: true},
		{name: "infinite low", bars: []PriceBar{{Date: day(0), Low: math.Inf(-1), Close: 10}}, wantErr: true},
		{name: "negative open", bars: []PriceBar{{Date: day(0), Open: -1, Close: 10}}, wantErr: true},
		{name: "negative volume", bars: []PriceBar{{Date: day(0), Close: 1, Volume: -1}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Series{Symbol: "X", Bars: tt.bars}.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSeries) {
				t.Fatalf("Validate() error = %v, want ErrInvalidSeries", err)
			}
		})
	}
}

func TestSeriesWindow(t *testing.T) {
	s := Series{Symbol: "X"}
	for i := 0; i < 10; i++ {
		s.Bars = append(s.Bars, PriceBar{Date: day(i), Close: float64(i + 1)})
	}
	w := s.Window(3)
	if w.Len() != 3 {
		t.Fatalf("Window(3) len = %d, want 3", w.Len())
	}
	if w.Bars[0].Close != 8 || w.Last().Close != 10 {
		t.Fatalf("Window(3) = %v..%v, want 8..10", w.Bars[0].Close, w.Last().Close)
	}
	if got := s.Window(0).Len(); got != 10 {
		t.Fatalf("Window(0) len = %d, want 10", got)
	}
	if got := s.Window(365).Len(); got != 10 {
		t.Fatalf("Window(365) len = %d, want 10", got)
	}
}

func TestNewTrade(t *testing.T) {
	tr, err := NewTrade(day(0), SideBuy, "AAPL", 3, 12.5)
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
	if tr.Total != 37.5 {
		t.Fatalf("Total = %v, want 37.5", tr.Total)
	}

	for _, c := range []struct {
		shares int64
		price  float64
	}{{0, 10}, {-1, 10}, {1, 0}, {1, -5}, {1, math.NaN()}, {1, math.Inf(1)}} {
		if _, err := NewTrade(day(0), SideSell, "AAPL", c.shares, c.price); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("NewTrade(%d, %v) error = %v, want ErrInvalidQuantity", c.shares, c.price, err)
		}
	}
}

func TestTradeErrorUnwrap(t *testing.T) {
	err := error(&TradeError{Kind: ErrInsufficientFunds, Symbol: "AAPL", Requested: 100, Available: 50})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("errors.Is(%v, ErrInsufficientFunds) = false", err)
	}
	if errors.Is(err, ErrNoSuchHolding) {
		t.Fatalf("errors.Is(%v, ErrNoSuchHolding) = true", err)
	}
}

func TestPriceBarJSONDates(t *testing.T) {
	var b PriceBar
	if err := json.Unmarshal([]byte(`{"date":"2024-03-01","open":1,"high":2,"low":0.5,"close":1.5,"volume":10}`), &b); err != nil {
		t.Fatalf("unmarshal day: %v", err)
	}
	if !b.Date.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) || b.Close != 1.5 || b.Volume != 10 {
		t.Fatalf("bar = %+v", b)
	}
	if err := json.Unmarshal([]byte(`{"date":"2024-03-01T00:00:00Z","close":1}`), &b); err != nil {
		t.Fatalf("unmarshal RFC 3339: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"date":"03/01/2024","close":1}`), &b); err == nil {
		t.Fatalf("bad date accepted")
	}
	raw, err := json.Marshal(PriceBar{Date: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), Close: 2})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"date":"2024-03-04"`) {
		t.Fatalf("marshal = %s", raw)
	}
}
