package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-day format used in files and JSON bodies.
const DateLayout = "2006-01-02"

// PriceBar is one day's OHLCV record.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// ParseDate accepts a calendar day or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

type barAlias PriceBar

// MarshalJSON writes the date as a calendar day.
func (b PriceBar) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date string `json:"date"`
		barAlias
	}{Date: b.Date.Format(DateLayout), barAlias: barAlias(b)})
}

func (b *PriceBar) UnmarshalJSON(raw []byte) error {
	aux := struct {
		Date string `json:"date"`
		*barAlias
	}{barAlias: (*barAlias)(b)}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}
	d, err := ParseDate(aux.Date)
	if err != nil {
		return err
	}
	b.Date = d
	return nil
}

// Series is an ordered daily history for one symbol.
// Bars are ascending by date with no duplicates.
type Series struct {
	Symbol string     `json:"symbol"`
	Bars   []PriceBar `json:"bars"`
}

// Validate checks the ordering and price invariants the engines rely on.
func (s Series) Validate() error {
	if len(s.Bars) == 0 {
		return fmt.Errorf("%w: no bars", ErrInvalidSeries)
	}
	for i, b := range s.Bars {
		if !ValidPrice(b.Close) {
			return fmt.Errorf("%w: bar %d close must be finite and > 0, got %v", ErrInvalidSeries, i, b.Close)
		}
		for _, f := range []struct {
			name string
			v    float64
		}{{"open", b.Open}, {"high", b.High}, {"low", b.Low}} {
			if !(f.v >= 0) || math.IsInf(f.v, 1) {
				return fmt.Errorf("%w: bar %d %s must be finite and >= 0, got %v", ErrInvalidSeries, i, f.name, f.v)
			}
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: bar %d volume must be >= 0", ErrInvalidSeries, i)
		}
		if i > 0 && !b.Date.After(s.Bars[i-1].Date) {
			return fmt.Errorf("%w: bar %d date %s is not after %s", ErrInvalidSeries, i,
				b.Date.Format(DateLayout), s.Bars[i-1].Date.Format(DateLayout))
		}
	}
	return nil
}

func (s Series) Len() int { return len(s.Bars) }

// Last returns the final bar. It panics on an empty series; call Validate first.
func (s Series) Last() PriceBar { return s.Bars[len(s.Bars)-1] }

func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

func (s Series) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

func (s Series) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

func (s Series) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = float64(b.Volume)
	}
	return out
}

// Window returns the trailing lookback of at most days bars.
// The returned series shares its backing array with s.
func (s Series) Window(days int) Series {
	if days <= 0 || days >= len(s.Bars) {
		return s
	}
	return Series{Symbol: s.Symbol, Bars: s.Bars[len(s.Bars)-days:]}
}
