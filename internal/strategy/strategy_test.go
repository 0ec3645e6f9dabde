package strategy

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"stock-backtest/internal/model"
)

func barsFromCloses(closes ...float64) []model.PriceBar {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		out[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return out
}

func wave(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 10*math.Sin(float64(i)/5) + float64(i)*0.05
	}
	return out
}

func TestMACrossoverFiresOnlyOnCross(t *testing.T) {
	s := &MACrossover{Short: 2, Long: 3}
	// SMA2 vs SMA3: index 3 (10,10,10,13) -> 11.5 > 11 cross up; stays above after.
	bars := barsFromCloses(10, 10, 10, 13, 14, 15, 16, 9, 8, 7)
	got := make([]model.Signal, len(bars))
	for i := range bars {
		got[i] = s.SignalAt(bars, i)
	}
	want := []model.Signal{
		model.SignalHold, model.SignalHold, model.SignalHold, model.SignalBuy,
		model.SignalHold, model.SignalHold, model.SignalHold, model.SignalSell,
		model.SignalHold, model.SignalHold,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SignalAt(%d) = %s, want %s (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestMACrossoverAlternates(t *testing.T) {
	s := &MACrossover{Short: 5, Long: 12}
	bars := barsFromCloses(wave(300)...)
	last := model.SignalHold
	fired := 0
	for i := range bars {
		sig := s.SignalAt(bars, i)
		if sig == model.SignalHold {
			continue
		}
		fired++
		if sig == last {
			t.Fatalf("index %d: repeated %s without the opposite signal in between", i, sig)
		}
		last = sig
	}
	if fired < 4 {
		t.Fatalf("expected several crossovers on a wave, got %d", fired)
	}
}

func TestRSIReversion(t *testing.T) {
	s := &RSIReversion{Window: 3, Oversold: 30, Overbought: 70}
	falling := barsFromCloses(10, 9, 8, 7, 6)
	if got := s.SignalAt(falling, 4); got != model.SignalBuy {
		t.Fatalf("falling: got %s, want BUY", got)
	}
	rising := barsFromCloses(6, 7, 8, 9, 10)
	if got := s.SignalAt(rising, 4); got != model.SignalSell {
		t.Fatalf("rising: got %s, want SELL", got)
	}
	if got := s.SignalAt(rising, 2); got != model.SignalHold {
		t.Fatalf("before warmup: got %s, want HOLD", got)
	}
	mixed := barsFromCloses(10, 11, 10, 11, 10)
	if got := s.SignalAt(mixed, 4); got != model.SignalHold {
		t.Fatalf("mixed: got %s, want HOLD", got)
	}
}

func TestMomentum(t *testing.T) {
	s := &Momentum{Window: 2, Threshold: 5}
	bars := barsFromCloses(100, 101, 110, 104, 95, 96)
	want := []model.Signal{
		model.SignalHold, model.SignalHold, model.SignalBuy, // +10%
		model.SignalHold, // 104 vs 101: +2.97%
		model.SignalSell, // 95 vs 110: -13.6%
		model.SignalSell, // 96 vs 104: -7.7%
	}
	for i := range bars {
		if got := s.SignalAt(bars, i); got != want[i] {
			t.Fatalf("SignalAt(%d) = %s, want %s", i, got, want[i])
		}
	}
}

func TestBreakout(t *testing.T) {
	s := &Breakout{Window: 3}
	bars := barsFromCloses(10, 12, 11, 13, 12, 9)
	want := []model.Signal{
		model.SignalHold, model.SignalHold, model.SignalHold,
		model.SignalBuy,  // 13 > max(10,12,11)
		model.SignalHold, // 12 within [11,13]
		model.SignalSell, // 9 < min(11,13,12)
	}
	for i := range bars {
		if got := s.SignalAt(bars, i); got != want[i] {
			t.Fatalf("SignalAt(%d) = %s, want %s", i, got, want[i])
		}
	}
}

func TestNoLookahead(t *testing.T) {
	bars := barsFromCloses(wave(120)...)
	for _, s := range All() {
		for i := range bars {
			full := s.SignalAt(bars, i)
			cut := s.SignalAt(bars[:i+1], i)
			if full != cut {
				t.Fatalf("%s: SignalAt(%d) differs with future bars (%s vs %s)", s.Name(), i, full, cut)
			}
		}
	}
}

func TestNothingBeforeWarmup(t *testing.T) {
	bars := barsFromCloses(wave(120)...)
	for _, s := range All() {
		for i := 0; i < s.Warmup() && i < len(bars); i++ {
			if got := s.SignalAt(bars, i); got != model.SignalHold {
				t.Fatalf("%s: SignalAt(%d) = %s before warmup %d", s.Name(), i, got, s.Warmup())
			}
		}
	}
}

func TestNew(t *testing.T) {
	s, err := New("momentum", map[string]any{"window": 5, "threshold": 1.5})
	if err != nil {
		t.Fatalf("New(momentum) error = %v", err)
	}
	m := s.(*Momentum)
	if m.Window != 5 || m.Threshold != 1.5 {
		t.Fatalf("params = %+v", m)
	}

	s, err = New("Moving Average Crossover", nil)
	if err != nil {
		t.Fatalf("New(display name) error = %v", err)
	}
	if ma := s.(*MACrossover); ma.Short != 20 || ma.Long != 50 {
		t.Fatalf("defaults = %+v, want 20/50", ma)
	}

	if _, err := New("martingale", nil); !errors.Is(err, model.ErrUnknownStrategy) {
		t.Fatalf("unknown error = %v", err)
	}
	if _, err := New("ma_crossover", map[string]any{"short_window": 50, "long_window": 20}); err == nil {
		t.Fatalf("expected error for short >= long")
	}
	if _, err := New("rsi_reversion", map[string]any{"oversold": 80.0}); err == nil {
		t.Fatalf("expected error for oversold >= overbought")
	}
	if _, err := New("breakout", map[string]any{"window": 0}); err == nil {
		t.Fatalf("expected error for zero window")
	}
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		params map[string]any
		want   string
	}{
		{"fractional window", "momentum", map[string]any{"window": 2.7}, "window must be an integer"},
		{"fractional long window", "ma_crossover", map[string]any{"long_window": 50.5}, "long_window must be an integer"},
		{"text window", "breakout", map[string]any{"window": "twenty"}, "window must be a number"},
		{"NaN threshold", "momentum", map[string]any{"threshold": math.NaN()}, "threshold must be a finite number"},
		{"infinite oversold", "rsi_reversion", map[string]any{"oversold": math.Inf(-1)}, "oversold must be a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.kind, tt.params)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("New(%s, %v) error = %v, want containing %q", tt.kind, tt.params, err, tt.want)
			}
		})
	}

	// Whole-valued floats from JSON bodies are fine.
	s, err := New("breakout", map[string]any{"window": 15.0})
	if err != nil {
		t.Fatalf("New(breakout, 15.0) error = %v", err)
	}
	if b := s.(*Breakout); b.Window != 15 {
		t.Fatalf("Window = %d, want 15", b.Window)
	}
}

func TestDescribeMatchesKinds(t *testing.T) {
	infos := Describe()
	kinds := Kinds()
	if len(infos) != 4 || len(kinds) != 4 {
		t.Fatalf("got %d infos, %d kinds, want 4", len(infos), len(kinds))
	}
	for i, s := range All() {
		if s.Kind() != kinds[i] || s.Name() != infos[i].Name {
			t.Fatalf("All()[%d] = %s/%s, want %s/%s", i, s.Kind(), s.Name(), kinds[i], infos[i].Name)
		}
	}
}
