package strategy

import (
	"fmt"
	"math"
	"strings"

	"stock-backtest/internal/model"
)

// ParameterInfo describes one tunable strategy parameter.
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "int", "float"
	Description string `json:"description"`
	Default     any    `json:"default"`
}

// Info describes a strategy variant for listings.
type Info struct {
	Kind        Kind            `json:"kind"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

var catalog = []Info{
	{
		Kind:        KindMACrossover,
		Name:        "Moving Average Crossover",
		Description: "Generates buy signals when short-term moving average crosses above long-term, and sell signals on the opposite crossover.",
		Parameters: []ParameterInfo{
			{Name: "short_window", Type: "int", Description: "Short SMA window in bars", Default: 20},
			{Name: "long_window", Type: "int", Description: "Long SMA window in bars", Default: 50},
		},
	},
	{
		Kind:        KindRSIReversion,
		Name:        "RSI Mean Reversion",
		Description: "Buys when RSI indicates oversold conditions (below 30) and sells when overbought (above 70).",
		Parameters: []ParameterInfo{
			{Name: "window", Type: "int", Description: "RSI window in bars", Default: 14},
			{Name: "oversold", Type: "float", Description: "Buy below this RSI", Default: 30.0},
			{Name: "overbought", Type: "float", Description: "Sell above this RSI", Default: 70.0},
		},
	},
	{
		Kind:        KindMomentum,
		Name:        "Momentum Strategy",
		Description: "Follows strong price trends by buying on positive momentum and selling on negative momentum.",
		Parameters: []ParameterInfo{
			{Name: "window", Type: "int", Description: "Lookback in bars for the percentage change", Default: 10},
			{Name: "threshold", Type: "float", Description: "Momentum threshold in percent (applied as +/-)", Default: 2.0},
		},
	},
	{
		Kind:        KindBreakout,
		Name:        "Breakout Strategy",
		Description: "Enters positions when price breaks above recent highs and exits on breakdowns below recent lows.",
		Parameters: []ParameterInfo{
			{Name: "window", Type: "int", Description: "Number of prior bars defining the high/low channel", Default: 20},
		},
	},
}

// Describe lists every strategy variant with its parameters and defaults.
func Describe() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Kinds lists the canonical strategy keys in catalog order.
func Kinds() []Kind {
	out := make([]Kind, len(catalog))
	for i, c := range catalog {
		out[i] = c.Kind
	}
	return out
}

// New builds a strategy from its key (or display name) and parameters.
// Missing parameters take their defaults.
func New(name string, raw map[string]any) (Strategy, error) {
	p := &params{m: raw}
	switch resolve(name) {
	case KindMACrossover:
		s := &MACrossover{
			Short: p.integer("short_window", 20),
			Long:  p.integer("long_window", 50),
		}
		if p.err != nil {
			return nil, fmt.Errorf("ma_crossover: %w", p.err)
		}
		if s.Short <= 0 || s.Long <= 0 || s.Short >= s.Long {
			return nil, fmt.Errorf("ma_crossover: need 0 < short_window < long_window, got %d/%d", s.Short, s.Long)
		}
		return s, nil
	case KindRSIReversion:
		s := &RSIReversion{
			Window:     p.integer("window", 14),
			Oversold:   p.number("oversold", 30),
			Overbought: p.number("overbought", 70),
		}
		if p.err != nil {
			return nil, fmt.Errorf("rsi_reversion: %w", p.err)
		}
		if s.Window <= 0 {
			return nil, fmt.Errorf("rsi_reversion: window must be > 0, got %d", s.Window)
		}
		if s.Oversold < 0 || s.Overbought > 100 || s.Oversold >= s.Overbought {
			return nil, fmt.Errorf("rsi_reversion: need 0 <= oversold < overbought <= 100, got %v/%v", s.Oversold, s.Overbought)
		}
		return s, nil
	case KindMomentum:
		s := &Momentum{
			Window:    p.integer("window", 10),
			Threshold: p.number("threshold", 2),
		}
		if p.err != nil {
			return nil, fmt.Errorf("momentum: %w", p.err)
		}
		if s.Window <= 0 {
			return nil, fmt.Errorf("momentum: window must be > 0, got %d", s.Window)
		}
		if s.Threshold < 0 {
			return nil, fmt.Errorf("momentum: threshold must be >= 0, got %v", s.Threshold)
		}
		return s, nil
	case KindBreakout:
		s := &Breakout{Window: p.integer("window", 20)}
		if p.err != nil {
			return nil, fmt.Errorf("breakout: %w", p.err)
		}
		if s.Window <= 0 {
			return nil, fmt.Errorf("breakout: window must be > 0, got %d", s.Window)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, name)
	}
}

// All builds every variant with default parameters, in catalog order.
func All() []Strategy {
	out := make([]Strategy, 0, len(catalog))
	for _, c := range catalog {
		s, err := New(string(c.Kind), nil)
		if err != nil {
			panic(err)
		}
		out = append(out, s)
	}
	return out
}

func resolve(name string) Kind {
	n := strings.TrimSpace(name)
	for _, c := range catalog {
		if strings.EqualFold(n, string(c.Kind)) || strings.EqualFold(n, c.Name) {
			return c.Kind
		}
	}
	return ""
}

// params reads numeric strategy parameters, remembering the first bad one.
type params struct {
	m   map[string]any
	err error
}

func (p *params) fail(key string, v any, want string) {
	if p.err == nil {
		p.err = fmt.Errorf("parameter %s must be %s, got %v", key, want, v)
	}
}

func (p *params) number(key string, def float64) float64 {
	v, ok := p.m[key]
	if !ok || v == nil {
		return def
	}
	var x float64
	switch n := v.(type) {
	case float64:
		x = n
	case float32:
		x = float64(n)
	case int:
		x = float64(n)
	case int64:
		x = float64(n)
	case uint64:
		x = float64(n)
	default:
		p.fail(key, v, "a number")
		return def
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		p.fail(key, v, "a finite number")
		return def
	}
	return x
}

func (p *params) integer(key string, def int) int {
	x := p.number(key, float64(def))
	if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
		p.fail(key, x, "an integer")
		return def
	}
	return int(x)
}
