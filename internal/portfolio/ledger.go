// Package portfolio holds live cash-and-holdings ledgers.
//
// Amounts are kept as decimals so repeated buys and sells never drift.
// A Ledger serializes its own operations; callers may share one across
// goroutines.
package portfolio

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"stock-backtest/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Holding is one open position. Value fields are derived from CurrentPrice.
type Holding struct {
	Symbol          string          `json:"symbol"`
	Shares          int64           `json:"shares"`
	AveragePrice    decimal.Decimal `json:"average_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	TotalValue      decimal.Decimal `json:"total_value"`
	GainLoss        decimal.Decimal `json:"gain_loss"`
	GainLossPercent float64         `json:"gain_loss_percent"`
}

// CostBasis is shares times average price.
func (h Holding) CostBasis() decimal.Decimal {
	return h.AveragePrice.Mul(decimal.NewFromInt(h.Shares))
}

func (h *Holding) revalue() {
	shares := decimal.NewFromInt(h.Shares)
	h.TotalValue = h.CurrentPrice.Mul(shares)
	cost := h.AveragePrice.Mul(shares)
	h.GainLoss = h.TotalValue.Sub(cost)
	if cost.IsZero() {
		h.GainLossPercent = 0
		return
	}
	h.GainLossPercent = h.GainLoss.Div(cost).Mul(hundred).Round(4).InexactFloat64()
}

// Snapshot is a consistent read of the whole ledger.
type Snapshot struct {
	Cash            decimal.Decimal `json:"cash"`
	Holdings        []Holding       `json:"holdings"`
	HoldingsValue   decimal.Decimal `json:"holdings_value"`
	TotalValue      decimal.Decimal `json:"total_value"`
	GainLoss        decimal.Decimal `json:"gain_loss"`
	GainLossPercent float64         `json:"gain_loss_percent"`
	TradeCount      int             `json:"trade_count"`
}

type Option func(*Ledger)

// WithClock sets the time source used to date journal entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

type Ledger struct {
	mu       sync.Mutex
	cash     decimal.Decimal
	holdings map[string]*Holding
	trades   []model.Trade
	now      func() time.Time
}

func NewLedger(initialCash float64, opts ...Option) (*Ledger, error) {
	if !(initialCash >= 0) || math.IsInf(initialCash, 1) {
		return nil, fmt.Errorf("%w: initial cash must be >= 0, got %v", model.ErrInvalidCapital, initialCash)
	}
	l := &Ledger{
		cash:     decimal.NewFromFloat(initialCash),
		holdings: make(map[string]*Holding),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func normalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", fmt.Errorf("%w: symbol is required", model.ErrInvalidSymbol)
	}
	return s, nil
}

func validPrice(price float64) error {
	if !model.ValidPrice(price) {
		return fmt.Errorf("%w: price must be finite and > 0, got %v", model.ErrInvalidQuantity, price)
	}
	return nil
}

// Buy spends shares*price of cash. An existing holding gets a new
// weighted-average cost; a new one starts at price.
func (l *Ledger) Buy(symbol string, shares int64, price float64) error {
	sym, err := normalizeSymbol(symbol)
	if err != nil {
		return err
	}
	if err := validPrice(price); err != nil {
		return err
	}
	tr, err := model.NewTrade(l.now(), model.SideBuy, sym, shares, price)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	px := decimal.NewFromFloat(price)
	qty := decimal.NewFromInt(shares)
	cost := px.Mul(qty)
	if cost.GreaterThan(l.cash) {
		return &model.TradeError{
			Kind:      model.ErrInsufficientFunds,
			Symbol:    sym,
			Requested: cost.InexactFloat64(),
			Available: l.cash.InexactFloat64(),
		}
	}

	h, ok := l.holdings[sym]
	if !ok {
		h = &Holding{Symbol: sym, Shares: shares, AveragePrice: px}
		l.holdings[sym] = h
	} else {
		total := decimal.NewFromInt(h.Shares + shares)
		h.AveragePrice = h.CostBasis().Add(cost).Div(total)
		h.Shares += shares
	}
	h.CurrentPrice = px
	h.revalue()

	l.cash = l.cash.Sub(cost)
	l.trades = append(l.trades, tr)
	return nil
}

// Sell credits shares*price of cash. Average price is untouched; a holding
// sold down to zero is removed.
func (l *Ledger) Sell(symbol string, shares int64, price float64) error {
	sym, err := normalizeSymbol(symbol)
	if err != nil {
		return err
	}
	if err := validPrice(price); err != nil {
		return err
	}
	tr, err := model.NewTrade(l.now(), model.SideSell, sym, shares, price)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.holdings[sym]
	if !ok {
		return &model.TradeError{Kind: model.ErrNoSuchHolding, Symbol: sym, Requested: float64(shares)}
	}
	if shares > h.Shares {
		return &model.TradeError{
			Kind:      model.ErrInsufficientShares,
			Symbol:    sym,
			Requested: float64(shares),
			Available: float64(h.Shares),
		}
	}

	px := decimal.NewFromFloat(price)
	l.cash = l.cash.Add(px.Mul(decimal.NewFromInt(shares)))
	h.Shares -= shares
	if h.Shares == 0 {
		delete(l.holdings, sym)
	} else {
		h.CurrentPrice = px
		h.revalue()
	}
	l.trades = append(l.trades, tr)
	return nil
}

// UpdatePrice marks a holding to price. Unknown symbols are ignored.
func (l *Ledger) UpdatePrice(symbol string, price float64) error {
	sym, err := normalizeSymbol(symbol)
	if err != nil {
		return err
	}
	if err := validPrice(price); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.holdings[sym]
	if !ok {
		return nil
	}
	h.CurrentPrice = decimal.NewFromFloat(price)
	h.revalue()
	return nil
}

// UpdatePrices applies a batch of marks under one lock. Invalid prices
// reject the whole batch.
func (l *Ledger) UpdatePrices(prices map[string]float64) error {
	marks := make(map[string]decimal.Decimal, len(prices))
	for symbol, price := range prices {
		sym, err := normalizeSymbol(symbol)
		if err != nil {
			return err
		}
		if err := validPrice(price); err != nil {
			return fmt.Errorf("%s: %w", sym, err)
		}
		marks[sym] = decimal.NewFromFloat(price)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for sym, px := range marks {
		if h, ok := l.holdings[sym]; ok {
			h.CurrentPrice = px
			h.revalue()
		}
	}
	return nil
}

// Holdings returns copies sorted by symbol.
func (l *Ledger) Holdings() []Holding {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holdingsLocked()
}

func (l *Ledger) holdingsLocked() []Holding {
	out := make([]Holding, 0, len(l.holdings))
	for _, h := range l.holdings {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Holding returns the position in symbol, if any.
func (l *Ledger) Holding(symbol string) (Holding, bool) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.holdings[sym]
	if !ok {
		return Holding{}, false
	}
	return *h, true
}

func (l *Ledger) Cash() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

// TotalValue is cash plus the marked value of every holding.
func (l *Ledger) TotalValue() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash.Add(l.holdingsValueLocked())
}

// GainLoss sums the unrealized gain/loss of open holdings. Profit or loss
// already realized by sells is not included.
func (l *Ledger) GainLoss() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gainLossLocked()
}

func (l *Ledger) holdingsValueLocked() decimal.Decimal {
	sum := decimal.Zero
	for _, h := range l.holdings {
		sum = sum.Add(h.TotalValue)
	}
	return sum
}

func (l *Ledger) gainLossLocked() decimal.Decimal {
	sum := decimal.Zero
	for _, h := range l.holdings {
		sum = sum.Add(h.GainLoss)
	}
	return sum
}

// Trades returns a copy of the journal in execution order.
func (l *Ledger) Trades() []model.Trade {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Snapshot reads cash, holdings and totals under one lock.
// GainLossPercent is gain/loss over the value before that gain/loss.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	hv := l.holdingsValueLocked()
	total := l.cash.Add(hv)
	gl := l.gainLossLocked()
	pct := 0.0
	if base := total.Sub(gl); !base.IsZero() {
		pct = gl.Div(base).Mul(hundred).Round(4).InexactFloat64()
	}
	return Snapshot{
		Cash:            l.cash,
		Holdings:        l.holdingsLocked(),
		HoldingsValue:   hv,
		TotalValue:      total,
		GainLoss:        gl,
		GainLossPercent: pct,
		TradeCount:      len(l.trades),
	}
}
