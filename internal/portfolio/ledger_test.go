package portfolio

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stock-backtest/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedClock() Option {
	t := time.Date(2024, time.March, 1, 15, 30, 0, 0, time.UTC)
	return WithClock(func() time.Time { return t })
}

func newLedger(t *testing.T, cash float64) *Ledger {
	t.Helper()
	l, err := NewLedger(cash, fixedClock())
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	return l
}

func TestWeightedAverageCost(t *testing.T) {
	l := newLedger(t, 100000)
	if err := l.Buy("AAPL", 50, 175); err != nil {
		t.Fatalf("buy 1: %v", err)
	}
	if err := l.Buy("AAPL", 30, 140); err != nil {
		t.Fatalf("buy 2: %v", err)
	}
	h, ok := l.Holding("AAPL")
	if !ok {
		t.Fatalf("AAPL holding missing")
	}
	if h.Shares != 80 {
		t.Fatalf("shares = %d, want 80", h.Shares)
	}
	if !h.AveragePrice.Equal(dec("161.25")) {
		t.Fatalf("average price = %s, want 161.25", h.AveragePrice)
	}
	// 100000 - 8750 - 4200
	if !l.Cash().Equal(dec("87050")) {
		t.Fatalf("cash = %s, want 87050", l.Cash())
	}

	if err := l.Sell("AAPL", 25, 190); err != nil {
		t.Fatalf("sell: %v", err)
	}
	h, _ = l.Holding("AAPL")
	if h.Shares != 55 || !h.AveragePrice.Equal(dec("161.25")) {
		t.Fatalf("after sell: %d @ %s, want 55 @ 161.25", h.Shares, h.AveragePrice)
	}
}

func TestSellMissingHolding(t *testing.T) {
	l := newLedger(t, 5000)
	err := l.Sell("MSFT", 1, 300)
	if !errors.Is(err, model.ErrNoSuchHolding) {
		t.Fatalf("err = %v, want ErrNoSuchHolding", err)
	}
	var te *model.TradeError
	if !errors.As(err, &te) || te.Symbol != "MSFT" {
		t.Fatalf("err = %#v, want *TradeError for MSFT", err)
	}
	if !l.Cash().Equal(dec("5000")) {
		t.Fatalf("cash = %s, want unchanged 5000", l.Cash())
	}
	if len(l.Trades()) != 0 {
		t.Fatalf("rejected sell was journaled")
	}
}

func TestRejectionsLeaveStateUntouched(t *testing.T) {
	tests := []struct {
		name string
		op   func(*Ledger) error
		want error
	}{
		{"buy too much", func(l *Ledger) error { return l.Buy("TSLA", 100, 250) }, model.ErrInsufficientFunds},
		{"sell too many", func(l *Ledger) error { return l.Sell("AAPL", 11, 150) }, model.ErrInsufficientShares},
		{"zero shares buy", func(l *Ledger) error { return l.Buy("AAPL", 0, 150) }, model.ErrInvalidQuantity},
		{"negative shares sell", func(l *Ledger) error { return l.Sell("AAPL", -1, 150) }, model.ErrInvalidQuantity},
		{"zero price", func(l *Ledger) error { return l.Buy("AAPL", 1, 0) }, model.ErrInvalidQuantity},
		{"blank symbol", func(l *Ledger) error { return l.Buy("  ", 1, 10) }, model.ErrInvalidSymbol},
		{"bad mark", func(l *Ledger) error { return l.UpdatePrice("AAPL", -3) }, model.ErrInvalidQuantity},
		{"infinite buy price", func(l *Ledger) error { return l.Buy("AAPL", 1, math.Inf(1)) }, model.ErrInvalidQuantity},
		{"NaN sell price", func(l *Ledger) error { return l.Sell("AAPL", 1, math.NaN()) }, model.ErrInvalidQuantity},
		{"infinite mark", func(l *Ledger) error { return l.UpdatePrice("AAPL", math.Inf(1)) }, model.ErrInvalidQuantity},
		{"infinite batch mark", func(l *Ledger) error {
			return l.UpdatePrices(map[string]float64{"AAPL": math.Inf(1)})
		}, model.ErrInvalidQuantity},
		{"NaN batch mark", func(l *Ledger) error {
			return l.UpdatePrices(map[string]float64{"AAPL": 120, "MSFT": math.NaN()})
		}, model.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t, 2000)
			if err := l.Buy("AAPL", 10, 100); err != nil {
				t.Fatalf("setup buy: %v", err)
			}
			before := l.Snapshot()

			if err := tt.op(l); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}

			after := l.Snapshot()
			if !after.Cash.Equal(before.Cash) || after.TradeCount != before.TradeCount {
				t.Fatalf("state changed: cash %s -> %s, trades %d -> %d",
					before.Cash, after.Cash, before.TradeCount, after.TradeCount)
			}
			if len(after.Holdings) != 1 || after.Holdings[0].Shares != 10 ||
				!after.Holdings[0].CurrentPrice.Equal(before.Holdings[0].CurrentPrice) {
				t.Fatalf("holdings changed: %+v", after.Holdings)
			}
		})
	}
}

func TestFullLiquidationRemovesHolding(t *testing.T) {
	l := newLedger(t, 10000)
	if err := l.Buy("nvda", 10, 400); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := l.Sell("NVDA", 10, 450); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if _, ok := l.Holding("NVDA"); ok {
		t.Fatalf("holding still present after full sale")
	}
	if len(l.Holdings()) != 0 {
		t.Fatalf("holdings = %+v, want none", l.Holdings())
	}
	if !l.Cash().Equal(dec("10500")) {
		t.Fatalf("cash = %s, want 10500", l.Cash())
	}
	// Realized profit is not part of gain/loss.
	if !l.GainLoss().IsZero() {
		t.Fatalf("gain/loss = %s, want 0 with no open holdings", l.GainLoss())
	}
	trades := l.Trades()
	if len(trades) != 2 || trades[0].Side != model.SideBuy || trades[1].Side != model.SideSell {
		t.Fatalf("journal = %+v", trades)
	}
	if trades[0].Symbol != "NVDA" {
		t.Fatalf("symbol = %q, want NVDA", trades[0].Symbol)
	}
}

func TestUpdatePriceRevalues(t *testing.T) {
	l := newLedger(t, 10000)
	if err := l.Buy("AMD", 20, 100); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := l.UpdatePrice("AMD", 125); err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}
	h, _ := l.Holding("AMD")
	if !h.TotalValue.Equal(dec("2500")) || !h.GainLoss.Equal(dec("500")) || h.GainLossPercent != 25 {
		t.Fatalf("holding = %+v", h)
	}
	if !l.TotalValue().Equal(dec("10500")) {
		t.Fatalf("total value = %s, want 10500", l.TotalValue())
	}
	if !l.GainLoss().Equal(dec("500")) {
		t.Fatalf("gain/loss = %s, want 500", l.GainLoss())
	}

	// Unknown symbol is a no-op.
	if err := l.UpdatePrice("INTC", 30); err != nil {
		t.Fatalf("UpdatePrice unknown: %v", err)
	}
	if len(l.Holdings()) != 1 {
		t.Fatalf("unknown mark created a holding")
	}

	snap := l.Snapshot()
	// 500 / (10500 - 500)
	if snap.GainLossPercent != 5 {
		t.Fatalf("portfolio gain%% = %v, want 5", snap.GainLossPercent)
	}
}

func TestUpdatePricesBatch(t *testing.T) {
	l := newLedger(t, 10000)
	_ = l.Buy("AAPL", 10, 100)
	_ = l.Buy("MSFT", 10, 200)

	if err := l.UpdatePrices(map[string]float64{"AAPL": 110, "MSFT": 0}); !errors.Is(err, model.ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}
	if h, _ := l.Holding("AAPL"); !h.CurrentPrice.Equal(dec("100")) {
		t.Fatalf("partial batch applied: AAPL at %s", h.CurrentPrice)
	}

	if err := l.UpdatePrices(map[string]float64{"aapl": 110, "MSFT": 190}); err != nil {
		t.Fatalf("UpdatePrices: %v", err)
	}
	if !l.GainLoss().Equal(dec("0")) {
		t.Fatalf("gain/loss = %s, want 0 (+100 -100)", l.GainLoss())
	}
	holdings := l.Holdings()
	if holdings[0].Symbol != "AAPL" || holdings[1].Symbol != "MSFT" {
		t.Fatalf("holdings not sorted: %+v", holdings)
	}
}

func TestNewLedgerRejectsNegativeCash(t *testing.T) {
	if _, err := NewLedger(-1); !errors.Is(err, model.ErrInvalidCapital) {
		t.Fatalf("err = %v, want ErrInvalidCapital", err)
	}
}

func TestConcurrentTradesKeepInvariants(t *testing.T) {
	l := newLedger(t, 1000)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = l.Buy("META", 1, 30)
		}()
		go func() {
			defer wg.Done()
			_ = l.Sell("META", 1, 30)
		}()
	}
	wg.Wait()

	if l.Cash().IsNegative() {
		t.Fatalf("cash went negative: %s", l.Cash())
	}
	h, ok := l.Holding("META")
	if ok && h.Shares <= 0 {
		t.Fatalf("holding kept with %d shares", h.Shares)
	}
	var shares int64
	if ok {
		shares = h.Shares
	}
	want := dec("1000").Sub(decimal.NewFromInt(shares * 30))
	if !l.Cash().Equal(want) {
		t.Fatalf("cash = %s, want %s for %d shares held", l.Cash(), want, shares)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(fixedClock())
	id, l, err := r.Create(2500)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" || l == nil {
		t.Fatalf("Create returned empty id or ledger")
	}
	got, err := r.Get(id)
	if err != nil || got != l {
		t.Fatalf("Get(%s) = %p, %v", id, got, err)
	}
	if ids := r.IDs(); len(ids) != 1 || ids[0] != id {
		t.Fatalf("IDs = %v", ids)
	}
	if err := r.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.Get(id); !errors.Is(err, ErrLedgerNotFound) {
		t.Fatalf("Get after delete err = %v", err)
	}
	if err := r.Delete(id); !errors.Is(err, ErrLedgerNotFound) {
		t.Fatalf("second Delete err = %v", err)
	}
	if _, _, err := r.Create(-5); err == nil {
		t.Fatalf("negative cash accepted")
	}
}
