package model

import (
	"fmt"
	"math"
	"time"
)

// Trade is an executed, immutable fill produced by the simulator or the ledger.
type Trade struct {
	Date   time.Time `json:"date"`
	Side   Side      `json:"type"`
	Symbol string    `json:"symbol,omitempty"`
	Shares int64     `json:"shares"`
	Price  float64   `json:"price"`
	Total  float64   `json:"total"`
}

// NewTrade validates the quantity and price and fills in Total.
func NewTrade(date time.Time, side Side, symbol string, shares int64, price float64) (Trade, error) {
	if side != SideBuy && side != SideSell {
		return Trade{}, fmt.Errorf("unknown trade side %q", side)
	}
	if shares <= 0 {
		return Trade{}, fmt.Errorf("%w: shares must be > 0, got %d", ErrInvalidQuantity, shares)
	}
	if !ValidPrice(price) {
		return Trade{}, fmt.Errorf("%w: price must be > 0, got %v", ErrInvalidQuantity, price)
	}
	return Trade{
		Date:   date,
		Side:   side,
		Symbol: symbol,
		Shares: shares,
		Price:  price,
		Total:  float64(shares) * price,
	}, nil
}

// ValidPrice reports whether p is finite and > 0.
func ValidPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 1)
}
