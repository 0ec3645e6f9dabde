package model

import (
	"errors"
	"fmt"
)

// Error kinds shared by the engines. Callers discriminate with errors.Is.
var (
	ErrInsufficientData   = errors.New("insufficient data")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoSuchHolding      = errors.New("no such holding")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidSymbol      = errors.New("invalid symbol")
	ErrInvalidSeries      = errors.New("invalid series")
	ErrInvalidCapital     = errors.New("invalid capital")
	ErrUnknownStrategy    = errors.New("unknown strategy")
)

// TradeError is returned by ledger operations that were rejected.
// It unwraps to one of the sentinel kinds above.
type TradeError struct {
	Kind      error
	Symbol    string
	Requested float64
	Available float64
}

func (e *TradeError) Error() string {
	switch e.Kind {
	case ErrInsufficientFunds:
		return fmt.Sprintf("%s: %s needs %.2f, cash available %.2f", e.Kind, e.Symbol, e.Requested, e.Available)
	case ErrInsufficientShares:
		return fmt.Sprintf("%s: selling %.0f %s, held %.0f", e.Kind, e.Requested, e.Symbol, e.Available)
	case ErrNoSuchHolding:
		return fmt.Sprintf("%s: %s", e.Kind, e.Symbol)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Symbol)
	}
}

func (e *TradeError) Unwrap() error { return e.Kind }
