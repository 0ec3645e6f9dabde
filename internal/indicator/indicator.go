// Package indicator computes technical indicators over daily price slices.
//
// Every function is pure. Point functions (the ...At variants) return
// model.ErrInsufficientData when the window is not yet filled at the requested
// index; series functions return a Value per input element with Valid=false
// at those indices. Neither form ever substitutes a placeholder number.
package indicator

import (
	"errors"
	"fmt"
	"math"

	"stock-backtest/internal/model"
)

var (
	ErrInvalidWindow = errors.New("indicator: window must be > 0")
	ErrOutOfRange    = errors.New("indicator: index out of range")
)

// Value is one indicator reading. Valid is false where there is no value.
type Value struct {
	V     float64
	Valid bool
}

// MarshalJSON encodes missing and non-finite readings as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.V) || math.IsInf(v.V, 0) {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%g", v.V)), nil
}

// checkPoint validates a point query needing `need` bars ending at index i.
func checkPoint(n, window, i, need int) error {
	if window <= 0 {
		return ErrInvalidWindow
	}
	if i < 0 || i >= n {
		return fmt.Errorf("%w: index %d, series length %d", ErrOutOfRange, i, n)
	}
	if i+1 < need {
		return fmt.Errorf("%w: need %d bars, have %d", model.ErrInsufficientData, need, i+1)
	}
	return nil
}

// series evaluates a point function at every index.
func series(n int, at func(i int) (float64, error)) []Value {
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		if v, err := at(i); err == nil {
			out[i] = Value{V: v, Valid: true}
		}
	}
	return out
}
