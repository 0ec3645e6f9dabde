// Package report renders engine results as markdown for terminals and files.
package report

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const currency = money.USD

// USD formats an amount as dollars and cents, e.g. $1,234.56.
func USD(amount decimal.Decimal) string {
	return money.New(amount.Shift(2).Round(0).IntPart(), currency).Display()
}

func USDFloat(amount float64) string {
	return USD(decimal.NewFromFloat(amount))
}

// SignedUSD prefixes positive amounts with +.
func SignedUSD(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + USD(amount)
	}
	return USD(amount)
}

func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

func SignedPercent(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}
