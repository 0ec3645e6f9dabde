package advisor

import (
	"fmt"
	"strings"
)

const noHistory = "insufficient history"

// reasoning explains the inputs in a fixed order:
// trend, RSI, momentum, volatility, 52-week range, volume.
func reasoning(in inputs, risk RiskLevel) []string {
	return []string{
		trendReason(in),
		rsiReason(in),
		momentumReason(in),
		volatilityReason(in, risk),
		rangeReason(in),
		volumeReason(in),
	}
}

func side(a, b float64) string {
	if a > b {
		return "above"
	}
	return "below"
}

func trendReason(in inputs) string {
	if !in.sma20.Valid {
		return fmt.Sprintf("Trend: %s for SMA%d", noHistory, shortSMA)
	}
	if !in.sma50.Valid {
		return fmt.Sprintf("Trend: price %.2f is %s SMA%d (%.2f); %s for SMA%d",
			in.price, side(in.price, in.sma20.V), shortSMA, in.sma20.V, noHistory, longSMA)
	}
	var b strings.Builder
	switch t := trendPart(in); {
	case t > 0:
		b.WriteString("Trend: bullish, ")
	case t < 0:
		b.WriteString("Trend: bearish, ")
	default:
		b.WriteString("Trend: mixed, ")
	}
	fmt.Fprintf(&b, "price %.2f is %s SMA%d (%.2f) and %s SMA%d (%.2f)",
		in.price, side(in.price, in.sma20.V), shortSMA, in.sma20.V,
		side(in.price, in.sma50.V), longSMA, in.sma50.V)
	return b.String()
}

func rsiReason(in inputs) string {
	if !in.rsi.Valid {
		return fmt.Sprintf("RSI: %s for RSI(%d)", noHistory, rsiWindow)
	}
	state := "neutral"
	switch {
	case in.rsi.V <= 30:
		state = "oversold"
	case in.rsi.V >= 70:
		state = "overbought"
	}
	return fmt.Sprintf("RSI: %.1f is %s", in.rsi.V, state)
}

func momentumReason(in inputs) string {
	if !in.mom20.Valid {
		return fmt.Sprintf("Momentum: %s for %d-day momentum", noHistory, momentumLong)
	}
	dir := "flat"
	switch {
	case in.mom20.V > 0:
		dir = "positive"
	case in.mom20.V < 0:
		dir = "negative"
	}
	return fmt.Sprintf("Momentum: %d-day change of %+.2f%% is %s", momentumLong, in.mom20.V, dir)
}

func volatilityReason(in inputs, risk RiskLevel) string {
	if !in.volatility.Valid {
		return fmt.Sprintf("Volatility: %s, risk assumed %s", noHistory, risk)
	}
	return fmt.Sprintf("Volatility: daily returns vary by %.2f%%, %s risk", in.volatility.V, risk)
}

func rangeReason(in inputs) string {
	pos, ok := rangePosition(in)
	if !ok {
		return fmt.Sprintf("52-week range: flat at %.2f", in.high52)
	}
	return fmt.Sprintf("52-week range: price at %.0f%% of %.2f-%.2f", pos*100, in.low52, in.high52)
}

func volumeReason(in inputs) string {
	r, ok := volumeRatio(in)
	if !ok {
		return fmt.Sprintf("Volume: %s for %d-day average", noHistory, volumeWindow)
	}
	if r >= 1.5 {
		return fmt.Sprintf("Volume: surge at %.2fx the average", r)
	}
	return fmt.Sprintf("Volume: %.2fx the average", r)
}
