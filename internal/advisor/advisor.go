// Package advisor turns a quote and its price history into a scored
// BUY/SELL/HOLD recommendation.
//
// Scoring is a fixed, deterministic function of the inputs: the same quote
// and series always produce the same scores, action and reasoning text.
package advisor

import (
	"fmt"
	"math"

	"stock-backtest/internal/indicator"
	"stock-backtest/internal/model"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Indicator windows used for scoring.
const (
	shortSMA      = 20
	longSMA       = 50
	rsiWindow     = 14
	momentumLong  = 20
	momentumShort = 5
	volWindow     = 20
	volumeWindow  = 20
	yearBars      = 252
)

type Recommendation struct {
	Symbol           string       `json:"symbol"`
	Action           model.Signal `json:"action"`
	Confidence       float64      `json:"confidence"`
	RiskLevel        RiskLevel    `json:"risk_level"`
	Price            float64      `json:"price"`
	TechnicalScore   float64      `json:"technical_score"`
	FundamentalScore float64      `json:"fundamental_score"`
	SentimentScore   float64      `json:"sentiment_score"`
	CompositeScore   float64      `json:"composite_score"`
	TargetPrice      float64      `json:"target_price"`
	StopLoss         float64      `json:"stop_loss"`
	Reasoning        []string     `json:"reasoning"`
}

// inputs are the readings every score and reasoning line is derived from.
// Readings whose window is not filled stay invalid.
type inputs struct {
	price         float64
	sma20         indicator.Value
	sma50         indicator.Value
	rsi           indicator.Value
	mom20         indicator.Value
	mom5          indicator.Value
	volatility    indicator.Value
	high52        float64
	low52         float64
	volume        float64
	avgVolume     indicator.Value
	changePercent float64
	marketCap     float64
}

func reading(v float64, err error) indicator.Value {
	if err != nil {
		return indicator.Value{}
	}
	return indicator.Value{V: v, Valid: true}
}

// gather reads the quote, filling anything it lacks from the series.
// A zero quote price means no quote was supplied.
func gather(q model.Quote, s model.Series) inputs {
	closes := s.Closes()
	highs := s.Highs()
	lows := s.Lows()
	volumes := s.Volumes()
	i := len(closes) - 1
	last := s.Last()

	in := inputs{
		price:      q.Price,
		marketCap:  q.MarketCap,
		sma20:      reading(indicator.SMAAt(closes, shortSMA, i)),
		sma50:      reading(indicator.SMAAt(closes, longSMA, i)),
		rsi:        reading(indicator.RSIAt(closes, rsiWindow, i)),
		mom20:      reading(indicator.MomentumAt(closes, momentumLong, i)),
		mom5:       reading(indicator.MomentumAt(closes, momentumShort, i)),
		volatility: reading(indicator.ReturnsStdDevAt(closes, volWindow, i)),
	}

	if in.price <= 0 {
		in.price = last.Close
		if i > 0 {
			prev := closes[i-1]
			in.changePercent = (last.Close - prev) / prev * 100
		}
	} else {
		in.changePercent = q.ChangePercent
	}

	if q.FiftyTwoWeekHigh > 0 && q.FiftyTwoWeekLow > 0 {
		in.high52, in.low52 = q.FiftyTwoWeekHigh, q.FiftyTwoWeekLow
	} else {
		w := min(yearBars, len(closes))
		in.high52, _ = indicator.RecentHighAt(highs, w, i)
		in.low52, _ = indicator.RecentLowAt(lows, w, i)
	}

	in.volume = float64(q.Volume)
	if in.volume <= 0 {
		in.volume = float64(last.Volume)
	}
	if q.AvgVolume > 0 {
		in.avgVolume = indicator.Value{V: q.AvgVolume, Valid: true}
	} else {
		in.avgVolume = reading(indicator.SMAAt(volumes, volumeWindow, i))
	}
	return in
}

// Recommend scores the symbol and derives action, risk tier and price levels.
func Recommend(q model.Quote, s model.Series) (*Recommendation, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	in := gather(q, s)

	tech := technicalScore(in)
	fund := fundamentalScore(in)
	sent := sentimentScore(in)
	composite := round2(compositeScore(tech, fund, sent))
	action := ActionFor(composite)
	risk := RiskFor(in.volatility)
	target, stop := priceLevels(in.price, action, risk)

	symbol := q.Symbol
	if symbol == "" {
		symbol = s.Symbol
	}

	return &Recommendation{
		Symbol:           symbol,
		Action:           action,
		Confidence:       round2(math.Min(100, math.Abs(composite-50)*2)),
		RiskLevel:        risk,
		Price:            round2(in.price),
		TechnicalScore:   round2(tech),
		FundamentalScore: round2(fund),
		SentimentScore:   round2(sent),
		CompositeScore:   composite,
		TargetPrice:      round2(target),
		StopLoss:         round2(stop),
		Reasoning:        reasoning(in, risk),
	}, nil
}

// ActionFor maps a composite score to an action: >= 65 BUY, <= 35 SELL.
func ActionFor(composite float64) model.Signal {
	switch {
	case composite >= 65:
		return model.SignalBuy
	case composite <= 35:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}

// RiskFor buckets daily return volatility (percent). Unknown volatility is LOW.
func RiskFor(volatility indicator.Value) RiskLevel {
	switch {
	case !volatility.Valid || volatility.V < 1.5:
		return RiskLow
	case volatility.V < 3:
		return RiskMedium
	default:
		return RiskHigh
	}
}

var offsets = map[RiskLevel]struct{ target, stop float64 }{
	RiskLow:    {0.05, 0.03},
	RiskMedium: {0.10, 0.06},
	RiskHigh:   {0.20, 0.12},
}

// priceLevels places target and stop around price. A SELL expects the
// price to fall, so both levels flip sides.
func priceLevels(price float64, action model.Signal, risk RiskLevel) (target, stop float64) {
	o := offsets[risk]
	if action == model.SignalSell {
		return price * (1 - o.target), price * (1 + o.stop)
	}
	return price * (1 + o.target), price * (1 - o.stop)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
