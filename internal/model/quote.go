package model

// Quote is the latest snapshot for a symbol.
// FiftyTwoWeekHigh, FiftyTwoWeekLow and AvgVolume are optional; zero means unknown.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name,omitempty"`
	Price            float64 `json:"price"`
	Open             float64 `json:"open"`
	High             float64 `json:"high"`
	Low              float64 `json:"low"`
	PreviousClose    float64 `json:"previous_close"`
	Change           float64 `json:"change"`
	ChangePercent    float64 `json:"change_percent"`
	Volume           int64   `json:"volume"`
	MarketCap        float64 `json:"market_cap,omitempty"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low,omitempty"`
	AvgVolume        float64 `json:"avg_volume,omitempty"`
}
