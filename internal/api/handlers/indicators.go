package handlers

import (
	"fmt"
	"net/http"

	"stock-backtest/internal/api/models"
	"stock-backtest/internal/indicator"
	"stock-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	defaultIndicatorWindow = 20
	defaultRSIWindow       = 14
)

// ComputeIndicators handles POST /api/v1/indicators
func ComputeIndicators(c *gin.Context) {
	var req models.IndicatorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Window < 0 || req.RSIWindow < 0 {
		badRequest(c, fmt.Errorf("windows must be >= 0, got %d/%d", req.Window, req.RSIWindow))
		return
	}
	if err := req.Series.Validate(); err != nil {
		respondErr(c, err, http.StatusBadRequest, "INVALID_SERIES")
		return
	}

	window := req.Window
	if window == 0 {
		window = defaultIndicatorWindow
	}
	rsiWindow := req.RSIWindow
	if rsiWindow == 0 {
		rsiWindow = defaultRSIWindow
	}

	s := req.Series
	closes, highs, lows := s.Closes(), s.Highs(), s.Lows()
	dates := make([]string, s.Len())
	for i, b := range s.Bars {
		dates[i] = b.Date.Format(model.DateLayout)
	}

	c.JSON(http.StatusOK, models.IndicatorsResponse{
		Symbol:     s.Symbol,
		Window:     window,
		RSIWindow:  rsiWindow,
		Dates:      dates,
		Close:      closes,
		SMA:        indicator.SMA(closes, window),
		EMA:        indicator.EMA(closes, window),
		RSI:        indicator.RSI(closes, rsiWindow),
		Momentum:   indicator.Momentum(closes, window),
		RecentHigh: indicator.RecentHigh(highs, window),
		RecentLow:  indicator.RecentLow(lows, window),
		Volatility: indicator.ReturnsStdDev(closes, window),
		ATR:        indicator.ATR(highs, lows, closes, window),
	})
}
