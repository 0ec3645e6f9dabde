package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/api/models"
	"stock-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

// RankHandler handles ranking-related requests
type RankHandler struct{}

// NewRankHandler creates a new rank handler
func NewRankHandler() *RankHandler {
	return &RankHandler{}
}

// RankSymbols handles POST /api/v1/rank
func (h *RankHandler) RankSymbols(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	bySymbol := make(map[string]model.Series, len(req.Series))
	for i, s := range req.Series {
		symbol := strings.ToUpper(strings.TrimSpace(s.Symbol))
		if symbol == "" {
			writeError(c, http.StatusBadRequest, "INVALID_SYMBOL", fmt.Sprintf("series %d has no symbol", i), nil)
			return
		}
		if _, dup := bySymbol[symbol]; dup {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "duplicate series for "+symbol, nil)
			return
		}
		if err := s.Validate(); err != nil {
			respondErr(c, fmt.Errorf("%s: %w", symbol, err), http.StatusBadRequest, "INVALID_SERIES")
			return
		}
		s.Symbol = symbol
		bySymbol[symbol] = s
	}

	ranked := analysis.RankByPotential(bySymbol)

	// Apply limit
	limit := req.Limit
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	ranked = ranked[:limit]

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{Rank: i + 1, SeriesPotential: r}
	}

	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}
