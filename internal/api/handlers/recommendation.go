package handlers

import (
	"log"
	"net/http"

	"stock-backtest/internal/advisor"
	"stock-backtest/internal/api/models"
	"stock-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

// RecommendationHandler scores symbols.
type RecommendationHandler struct{}

func NewRecommendationHandler() *RecommendationHandler {
	return &RecommendationHandler{}
}

// Recommend handles POST /api/v1/recommendation
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var q model.Quote
	if req.Quote != nil {
		q = *req.Quote
	}
	rec, err := advisor.Recommend(q, req.Series)
	if err != nil {
		respondErr(c, err, http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	log.Printf("RecommendationHandler: %s %s composite=%.2f risk=%s",
		rec.Symbol, rec.Action, rec.CompositeScore, rec.RiskLevel)
	c.JSON(http.StatusOK, rec)
}
