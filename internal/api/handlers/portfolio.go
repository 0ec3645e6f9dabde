package handlers

import (
	"log"
	"net/http"

	"stock-backtest/internal/api/models"
	"stock-backtest/internal/config"
	"stock-backtest/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler exposes in-memory portfolio ledgers.
type PortfolioHandler struct {
	registry    *portfolio.Registry
	defaultCash float64
}

func NewPortfolioHandler(registry *portfolio.Registry, defaultCash float64) *PortfolioHandler {
	if defaultCash <= 0 {
		defaultCash = config.DefaultPortfolioCash
	}
	return &PortfolioHandler{registry: registry, defaultCash: defaultCash}
}

// CreatePortfolio handles POST /api/v1/portfolios
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req models.CreatePortfolioRequest
	// An empty body means the default cash.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	cash := h.defaultCash
	if req.InitialCash != nil {
		cash = *req.InitialCash
	}

	id, l, err := h.registry.Create(cash)
	if err != nil {
		respondErr(c, err, http.StatusBadRequest, "INVALID_REQUEST")
		return
	}
	log.Printf("PortfolioHandler: Created portfolio %s with cash %.2f", id, cash)
	c.JSON(http.StatusCreated, models.PortfolioResponse{ID: id, Snapshot: l.Snapshot()})
}

// GetPortfolio handles GET /api/v1/portfolios/:id
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	l, ok := h.ledger(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.PortfolioResponse{ID: c.Param("id"), Snapshot: l.Snapshot()})
}

// DeletePortfolio handles DELETE /api/v1/portfolios/:id
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		respondErr(c, err, http.StatusNotFound, "NOT_FOUND")
		return
	}
	c.Status(http.StatusNoContent)
}

// Buy handles POST /api/v1/portfolios/:id/buy
func (h *PortfolioHandler) Buy(c *gin.Context) {
	h.trade(c, (*portfolio.Ledger).Buy)
}

// Sell handles POST /api/v1/portfolios/:id/sell
func (h *PortfolioHandler) Sell(c *gin.Context) {
	h.trade(c, (*portfolio.Ledger).Sell)
}

func (h *PortfolioHandler) trade(c *gin.Context, op func(*portfolio.Ledger, string, int64, float64) error) {
	l, ok := h.ledger(c)
	if !ok {
		return
	}
	var req models.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := op(l, req.Symbol, req.Shares, req.Price); err != nil {
		respondErr(c, err, http.StatusBadRequest, "INVALID_REQUEST")
		return
	}
	c.JSON(http.StatusOK, models.PortfolioResponse{ID: c.Param("id"), Snapshot: l.Snapshot()})
}

// UpdatePrices handles POST /api/v1/portfolios/:id/prices
func (h *PortfolioHandler) UpdatePrices(c *gin.Context) {
	l, ok := h.ledger(c)
	if !ok {
		return
	}
	var req models.PricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := l.UpdatePrices(req.Prices); err != nil {
		respondErr(c, err, http.StatusBadRequest, "INVALID_REQUEST")
		return
	}
	c.JSON(http.StatusOK, models.PortfolioResponse{ID: c.Param("id"), Snapshot: l.Snapshot()})
}

// ListTrades handles GET /api/v1/portfolios/:id/trades
func (h *PortfolioHandler) ListTrades(c *gin.Context) {
	l, ok := h.ledger(c)
	if !ok {
		return
	}
	trades := l.Trades()
	c.JSON(http.StatusOK, models.PortfolioTradesResponse{
		ID:     c.Param("id"),
		Count:  len(trades),
		Trades: trades,
	})
}

func (h *PortfolioHandler) ledger(c *gin.Context) (*portfolio.Ledger, bool) {
	l, err := h.registry.Get(c.Param("id"))
	if err != nil {
		respondErr(c, err, http.StatusNotFound, "NOT_FOUND")
		return nil, false
	}
	return l, true
}
