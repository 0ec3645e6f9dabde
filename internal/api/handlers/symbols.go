package handlers

import (
	"net/http"
	"strings"

	"stock-backtest/internal/data"

	"github.com/gin-gonic/gin"
)

// SymbolHandler serves the ticker catalog.
type SymbolHandler struct {
	catalog *data.SymbolCatalog
}

func NewSymbolHandler(catalog *data.SymbolCatalog) *SymbolHandler {
	if catalog == nil {
		catalog = data.DefaultSymbols()
	}
	return &SymbolHandler{catalog: catalog}
}

// ListSymbols handles GET /api/v1/symbols?q=
func (h *SymbolHandler) ListSymbols(c *gin.Context) {
	symbols := h.catalog.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"symbols":    symbols,
		"updated_at": h.catalog.UpdatedAt,
		"count":      len(symbols),
	})
}

// GetSymbol handles GET /api/v1/symbols/:symbol
func (h *SymbolHandler) GetSymbol(c *gin.Context) {
	sym, ok := h.catalog.Lookup(c.Param("symbol"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "unknown symbol "+strings.ToUpper(c.Param("symbol")), nil)
		return
	}
	c.JSON(http.StatusOK, sym)
}
