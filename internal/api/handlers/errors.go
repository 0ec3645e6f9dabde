package handlers

import (
	"errors"
	"net/http"

	"stock-backtest/internal/api/models"
	"stock-backtest/internal/model"
	"stock-backtest/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// errorKinds maps engine sentinels to HTTP status and error code.
var errorKinds = []struct {
	kind   error
	status int
	code   string
}{
	{model.ErrInsufficientFunds, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
	{model.ErrInsufficientShares, http.StatusUnprocessableEntity, "INSUFFICIENT_SHARES"},
	{model.ErrNoSuchHolding, http.StatusNotFound, "NO_SUCH_HOLDING"},
	{model.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
	{model.ErrInvalidSymbol, http.StatusBadRequest, "INVALID_SYMBOL"},
	{model.ErrInsufficientData, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA"},
	{model.ErrInvalidSeries, http.StatusBadRequest, "INVALID_SERIES"},
	{model.ErrInvalidCapital, http.StatusBadRequest, "INVALID_CAPITAL"},
	{model.ErrUnknownStrategy, http.StatusBadRequest, "UNKNOWN_STRATEGY"},
	{portfolio.ErrLedgerNotFound, http.StatusNotFound, "NOT_FOUND"},
}

func writeError(c *gin.Context, status int, code, message string, details map[string]any) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondErr writes err with the status of its sentinel kind, or with the
// fallback when it wraps none of them.
func respondErr(c *gin.Context, err error, fallbackStatus int, fallbackCode string) {
	status, code := fallbackStatus, fallbackCode
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			status, code = k.status, k.code
			break
		}
	}

	var details map[string]any
	var te *model.TradeError
	if errors.As(err, &te) {
		details = map[string]any{"symbol": te.Symbol}
		if te.Kind == model.ErrInsufficientFunds || te.Kind == model.ErrInsufficientShares {
			details["requested"] = te.Requested
			details["available"] = te.Available
		}
	}
	writeError(c, status, code, err.Error(), details)
}

func badRequest(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
}
