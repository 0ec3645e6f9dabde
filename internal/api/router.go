// Package api assembles the HTTP surface: middleware, handlers and routes.
package api

import (
	"stock-backtest/internal/api/handlers"
	"stock-backtest/internal/api/middleware"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// Deps are the long-lived stores the handlers share.
type Deps struct {
	Config      *config.Config
	Runs        *data.Store[*handlers.StoredRun]
	Portfolios  *portfolio.Registry
	Symbols     *data.SymbolCatalog
	StrategyDir string
}

// NewRouter wires middleware and the /api/v1 routes. Missing deps get
// in-memory defaults; Runs then has no background sweeper.
func NewRouter(d Deps) *gin.Engine {
	if d.Config == nil {
		d.Config = config.Default()
	}
	if d.Runs == nil {
		ttl, err := d.Config.TTL()
		if err != nil {
			panic(err)
		}
		d.Runs = data.NewStore[*handlers.StoredRun](ttl, 0)
	}
	if d.Portfolios == nil {
		d.Portfolios = portfolio.NewRegistry()
	}
	if d.StrategyDir == "" {
		d.StrategyDir = handlers.StrategyDir()
	}

	router := gin.New()
	router.Use(middleware.CORS(d.Config.Server.AllowedOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	backtestHandler := handlers.NewBacktestHandler(d.Runs, d.StrategyDir, d.Config.Backtest.InitialCapital)
	presetHandler := handlers.NewPresetHandler(d.StrategyDir)
	strategyHandler := handlers.NewStrategyHandler()
	symbolHandler := handlers.NewSymbolHandler(d.Symbols)
	rankHandler := handlers.NewRankHandler()
	recommendationHandler := handlers.NewRecommendationHandler()
	portfolioHandler := handlers.NewPortfolioHandler(d.Portfolios, d.Config.Portfolio.InitialCash)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.GET("/backtest/:id/trades", backtestHandler.GetTrades)
		api.GET("/backtest/:id/equity", backtestHandler.GetEquity)
		api.POST("/backtest/compare", backtestHandler.CompareBacktests)

		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/strategies/presets", presetHandler.ListPresets)

		api.GET("/symbols", symbolHandler.ListSymbols)
		api.GET("/symbols/:symbol", symbolHandler.GetSymbol)

		api.POST("/recommendation", recommendationHandler.Recommend)
		api.POST("/indicators", handlers.ComputeIndicators)
		api.POST("/rank", rankHandler.RankSymbols)

		api.POST("/portfolios", portfolioHandler.CreatePortfolio)
		api.GET("/portfolios/:id", portfolioHandler.GetPortfolio)
		api.DELETE("/portfolios/:id", portfolioHandler.DeletePortfolio)
		api.POST("/portfolios/:id/buy", portfolioHandler.Buy)
		api.POST("/portfolios/:id/sell", portfolioHandler.Sell)
		api.POST("/portfolios/:id/prices", portfolioHandler.UpdatePrices)
		api.GET("/portfolios/:id/trades", portfolioHandler.ListTrades)
	}

	return router
}
