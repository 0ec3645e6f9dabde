package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/api/models"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"

	"github.com/gin-gonic/gin"
)

// StoredRun is a finished backtest kept for trade and equity retrieval.
type StoredRun struct {
	Symbol string
	Result *backtest.Result
}

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	engine         *backtest.Engine
	runs           *data.Store[*StoredRun]
	strategyDir    string
	defaultCapital float64
}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler(runs *data.Store[*StoredRun], strategyDir string, defaultCapital float64) *BacktestHandler {
	if defaultCapital <= 0 {
		defaultCapital = config.DefaultInitialCapital
	}
	return &BacktestHandler{
		engine:         backtest.New(),
		runs:           runs,
		strategyDir:    strategyDir,
		defaultCapital: defaultCapital,
	}
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	series, err := prepareSeries(req.Series, req.Options.LookbackDays)
	if err != nil {
		respondErr(c, err, http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	strat, err := h.buildStrategy(req.Config)
	if err != nil {
		respondErr(c, err, http.StatusBadRequest, "INVALID_CONFIG")
		return
	}

	result, err := h.engine.Run(series, strat, h.capital(req.InitialCapital))
	if err != nil {
		respondErr(c, err, http.StatusInternalServerError, "BACKTEST_ERROR")
		return
	}

	id := h.runs.Put(&StoredRun{Symbol: series.Symbol, Result: result})
	log.Printf("BacktestHandler: %s %s returned %.2f%% over %d bars (id %s)",
		series.Symbol, strat.Name(), result.Summary.TotalReturnPercent, series.Len(), id)

	response := models.BacktestResponse{
		ID:        id,
		Status:    "completed",
		Symbol:    series.Symbol,
		Summary:   result.Summary,
		Benchmark: analysis.ComputePotential(series),
	}
	if req.Options.IncludeTrades {
		response.Trades = result.Trades
		response.RoundTrips = result.RoundTrips
	}
	if req.Options.IncludeEquity {
		response.Equity = result.Equity
	}
	c.JSON(http.StatusOK, response)
}

// GetTrades handles GET /api/v1/backtest/:id/trades
func (h *BacktestHandler) GetTrades(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.TradesResponse{
		ID:     c.Param("id"),
		Symbol: run.Symbol,
		Count:  len(run.Result.Trades),
		Trades: run.Result.Trades,
	})
}

// GetEquity handles GET /api/v1/backtest/:id/equity
func (h *BacktestHandler) GetEquity(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     c.Param("id"),
		"symbol": run.Symbol,
		"equity": run.Result.Equity,
	})
}

func (h *BacktestHandler) lookup(c *gin.Context) (*StoredRun, bool) {
	run, ok := h.runs.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "backtest result not found or expired", map[string]any{
			"id": c.Param("id"),
		})
		return nil, false
	}
	return run, true
}

// CompareBacktests handles POST /api/v1/backtest/compare
func (h *BacktestHandler) CompareBacktests(c *gin.Context) {
	var req models.CompareBacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	series, err := prepareSeries(req.Series, req.LookbackDays)
	if err != nil {
		respondErr(c, err, http.StatusBadRequest, "INVALID_REQUEST")
		return
	}
	capital := h.capital(req.InitialCapital)

	type named struct {
		name  string
		strat strategy.Strategy
	}
	var runs []named
	var skipped []models.SkippedVariation
	if len(req.Variations) == 0 {
		for _, s := range strategy.All() {
			runs = append(runs, named{name: s.Name(), strat: s})
		}
	}
	for _, v := range req.Variations {
		strat, err := h.buildStrategy(v.Config)
		if err != nil {
			skipped = append(skipped, models.SkippedVariation{Name: v.Name, Reason: err.Error()})
			continue
		}
		runs = append(runs, named{name: v.Name, strat: strat})
	}

	comparison := make([]models.ComparisonResult, 0, len(runs))
	for _, r := range runs {
		result, err := h.engine.Run(series, r.strat, capital)
		if err != nil {
			skipped = append(skipped, models.SkippedVariation{Name: r.name, Reason: err.Error()})
			continue
		}
		comparison = append(comparison, models.ComparisonResult{
			Name:    r.name,
			ID:      h.runs.Put(&StoredRun{Symbol: series.Symbol, Result: result}),
			Summary: result.Summary,
		})
	}
	if len(comparison) == 0 {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", "no variation could be run", map[string]any{
			"skipped": skipped,
		})
		return
	}

	sort.SliceStable(comparison, func(i, j int) bool {
		return comparison[i].Summary.TotalReturnPercent > comparison[j].Summary.TotalReturnPercent
	})
	for i := range comparison {
		comparison[i].Rank = i + 1
	}

	c.JSON(http.StatusOK, models.CompareBacktestResponse{
		Symbol:     series.Symbol,
		Benchmark:  analysis.ComputePotential(series),
		Comparison: comparison,
		Skipped:    skipped,
	})
}

// Helper methods

func (h *BacktestHandler) capital(requested float64) float64 {
	if requested == 0 {
		return h.defaultCapital
	}
	return requested
}

// buildStrategy resolves a request config: the preset named by strategy_file
// is the base and the inline strategy overrides it.
func (h *BacktestHandler) buildStrategy(req models.BacktestConfig) (strategy.Strategy, error) {
	sc := config.StrategyConfig{
		Name:   req.Strategy.Name,
		Params: req.Strategy.Params,
	}

	if req.StrategyFile != "" {
		path, err := presetPath(h.strategyDir, req.StrategyFile)
		if err != nil {
			return nil, err
		}
		loaded, err := config.LoadStrategyFile(path)
		if err != nil {
			log.Printf("BacktestHandler: Failed to load strategy file %s: %v", path, err)
			return nil, fmt.Errorf("strategy_file %q: %w", req.StrategyFile, err)
		}
		sc = config.MergeStrategy(loaded, sc)
	}

	if sc.Name == "" {
		return nil, errors.New("strategy.name or strategy_file is required")
	}
	return strategy.New(sc.Name, sc.Params)
}

// prepareSeries validates the full series, then trims it to the lookback.
func prepareSeries(s model.Series, lookbackDays int) (model.Series, error) {
	if lookbackDays < 0 {
		return model.Series{}, fmt.Errorf("lookback_days must be >= 0, got %d", lookbackDays)
	}
	if err := s.Validate(); err != nil {
		return model.Series{}, err
	}
	return s.Window(lookbackDays), nil
}
