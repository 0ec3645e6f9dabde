package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"stock-backtest/internal/api"
	"stock-backtest/internal/api/handlers"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/portfolio"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = loaded
		log.Printf("Loaded config from %s", path)
	}
	cfg.ApplyEnv()
	ttl, err := cfg.TTL()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	strategyDir := handlers.StrategyDir()
	if info, err := os.Stat(strategyDir); err == nil && info.IsDir() {
		log.Printf("Strategy directory found: %s", strategyDir)
	} else {
		log.Printf("Strategy directory not found at: %s (error: %v)", strategyDir, err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	runs := data.NewStore[*handlers.StoredRun](ttl, ttl/4)
	defer runs.Close()

	router := api.NewRouter(api.Deps{
		Config:      cfg,
		Runs:        runs,
		Portfolios:  portfolio.NewRegistry(),
		Symbols:     data.LoadSymbolsOrDefault(data.GetDefaultSymbolsPath()),
		StrategyDir: strategyDir,
	})

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(404, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
				return
			}
			c.File(staticDir + "/index.html")
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting API server on %s (env %s, results kept %s)", addr, cfg.Server.Env, ttl)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
