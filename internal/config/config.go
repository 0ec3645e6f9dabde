package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stock-backtest/internal/strategy"

	"gopkg.in/yaml.v3"
)

const (
	DefaultInitialCapital = 10000
	DefaultPortfolioCash  = 100000
	DefaultPort           = "8080"
	DefaultResultTTL      = "1h"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load the strategy from a separate YAML (e.g. strategies/*.yaml).
	// Fields set under Strategy override the file.
	StrategyFile string          `yaml:"strategy_file"`
	Strategy     StrategyConfig  `yaml:"strategy"`
	Backtest     BacktestConfig  `yaml:"backtest"`
	Portfolio    PortfolioConfig `yaml:"portfolio"`
	Server       ServerConfig    `yaml:"server"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

type BacktestConfig struct {
	InitialCapital float64 `yaml:"initial_capital"`
	// LookbackDays trims the series to its trailing bars; 0 keeps everything.
	LookbackDays int `yaml:"lookback_days"`
}

type PortfolioConfig struct {
	InitialCash float64 `yaml:"initial_cash"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	Env            string   `yaml:"env"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	ResultTTL      string   `yaml:"result_ttl"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	c := &Config{Strategy: StrategyConfig{Name: string(strategy.KindMomentum)}}
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it or fill defaults.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.StrategyFile != "" {
		strategyPath := c.StrategyFile
		if !filepath.IsAbs(strategyPath) {
			// Relative to the config file first, then to the working directory.
			cand := filepath.Join(filepath.Dir(path), strategyPath)
			if _, err := os.Stat(cand); err == nil {
				strategyPath = cand
			}
		}
		loaded, err := LoadStrategyFile(strategyPath)
		if err != nil {
			return nil, err
		}
		c.Strategy = MergeStrategy(loaded, c.Strategy)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Backtest.InitialCapital == 0 {
		c.Backtest.InitialCapital = DefaultInitialCapital
	}
	if c.Portfolio.InitialCash == 0 {
		c.Portfolio.InitialCash = DefaultPortfolioCash
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.ResultTTL == "" {
		c.Server.ResultTTL = DefaultResultTTL
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
}

// ApplyEnv overlays server settings from API_PORT, API_ENV and RESULT_TTL.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("RESULT_TTL"); v != "" {
		c.Server.ResultTTL = v
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	if _, err := c.BuildStrategy(); err != nil {
		return fmt.Errorf("strategy config invalid: %w", err)
	}
	if !(c.Backtest.InitialCapital > 0) {
		return fmt.Errorf("backtest.initial_capital must be > 0, got %v", c.Backtest.InitialCapital)
	}
	if c.Backtest.LookbackDays < 0 {
		return fmt.Errorf("backtest.lookback_days must be >= 0, got %d", c.Backtest.LookbackDays)
	}
	if c.Portfolio.InitialCash < 0 {
		return fmt.Errorf("portfolio.initial_cash must be >= 0, got %v", c.Portfolio.InitialCash)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// BuildStrategy constructs the configured strategy.
func (c *Config) BuildStrategy() (strategy.Strategy, error) {
	return strategy.New(c.Strategy.Name, c.Strategy.Params)
}

// TTL parses server.result_ttl.
func (c *Config) TTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.ResultTTL)
	if err != nil {
		return 0, fmt.Errorf("server.result_ttl: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("server.result_ttl must be > 0, got %s", c.Server.ResultTTL)
	}
	return d, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

// Preset is a strategy file: a top-level `strategy` block and an optional
// display name.
type Preset struct {
	Name     string         `yaml:"name"`
	Strategy StrategyConfig `yaml:"strategy"`
}

func LoadPreset(path string) (Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, err
	}
	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Preset{}, err
	}
	if p.Strategy.Name == "" {
		return Preset{}, fmt.Errorf("%s: strategy.name is required", path)
	}
	return p, nil
}

// LoadStrategyFile reads the strategy block of a preset file.
func LoadStrategyFile(path string) (StrategyConfig, error) {
	p, err := LoadPreset(path)
	if err != nil {
		return StrategyConfig{}, err
	}
	return p.Strategy, nil
}

// MergeStrategy overlays override onto base: a non-empty name replaces the
// base name and override params replace base params key by key.
// This is used when loading a strategy file and then applying overrides from the request.
func MergeStrategy(base, override StrategyConfig) StrategyConfig {
	out := StrategyConfig{Name: base.Name}
	if override.Name != "" {
		out.Name = override.Name
	}
	if len(base.Params)+len(override.Params) > 0 {
		out.Params = make(map[string]any, len(base.Params)+len(override.Params))
		for k, v := range base.Params {
			out.Params[k] = v
		}
		for k, v := range override.Params {
			out.Params[k] = v
		}
	}
	return out
}
