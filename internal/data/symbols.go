package data

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Symbol is one tradable ticker in the catalog.
type Symbol struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
}

// SymbolCatalog is the list offered to clients for search and selection.
type SymbolCatalog struct {
	UpdatedAt string   `json:"updated_at"` // ISO 8601 timestamp
	Symbols   []Symbol `json:"symbols"`
}

// DefaultSymbols is the built-in popular list.
func DefaultSymbols() *SymbolCatalog {
	return &SymbolCatalog{
		Symbols: []Symbol{
			{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ"},
			{Symbol: "GOOGL", Name: "Alphabet Inc.", Exchange: "NASDAQ"},
			{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ"},
			{Symbol: "AMZN", Name: "Amazon.com Inc.", Exchange: "NASDAQ"},
			{Symbol: "TSLA", Name: "Tesla Inc.", Exchange: "NASDAQ"},
			{Symbol: "META", Name: "Meta Platforms Inc.", Exchange: "NASDAQ"},
			{Symbol: "NVDA", Name: "NVIDIA Corporation", Exchange: "NASDAQ"},
			{Symbol: "NFLX", Name: "Netflix Inc.", Exchange: "NASDAQ"},
			{Symbol: "AMD", Name: "Advanced Micro Devices Inc.", Exchange: "NASDAQ"},
			{Symbol: "INTC", Name: "Intel Corporation", Exchange: "NASDAQ"},
		},
	}
}

// Search returns symbols whose ticker or name contains term, case-insensitively.
// An empty term returns the whole catalog.
func (c *SymbolCatalog) Search(term string) []Symbol {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Symbol, 0, len(c.Symbols))
	for _, s := range c.Symbols {
		if term == "" ||
			strings.Contains(strings.ToLower(s.Symbol), term) ||
			strings.Contains(strings.ToLower(s.Name), term) {
			out = append(out, s)
		}
	}
	return out
}

func (c *SymbolCatalog) Lookup(symbol string) (Symbol, bool) {
	for _, s := range c.Symbols {
		if strings.EqualFold(s.Symbol, symbol) {
			return s, true
		}
	}
	return Symbol{}, false
}

// LoadSymbols loads a catalog from a JSON file
func LoadSymbols(filePath string) (*SymbolCatalog, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbols file: %w", err)
	}

	var c SymbolCatalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse symbols file: %w", err)
	}
	for i := range c.Symbols {
		c.Symbols[i].Symbol = strings.ToUpper(c.Symbols[i].Symbol)
	}
	return &c, nil
}

// LoadSymbolsOrDefault falls back to the built-in list when the file is unusable.
func LoadSymbolsOrDefault(filePath string) *SymbolCatalog {
	c, err := LoadSymbols(filePath)
	if err != nil {
		log.Printf("[Symbols] %v; using built-in list", err)
		return DefaultSymbols()
	}
	return c
}

// SaveSymbols saves a catalog to a JSON file
func SaveSymbols(c *SymbolCatalog, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal symbols: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write symbols file: %w", err)
	}

	return nil
}

// GetDefaultSymbolsPath returns the default path for the symbols file
func GetDefaultSymbolsPath() string {
	if path := os.Getenv("SYMBOLS_FILE"); path != "" {
		return path
	}
	return "./data/symbols.json"
}
