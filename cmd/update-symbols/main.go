package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"stock-backtest/internal/data"

	"github.com/spf13/cobra"
)

func main() {
	var (
		outputPath string
		seedFile   string
		dataDir    string
		names      map[string]string
	)

	cmd := &cobra.Command{
		Use:   "update-symbols",
		Short: "Refresh the ticker catalog served by the API",
		Long: `update-symbols starts from a seed catalog (the existing file, or the built-in
list), adds every ticker that has a history file under --data, applies --name
overrides and writes the result.`,
		Example: `  update-symbols --data data/ --name NFLX="Netflix Inc."`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = data.GetDefaultSymbolsPath()
			}
			out := cmd.OutOrStdout()

			seed := seedCatalog(cmd, seedFile)
			fmt.Fprintf(out, "Loaded %d existing symbols\n", len(seed.Symbols))

			bySymbol := make(map[string]data.Symbol, len(seed.Symbols))
			for _, s := range seed.Symbols {
				bySymbol[strings.ToUpper(s.Symbol)] = s
			}

			if dataDir != "" {
				added, err := discover(dataDir, bySymbol)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Discovered %d new symbols in %s\n", added, dataDir)
			}
			for ticker, name := range names {
				ticker = strings.ToUpper(strings.TrimSpace(ticker))
				s := bySymbol[ticker]
				s.Symbol = ticker
				s.Name = name
				bySymbol[ticker] = s
			}

			catalog := &data.SymbolCatalog{
				UpdatedAt: time.Now().UTC().Format(time.RFC3339),
				Symbols:   make([]data.Symbol, 0, len(bySymbol)),
			}
			for _, s := range bySymbol {
				catalog.Symbols = append(catalog.Symbols, s)
			}
			sort.Slice(catalog.Symbols, func(i, j int) bool {
				return catalog.Symbols[i].Symbol < catalog.Symbols[j].Symbol
			})

			if err := data.SaveSymbols(catalog, outputPath); err != nil {
				return fmt.Errorf("save symbols: %w", err)
			}
			fmt.Fprintf(out, "Saved %d symbols to %s\n", len(catalog.Symbols), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: ./data/symbols.json or SYMBOLS_FILE)")
	cmd.Flags().StringVar(&seedFile, "seed", "", "Catalog to start from (default: the output file if present)")
	cmd.Flags().StringVarP(&dataDir, "data", "d", "", "Directory of .json/.csv history files to discover tickers from")
	cmd.Flags().StringToStringVar(&names, "name", nil, "Display name override, TICKER=Name (repeatable)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func seedCatalog(cmd *cobra.Command, seedFile string) *data.SymbolCatalog {
	path := seedFile
	if path == "" {
		path = data.GetDefaultSymbolsPath()
	}
	if c, err := data.LoadSymbols(path); err == nil {
		return c
	} else if seedFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load seed %s: %v, using built-in list\n", seedFile, err)
	}
	return data.DefaultSymbols()
}

// discover adds a catalog entry for every readable series file in dir whose
// ticker is not yet known, and reports how many were added.
func discover(dir string, bySymbol map[string]data.Symbol) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".json" && ext != ".csv") {
			continue
		}
		s, err := data.LoadSeries(filepath.Join(dir, e.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "  skipping %s: %v\n", e.Name(), err)
			continue
		}
		ticker := strings.ToUpper(s.Symbol)
		if _, ok := bySymbol[ticker]; ok {
			continue
		}
		bySymbol[ticker] = data.Symbol{Symbol: ticker, Name: ticker}
		added++
	}
	return added, nil
}
