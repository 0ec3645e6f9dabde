package data

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stock-backtest/internal/model"
)

const sampleCSV = `Date,Open,High,Low,Close,Adj Close,Volume
2024-01-02,100,102,99,101,101,1000
2024-01-03,101,104,100,103,103,1500
2024-01-04,103,103,97,98,98,2500
`

func TestDecodeSeriesCSV(t *testing.T) {
	s, err := DecodeSeriesCSV(strings.NewReader(sampleCSV), "aapl")
	if err != nil {
		t.Fatalf("DecodeSeriesCSV: %v", err)
	}
	if s.Symbol != "AAPL" || s.Len() != 3 {
		t.Fatalf("series = %s with %d bars", s.Symbol, s.Len())
	}
	b := s.Bars[2]
	if b.Open != 103 || b.High != 103 || b.Low != 97 || b.Close != 98 || b.Volume != 2500 {
		t.Fatalf("bar = %+v", b)
	}
	if !b.Date.Equal(time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", b.Date)
	}
}

func TestDecodeSeriesCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing column", "date,open,high,low,close\n2024-01-02,1,1,1,1\n", `missing column "volume"`},
		{"bad number", "date,open,high,low,close,volume\n2024-01-02,x,1,1,1,5\n", "line 2: open"},
		{"bad date", "date,open,high,low,close,volume\nyesterday,1,1,1,1,5\n", "line 2: invalid date"},
		{"NaN close", "date,open,high,low,close,volume\n2024-01-02,1,1,1,1,5\n2024-01-03,1,1,1,NaN,5\n", "bar 1 close"},
		{"infinite close", "date,open,high,low,close,volume\n2024-01-02,1,1,1,Inf,5\n", "bar 0 close"},
		{"NaN high", "date,open,high,low,close,volume\n2024-01-02,1,nan,1,1,5\n", "bar 0 high"},
		{"infinite volume", "date,open,high,low,close,volume\n2024-01-02,1,1,1,1,+Inf\n", "line 2: volume"},
		{"out of order", "date,open,high,low,close,volume\n2024-01-03,1,1,1,1,5\n2024-01-02,1,1,1,1,5\n", "invalid series"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSeriesCSV(strings.NewReader(tt.in), "X")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestDecodeSeriesJSON(t *testing.T) {
	obj := `{"symbol":"msft","bars":[
		{"date":"2024-01-02","open":1,"high":2,"low":1,"close":2,"volume":10},
		{"date":"2024-01-03","open":2,"high":3,"low":2,"close":3,"volume":20}]}`
	s, err := DecodeSeriesJSON(strings.NewReader(obj))
	if err != nil {
		t.Fatalf("object form: %v", err)
	}
	if s.Symbol != "MSFT" || s.Len() != 2 || s.Last().Close != 3 {
		t.Fatalf("series = %+v", s)
	}

	arr := `[{"date":"2024-01-02T00:00:00Z","close":5,"volume":1}]`
	s, err = DecodeSeriesJSON(strings.NewReader(arr))
	if err != nil {
		t.Fatalf("array form: %v", err)
	}
	if s.Len() != 1 || s.Bars[0].Close != 5 {
		t.Fatalf("series = %+v", s)
	}

	if _, err := DecodeSeriesJSON(strings.NewReader(`[]`)); !errors.Is(err, model.ErrInvalidSeries) {
		t.Fatalf("empty err = %v, want ErrInvalidSeries", err)
	}
}

func TestLoadSeriesByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "nvda.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSeries(csvPath)
	if err != nil {
		t.Fatalf("LoadSeries csv: %v", err)
	}
	if s.Symbol != "NVDA" {
		t.Fatalf("symbol = %q, want NVDA from file name", s.Symbol)
	}

	jsonPath := filepath.Join(dir, "amd.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"date":"2024-01-02","close":5}]`), 0644); err != nil {
		t.Fatal(err)
	}
	s, err = LoadSeries(jsonPath)
	if err != nil {
		t.Fatalf("LoadSeries json: %v", err)
	}
	if s.Symbol != "AMD" {
		t.Fatalf("symbol = %q, want AMD", s.Symbol)
	}

	if _, err := LoadSeries(filepath.Join(dir, "x.txt")); err == nil {
		t.Fatalf("unsupported extension accepted")
	}
}

func TestLoadQuoteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")
	body := `{"symbol":"tsla","price":240.5,"change_percent":-1.25,"volume":900,"market_cap":7.6e11}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	q, err := LoadQuoteJSON(path)
	if err != nil {
		t.Fatalf("LoadQuoteJSON: %v", err)
	}
	if q.Symbol != "TSLA" || q.Price != 240.5 || q.ChangePercent != -1.25 || q.Volume != 900 || q.MarketCap != 7.6e11 {
		t.Fatalf("quote = %+v", q)
	}
}

func TestQuoteFromSeries(t *testing.T) {
	s, err := DecodeSeriesCSV(strings.NewReader(sampleCSV), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	q, err := QuoteFromSeries(s)
	if err != nil {
		t.Fatalf("QuoteFromSeries: %v", err)
	}
	if q.Price != 98 || q.PreviousClose != 103 || q.Change != -5 {
		t.Fatalf("quote = %+v", q)
	}
	if q.FiftyTwoWeekHigh != 104 || q.FiftyTwoWeekLow != 97 {
		t.Fatalf("52-week = %v/%v, want 104/97", q.FiftyTwoWeekHigh, q.FiftyTwoWeekLow)
	}
	if q.AvgVolume != 0 {
		t.Fatalf("avg volume = %v, want 0 with only 3 bars", q.AvgVolume)
	}
	if _, err := QuoteFromSeries(model.Series{}); err == nil {
		t.Fatalf("empty series accepted")
	}
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore[string](time.Minute, 0)
	defer s.Close()
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	id := s.Put("result")
	if v, ok := s.Get(id); !ok || v != "result" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("missing id found")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := s.Get(id); ok {
		t.Fatalf("expired entry still visible")
	}
	if n := s.Sweep(); n != 1 || s.Len() != 0 {
		t.Fatalf("Sweep = %d, Len = %d", n, s.Len())
	}
	s.Close()
}

func TestSymbolCatalog(t *testing.T) {
	c := DefaultSymbols()
	if len(c.Symbols) != 10 || c.Symbols[0].Symbol != "AAPL" {
		t.Fatalf("default catalog = %+v", c.Symbols)
	}
	if got := c.Search("micro"); len(got) != 2 {
		t.Fatalf("Search(micro) = %+v, want MSFT and AMD", got)
	}
	if got := c.Search(""); len(got) != 10 {
		t.Fatalf("Search(\"\") returned %d", len(got))
	}
	if _, ok := c.Lookup("nflx"); !ok {
		t.Fatalf("Lookup(nflx) failed")
	}

	path := filepath.Join(t.TempDir(), "nested", "symbols.json")
	if err := SaveSymbols(c, path); err != nil {
		t.Fatalf("SaveSymbols: %v", err)
	}
	loaded, err := LoadSymbols(path)
	if err != nil {
		t.Fatalf("LoadSymbols: %v", err)
	}
	if len(loaded.Symbols) != 10 {
		t.Fatalf("loaded %d symbols", len(loaded.Symbols))
	}
	if got := LoadSymbolsOrDefault(filepath.Join(t.TempDir(), "absent.json")); len(got.Symbols) != 10 {
		t.Fatalf("fallback catalog has %d symbols", len(got.Symbols))
	}
}
