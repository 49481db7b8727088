package collector

import (
	"context"
	"log"

	"StockNewsAlert/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series model.PriceSeries
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailySeries(_ context.Context, _ string) (model.PriceSeries, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Series, nil
}

// Collector fetches the daily series for one symbol and classifies the result.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol}
}

// Collect fetches the price series. Fetch failures are logged and returned as
// a FetchFailed result, never as an error.
func (c *Collector) Collect(ctx context.Context) *model.PriceResult {
	res := &model.PriceResult{Source: c.Fetcher.Name()}
	series, err := c.Fetcher.FetchDailySeries(ctx, c.Symbol)
	switch {
	case err != nil:
		log.Printf("[ERROR] fetch %s prices from %s: %v", c.Symbol, res.Source, err)
		res.Status = model.FetchFailed
		res.Err = err
		res.Series = model.PriceSeries{}
	case len(series) == 0:
		res.Status = model.FetchEmpty
		res.Series = model.PriceSeries{}
	default:
		res.Status = model.FetchOK
		res.Series = series
	}
	return res
}
