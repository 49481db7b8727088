package collector

import (
	"context"

	"StockNewsAlert/internal/model"
)

// Fetcher defines the interface for fetching daily closing prices.
type Fetcher interface {
	FetchDailySeries(ctx context.Context, symbol string) (model.PriceSeries, error)
	Name() string
}
