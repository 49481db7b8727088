package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"StockNewsAlert/internal/model"

	"github.com/shopspring/decimal"
)

// AlphaVantageFetcher implements Fetcher using the TIME_SERIES_DAILY endpoint.
type AlphaVantageFetcher struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// NewAlphaVantageFetcher creates a fetcher against the given query endpoint.
func NewAlphaVantageFetcher(endpoint, apiKey string, client *http.Client) *AlphaVantageFetcher {
	return &AlphaVantageFetcher{Endpoint: endpoint, APIKey: apiKey, Client: client}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avDailyResponse is the TIME_SERIES_DAILY payload. Throttling and bad keys
// come back as 200 with one of the message fields set.
type avDailyResponse struct {
	TimeSeries   map[string]avDailyBar `json:"Time Series (Daily)"`
	Note         string                `json:"Note"`
	Information  string                `json:"Information"`
	ErrorMessage string                `json:"Error Message"`
}

type avDailyBar struct {
	Close string `json:"4. close"`
}

func (f *AlphaVantageFetcher) FetchDailySeries(ctx context.Context, symbol string) (model.PriceSeries, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("apikey", f.APIKey)

	req, err := http.NewRequestWithContext(ctx, "GET", f.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	var raw avDailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	switch {
	case raw.ErrorMessage != "":
		return nil, fmt.Errorf("alphavantage api error: %s", raw.ErrorMessage)
	case raw.Note != "":
		return nil, fmt.Errorf("alphavantage api note: %s", raw.Note)
	case raw.Information != "":
		return nil, fmt.Errorf("alphavantage api information: %s", raw.Information)
	}

	series := make(model.PriceSeries, len(raw.TimeSeries))
	for date, b := range raw.TimeSeries {
		closePrice, err := decimal.NewFromString(b.Close)
		if err != nil {
			return nil, fmt.Errorf("alphavantage: parse close for %s: %w", date, err)
		}
		series[date] = model.DailyBar{Date: date, Close: closePrice}
	}
	return series, nil
}
