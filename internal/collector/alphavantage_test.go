package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const avPayload = `{
  "Meta Data": {"2. Symbol": "TSLA"},
  "Time Series (Daily)": {
    "2024-01-02": {"1. open": "98.10", "2. high": "101.00", "3. low": "97.50", "4. close": "100.00", "5. volume": "123456"},
    "2024-01-01": {"1. open": "94.00", "2. high": "96.00", "3. low": "93.20", "4. close": "95.00", "5. volume": "654321"}
  }
}`

func newAVServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("function") != "TIME_SERIES_DAILY" || q.Get("symbol") != "TSLA" || q.Get("apikey") != "test-key" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAlphaVantage_FetchDailySeries(t *testing.T) {
	srv := newAVServer(t, http.StatusOK, avPayload)
	f := NewAlphaVantageFetcher(srv.URL, "test-key", srv.Client())

	series, err := f.FetchDailySeries(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 days, got %d", len(series))
	}
	bar := series["2024-01-02"]
	if !bar.Close.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("unexpected close %s", bar.Close)
	}
	if bar.Date != "2024-01-02" {
		t.Errorf("unexpected date %q", bar.Date)
	}
}

func TestAlphaVantage_MissingSeriesIsEmpty(t *testing.T) {
	srv := newAVServer(t, http.StatusOK, `{}`)
	f := NewAlphaVantageFetcher(srv.URL, "test-key", srv.Client())
	series, err := f.FetchDailySeries(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("expected empty series, got %d", len(series))
	}
}

func TestAlphaVantage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"http status", http.StatusInternalServerError, "oops", "status 500"},
		{"bad json", http.StatusOK, "{not json", "decode"},
		{"error message", http.StatusOK, `{"Error Message": "Invalid API call."}`, "Invalid API call."},
		{"rate limit note", http.StatusOK, `{"Note": "Thank you for using Alpha Vantage!"}`, "Thank you"},
		{"information", http.StatusOK, `{"Information": "premium endpoint"}`, "premium endpoint"},
		{"bad close", http.StatusOK, `{"Time Series (Daily)": {"2024-01-02": {"4. close": "n/a"}}}`, "parse close"},
	}
	for _, tt := range tests {
		srv := newAVServer(t, tt.status, tt.body)
		f := NewAlphaVantageFetcher(srv.URL, "test-key", srv.Client())
		_, err := f.FetchDailySeries(context.Background(), "TSLA")
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestAlphaVantage_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := NewAlphaVantageFetcher(url, "test-key", http.DefaultClient)
	if _, err := f.FetchDailySeries(context.Background(), "TSLA"); err == nil {
		t.Fatal("expected transport error")
	}
}
