package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DailyBar is one trading day of a daily time series.
type DailyBar struct {
	Date  string // YYYY-MM-DD
	Close decimal.Decimal
}

// PriceSeries maps a trading date (YYYY-MM-DD) to that day's bar.
type PriceSeries map[string]DailyBar

// Dates returns the trading dates, most recent first.
func (s PriceSeries) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	// ISO dates sort lexically.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// ChangeResult describes the move between two consecutive closes.
type ChangeResult struct {
	PreviousDate  string
	LatestDate    string
	PreviousClose decimal.Decimal
	LatestClose   decimal.Decimal
	Difference    decimal.Decimal // always >= 0
	Increased     bool
	Percentage    decimal.Decimal // rounded to 2 places
}

// Article is a news item. Empty fields mean the upstream omitted them.
type Article struct {
	Title       string
	Description string
}

// Notification is the formatted message handed to a Notifier.
type Notification struct {
	Subject string
	Body    string
}
