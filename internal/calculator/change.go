package calculator

import (
	"errors"
	"fmt"

	"StockNewsAlert/internal/model"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput is returned when a change cannot be computed from the given closes.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientData is returned when fewer than two trading days are available.
	ErrInsufficientData = errors.New("insufficient data")
)

var hundred = decimal.NewFromInt(100)

// CalculateChange computes the move from previous to latest.
// Percentage is |latest-previous|*100/previous rounded to 2 places.
func CalculateChange(previous, latest decimal.Decimal) (*model.ChangeResult, error) {
	if !previous.IsPositive() {
		return nil, fmt.Errorf("%w: previous close must be positive, got %s", ErrInvalidInput, previous)
	}
	if latest.IsNegative() {
		return nil, fmt.Errorf("%w: latest close must not be negative, got %s", ErrInvalidInput, latest)
	}
	diff := latest.Sub(previous).Abs()
	return &model.ChangeResult{
		PreviousClose: previous,
		LatestClose:   latest,
		Difference:    diff,
		Increased:     latest.GreaterThan(previous),
		Percentage:    diff.Mul(hundred).Div(previous).Round(2),
	}, nil
}

// LatestTwo returns the two most recent bars of the series.
func LatestTwo(series model.PriceSeries) (latest, previous model.DailyBar, err error) {
	dates := series.Dates()
	if len(dates) < 2 {
		return latest, previous, fmt.Errorf("%w: need 2 trading days, have %d", ErrInsufficientData, len(dates))
	}
	latest = series[dates[0]]
	previous = series[dates[1]]
	if latest.Date == "" {
		latest.Date = dates[0]
	}
	if previous.Date == "" {
		previous.Date = dates[1]
	}
	return latest, previous, nil
}

// DayOverDay picks the two most recent closes and computes their change.
func DayOverDay(series model.PriceSeries) (*model.ChangeResult, error) {
	latest, previous, err := LatestTwo(series)
	if err != nil {
		return nil, err
	}
	change, err := CalculateChange(previous.Close, latest.Close)
	if err != nil {
		return nil, fmt.Errorf("%s -> %s: %w", previous.Date, latest.Date, err)
	}
	change.PreviousDate = previous.Date
	change.LatestDate = latest.Date
	return change, nil
}
