package model

import "time"

// FetchStatus tells apart "nothing to report" from "could not ask".
type FetchStatus string

const (
	FetchOK     FetchStatus = "OK"
	FetchEmpty  FetchStatus = "EMPTY"
	FetchFailed FetchStatus = "FAILED"
)

// PriceResult is the outcome of a price fetch.
type PriceResult struct {
	Status FetchStatus
	Source string
	Series PriceSeries
	Err    error
}

// NewsResult is the outcome of a news fetch.
type NewsResult struct {
	Status   FetchStatus
	Source   string
	Articles []Article
	Err      error
}

// RunState is the terminal state a pipeline run ended in.
type RunState string

const (
	StatePriceFetchFailed   RunState = "PRICE_FETCH_FAILED"
	StateInsufficientData   RunState = "INSUFFICIENT_DATA"
	StateInvalidInput       RunState = "INVALID_INPUT"
	StateBelowThreshold     RunState = "BELOW_THRESHOLD"
	StateNoNews             RunState = "NO_NEWS"
	StateNotificationSent   RunState = "NOTIFICATION_SENT"
	StateNotificationFailed RunState = "NOTIFICATION_FAILED"
)

// Outcome is everything a single run produced.
type Outcome struct {
	RunID        string
	Ticker       string
	Issuer       string
	State        RunState
	Change       *ChangeResult
	Articles     []Article
	Notification *Notification
	Err          error
	StartedAt    time.Time
	FinishedAt   time.Time
}
