package recorder

import (
	"time"

	"StockNewsAlert/internal/model"

	"github.com/shopspring/decimal"
)

// RunRecord is one row of the run journal.
type RunRecord struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	Ticker        string
	Issuer        string
	Threshold     decimal.Decimal
	State         model.RunState
	PreviousDate  string
	LatestDate    string
	PreviousClose decimal.Decimal
	LatestClose   decimal.Decimal
	Difference    decimal.Decimal
	Percentage    decimal.Decimal
	Increased     bool
	ArticleCount  int
	Subject       string
	Error         string
}

// FromOutcome flattens a run outcome into a journal row.
func FromOutcome(o *model.Outcome, threshold decimal.Decimal) *RunRecord {
	r := &RunRecord{
		RunID:        o.RunID,
		StartedAt:    o.StartedAt,
		FinishedAt:   o.FinishedAt,
		Ticker:       o.Ticker,
		Issuer:       o.Issuer,
		Threshold:    threshold,
		State:        o.State,
		ArticleCount: len(o.Articles),
	}
	if c := o.Change; c != nil {
		r.PreviousDate = c.PreviousDate
		r.LatestDate = c.LatestDate
		r.PreviousClose = c.PreviousClose
		r.LatestClose = c.LatestClose
		r.Difference = c.Difference
		r.Percentage = c.Percentage
		r.Increased = c.Increased
	}
	if o.Notification != nil {
		r.Subject = o.Notification.Subject
	}
	if o.Err != nil {
		r.Error = o.Err.Error()
	}
	return r
}

// Recorder keeps an audit trail of runs. Runs never read it back.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}
