package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"StockNewsAlert/internal/calculator"
	"StockNewsAlert/internal/collector"
	"StockNewsAlert/internal/model"
	"StockNewsAlert/internal/news"
	"StockNewsAlert/internal/notifier"
	"StockNewsAlert/internal/recorder"
	"StockNewsAlert/internal/strategy"

	"github.com/google/uuid"
)

// Pipeline runs fetch → compare → gate → news → format → send for one ticker.
type Pipeline struct {
	Ticker    string
	Issuer    string
	Collector *collector.Collector
	Gate      *strategy.Gate
	News      *news.Fetcher
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder

	now func() time.Time
}

// New creates a Pipeline. A nil recorder disables the run journal.
func New(ticker, issuer string, col *collector.Collector, gate *strategy.Gate, nf *news.Fetcher, n notifier.Notifier, rec recorder.Recorder) *Pipeline {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Pipeline{
		Ticker:    ticker,
		Issuer:    issuer,
		Collector: col,
		Gate:      gate,
		News:      nf,
		Notifier:  n,
		Recorder:  rec,
		now:       time.Now,
	}
}

// Run executes one pass and returns its outcome. It never returns an error:
// every failure ends the run in a terminal state and is logged.
func (p *Pipeline) Run(ctx context.Context) *model.Outcome {
	o := &model.Outcome{
		RunID:     uuid.NewString(),
		Ticker:    p.Ticker,
		Issuer:    p.Issuer,
		StartedAt: p.now(),
	}
	log.Printf("[INFO] run %s: checking %s (threshold %s%%)", o.RunID, p.Ticker, p.Gate.Threshold)

	p.execute(ctx, o)

	o.FinishedAt = p.now()
	log.Printf("[INFO] run %s finished: %s", o.RunID, o.State)
	if err := p.Recorder.RecordRun(recorder.FromOutcome(o, p.Gate.Threshold)); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	return o
}

func (p *Pipeline) execute(ctx context.Context, o *model.Outcome) {
	prices := p.Collector.Collect(ctx)
	if prices.Status == model.FetchFailed {
		o.State = model.StatePriceFetchFailed
		o.Err = prices.Err
		return
	}

	change, err := calculator.DayOverDay(prices.Series)
	if err != nil {
		o.Err = err
		if errors.Is(err, calculator.ErrInvalidInput) {
			log.Printf("[WARN] cannot compare closes: %v", err)
			o.State = model.StateInvalidInput
		} else {
			log.Printf("[WARN] not enough data available: %v", err)
			o.State = model.StateInsufficientData
		}
		return
	}
	o.Change = change
	log.Printf("[INFO] %s %s -> %s: %s -> %s, change %s (%s%%), increased=%v",
		p.Ticker, change.PreviousDate, change.LatestDate, change.PreviousClose, change.LatestClose,
		change.Difference, change.Percentage, change.Increased)

	if !p.Gate.Passes(change) {
		log.Printf("[INFO] %s%% is below the %s%% threshold, nothing to send", change.Percentage, p.Gate.Threshold)
		o.State = model.StateBelowThreshold
		return
	}

	newsRes := p.News.Fetch(ctx, p.Issuer)
	if newsRes.Status != model.FetchOK {
		if newsRes.Status == model.FetchFailed {
			log.Printf("[WARN] no news available, fetch failed: %v", newsRes.Err)
		} else {
			log.Printf("[WARN] no relevant news found for %q", p.Issuer)
		}
		o.State = model.StateNoNews
		o.Err = newsRes.Err
		return
	}
	o.Articles = newsRes.Articles

	o.Notification = notifier.Format(p.Ticker, change, newsRes.Articles)
	if err := p.Notifier.Send(ctx, o.Notification); err != nil {
		log.Printf("[ERROR] failed to send notification: %v", err)
		o.State = model.StateNotificationFailed
		o.Err = err
		return
	}
	o.State = model.StateNotificationSent
}
