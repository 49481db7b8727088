package pipeline

import (
	"context"
	"errors"
	"net/textproto"
	"testing"
	"time"

	"StockNewsAlert/internal/collector"
	"StockNewsAlert/internal/model"
	"StockNewsAlert/internal/news"
	"StockNewsAlert/internal/recorder"
	"StockNewsAlert/internal/strategy"

	"github.com/shopspring/decimal"
)

type fakeNews struct {
	articles []model.Article
	err      error
	calls    int
}

func (f *fakeNews) Name() string { return "fake-news" }

func (f *fakeNews) Search(_ context.Context, _ string) ([]model.Article, error) {
	f.calls++
	return f.articles, f.err
}

type fakeNotifier struct {
	err  error
	sent []*model.Notification
}

func (f *fakeNotifier) Send(_ context.Context, n *model.Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

type memRecorder struct {
	runs []*recorder.RunRecord
}

func (m *memRecorder) RecordRun(r *recorder.RunRecord) error {
	m.runs = append(m.runs, r)
	return nil
}
func (m *memRecorder) RecentRuns(int) ([]recorder.RunRecord, error) { return nil, nil }
func (m *memRecorder) Close() error                                 { return nil }

type harness struct {
	prices   *collector.MockFetcher
	news     *fakeNews
	notifier *fakeNotifier
	rec      *memRecorder
	p        *Pipeline
}

func newHarness(series model.PriceSeries, threshold float64) *harness {
	h := &harness{
		prices:   &collector.MockFetcher{Series: series},
		news:     &fakeNews{},
		notifier: &fakeNotifier{},
		rec:      &memRecorder{},
	}
	h.p = New("TSLA", "Tesla Inc",
		collector.NewCollector(h.prices, "TSLA"),
		strategy.NewGate(threshold),
		news.NewFetcher(h.news),
		h.notifier,
		h.rec,
	)
	clock := time.Date(2024, 1, 2, 22, 0, 0, 0, time.UTC)
	h.p.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return h
}

func series(closes map[string]string) model.PriceSeries {
	s := model.PriceSeries{}
	for date, c := range closes {
		s[date] = model.DailyBar{Date: date, Close: decimal.RequireFromString(c)}
	}
	return s
}

func TestRun_ProceedsToNewsAndSends(t *testing.T) {
	h := newHarness(series(map[string]string{"2024-01-02": "100.00", "2024-01-01": "95.00"}), 1.0)
	h.news.articles = []model.Article{
		{Title: "Tesla Inc shares jump", Description: "Deliveries beat."},
		{Title: "Tesla Inc opens plant"},
		{Title: "Third"},
		{Title: "Fourth"},
	}

	o := h.p.Run(context.Background())

	if o.State != model.StateNotificationSent {
		t.Fatalf("expected %s, got %s (err=%v)", model.StateNotificationSent, o.State, o.Err)
	}
	if !o.Change.Percentage.Equal(decimal.RequireFromString("5.26")) || !o.Change.Increased {
		t.Errorf("unexpected change %+v", o.Change)
	}
	if h.news.calls != 1 {
		t.Errorf("expected one news fetch, got %d", h.news.calls)
	}
	if len(h.notifier.sent) != 1 {
		t.Fatalf("expected exactly one email, got %d", len(h.notifier.sent))
	}
	if len(o.Articles) != 3 {
		t.Errorf("expected 3 articles, got %d", len(o.Articles))
	}
	n := h.notifier.sent[0]
	if n.Subject != "TSLA: 🔺5.00% Change" {
		t.Errorf("unexpected subject %q", n.Subject)
	}
	want := "📰 Tesla Inc shares jump\nDeliveries beat.\n\n📰 Tesla Inc opens plant\nNo description available.\n\n📰 Third\nNo description available."
	if n.Body != want {
		t.Errorf("unexpected body:\n%s", n.Body)
	}
	if o.RunID == "" || !o.FinishedAt.After(o.StartedAt) {
		t.Errorf("run metadata not set: %+v", o)
	}
}

func TestRun_BelowThreshold(t *testing.T) {
	h := newHarness(series(map[string]string{"2024-01-02": "100.00", "2024-01-01": "99.50"}), 5.0)

	o := h.p.Run(context.Background())

	if o.State != model.StateBelowThreshold {
		t.Fatalf("expected %s, got %s", model.StateBelowThreshold, o.State)
	}
	if !o.Change.Percentage.Equal(decimal.RequireFromString("0.50")) {
		t.Errorf("expected 0.50, got %s", o.Change.Percentage)
	}
	if h.news.calls != 0 || len(h.notifier.sent) != 0 {
		t.Errorf("no news fetch or email expected: news=%d emails=%d", h.news.calls, len(h.notifier.sent))
	}
}

func TestRun_ThresholdBoundaryInclusive(t *testing.T) {
	// 1.00 / 100 = exactly 1.00%
	h := newHarness(series(map[string]string{"2024-01-02": "101", "2024-01-01": "100"}), 1.0)
	h.news.articles = []model.Article{{Title: "t"}}

	if o := h.p.Run(context.Background()); o.State != model.StateNotificationSent {
		t.Fatalf("boundary should pass, got %s", o.State)
	}
}

func TestRun_InsufficientData(t *testing.T) {
	h := newHarness(series(map[string]string{"2024-01-02": "100.00"}), 1.0)

	o := h.p.Run(context.Background())

	if o.State != model.StateInsufficientData {
		t.Fatalf("expected %s, got %s", model.StateInsufficientData, o.State)
	}
	if o.Change != nil || h.news.calls != 0 || len(h.notifier.sent) != 0 {
		t.Error("run should stop before computing a change")
	}
}

func TestRun_EmptySeries(t *testing.T) {
	h := newHarness(nil, 1.0)

	if o := h.p.Run(context.Background()); o.State != model.StateInsufficientData {
		t.Fatalf("expected %s, got %s", model.StateInsufficientData, o.State)
	}
}

func TestRun_PriceFetchFailed(t *testing.T) {
	h := newHarness(nil, 1.0)
	boom := errors.New("alphavantage: status 503")
	h.prices.Err = boom

	o := h.p.Run(context.Background())

	if o.State != model.StatePriceFetchFailed {
		t.Fatalf("expected %s, got %s", model.StatePriceFetchFailed, o.State)
	}
	if !errors.Is(o.Err, boom) {
		t.Errorf("expected transport error, got %v", o.Err)
	}
	if h.prices.Calls != 1 {
		t.Errorf("no retry expected, got %d calls", h.prices.Calls)
	}
}

func TestRun_ZeroPreviousClose(t *testing.T) {
	h := newHarness(series(map[string]string{"2024-01-02": "100.00", "2024-01-01": "0"}), 1.0)

	o := h.p.Run(context.Background())

	if o.State != model.StateInvalidInput {
		t.Fatalf("expected %s, got %s", model.StateInvalidInput, o.State)
	}
	if h.news.calls != 0 {
		t.Error("no news fetch expected")
	}
}

func TestRun_NoNews(t *testing.T) {
	h := newHarness(series(map[string]string{"2024-01-02": "100.00", "2024-01-01": "95.00"}), 1.0)

	o := h.p.Run(context.Background())

	if o.State != model.StateNoNews {
		t.Fatalf("expected %s, got %s", model.StateNoNews, o.State)
	}
	if o.Err != nil {
		t.Errorf("empty news is not an error, got %v", o.Err)
	}
	if len(h.notifier.sent) != 0 {
		t.Error("no email expected")
	}
}

func TestRun_NewsFetchFailed(t *testing.T) {
	h := newHarness(series(map[string]string{"2024-01-02": "100.00", "2024-01-01": "95.00"}), 1.0)
	h.news.err = errors.New("newsapi: status 429")

	o := h.p.Run(context.Background())

	if o.State != model.StateNoNews {
		t.Fatalf("expected %s, got %s", model.StateNoNews, o.State)
	}
	if o.Err == nil {
		t.Error("failed fetch should be distinguishable from empty news")
	}
	if len(h.notifier.sent) != 0 {
		t.Error("no email expected")
	}
}

func TestRun_NotificationFailed(t *testing.T) {
	h := newHarness(series(map[string]string{"2024-01-02": "100.00", "2024-01-01": "95.00"}), 1.0)
	h.news.articles = []model.Article{{Title: "one"}, {Title: "two"}}
	protoErr := &textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"}
	h.notifier.err = protoErr

	o := h.p.Run(context.Background())

	if o.State != model.StateNotificationFailed {
		t.Fatalf("expected %s, got %s", model.StateNotificationFailed, o.State)
	}
	if !errors.Is(o.Err, protoErr) {
		t.Errorf("expected protocol error, got %v", o.Err)
	}
	if len(h.notifier.sent) != 1 {
		t.Errorf("expected a single attempt, got %d", len(h.notifier.sent))
	}
	if len(o.Articles) != 2 {
		t.Errorf("expected 2 articles, got %d", len(o.Articles))
	}
}

func TestRun_RecordsEveryOutcome(t *testing.T) {
	h := newHarness(series(map[string]string{"2024-01-02": "100.00", "2024-01-01": "99.50"}), 5.0)

	first := h.p.Run(context.Background())
	second := h.p.Run(context.Background())

	if len(h.rec.runs) != 2 {
		t.Fatalf("expected 2 journal rows, got %d", len(h.rec.runs))
	}
	if first.RunID == second.RunID {
		t.Error("run ids must be unique")
	}
	r := h.rec.runs[0]
	if r.RunID != first.RunID || r.State != model.StateBelowThreshold || r.Ticker != "TSLA" {
		t.Errorf("unexpected journal row %+v", r)
	}
	if !r.Threshold.Equal(decimal.NewFromInt(5)) || !r.Percentage.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("unexpected threshold/percentage %s/%s", r.Threshold, r.Percentage)
	}
}
