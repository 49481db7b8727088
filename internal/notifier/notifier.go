package notifier

import (
	"context"
	"log"

	"StockNewsAlert/internal/model"
)

// Notifier delivers a formatted notification. A single attempt is made.
type Notifier interface {
	Send(ctx context.Context, n *model.Notification) error
}

// LogNotifier writes notifications to the log instead of sending them.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) Send(_ context.Context, n *model.Notification) error {
	log.Printf("[INFO] dry run, not sending:\nSubject: %s\n\n%s", n.Subject, n.Body)
	return nil
}
