package notifier

import (
	"fmt"
	"strings"

	"StockNewsAlert/internal/model"
)

const (
	upArrow   = "🔺"
	downArrow = "🔻"

	NoTitle       = "No Title Available"
	NoDescription = "No description available."
)

// FormatSubject renders "{ticker}: {arrow}{difference}% Change".
func FormatSubject(ticker string, change *model.ChangeResult) string {
	arrow := downArrow
	if change.Increased {
		arrow = upArrow
	}
	return fmt.Sprintf("%s: %s%s%% Change", ticker, arrow, change.Difference.StringFixed(2))
}

// FormatBody renders each article as a title line and a description line,
// separated by a blank line.
func FormatBody(articles []model.Article) string {
	parts := make([]string, 0, len(articles))
	for _, a := range articles {
		title := a.Title
		if title == "" {
			title = NoTitle
		}
		desc := a.Description
		if desc == "" {
			desc = NoDescription
		}
		parts = append(parts, fmt.Sprintf("📰 %s\n%s", title, desc))
	}
	return strings.Join(parts, "\n\n")
}

// Format builds the notification for a qualifying run.
func Format(ticker string, change *model.ChangeResult, articles []model.Article) *model.Notification {
	return &model.Notification{
		Subject: FormatSubject(ticker, change),
		Body:    FormatBody(articles),
	}
}
