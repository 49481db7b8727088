package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"StockNewsAlert/internal/recorder"
)

func printRuns(out io.Writer, runs []recorder.RunRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Started\tTicker\tLatest\tChange\tState\tDetail")
	for _, r := range runs {
		change := "-"
		if r.LatestDate != "" {
			sign := "-"
			switch {
			case r.Increased:
				sign = "+"
			case r.Difference.IsZero():
				sign = ""
			}
			change = fmt.Sprintf("%s%s%%", sign, r.Percentage.StringFixed(2))
		}
		detail := r.Error
		if detail == "" {
			detail = r.Subject
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Format("2006-01-02 15:04"), r.Ticker, r.LatestDate, change, r.State, detail)
	}
	w.Flush()
}
