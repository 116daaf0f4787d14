package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/settlement"
)

// ReportMarkdown composes the full period review: settled trades, the per
// instrument summary, closed positions, and the balance checks when the
// report carries them. Uncovered shortfalls come first, they are the thing
// to act on.
func ReportMarkdown(r *settlement.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Settlement Report (%s)\n\n", r.Currency)

	if len(r.Residuals) > 0 {
		tickers := make([]string, 0, len(r.Residuals))
		for ticker := range r.Residuals {
			tickers = append(tickers, ticker)
		}
		slices.Sort(tickers)
		for _, ticker := range tickers {
			fmt.Fprintf(&b, "> **%s is %d unit(s) short**: prior period purchases do not cover the sales. Feed more prior period files in.\n", ticker, r.Residuals[ticker])
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, TradesMarkdown(r.Trades))
	fmt.Fprintln(&b, SummaryMarkdown(r.Summary))
	fmt.Fprintln(&b, ClosedMarkdown(r.Closed))
	if len(r.Checks) > 0 {
		fmt.Fprintln(&b, ChecksMarkdown(r.Checks))
	}

	return b.String()
}
