package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/settlement"
)

// ClosedMarkdown renders the closed position table, the grand total row in
// bold.
func ClosedMarkdown(closed []settlement.ClosedPosition) string {
	var b strings.Builder

	fmt.Fprint(&b, "## Closed Positions\n\n")
	if len(closed) == 0 {
		fmt.Fprintln(&b, "No position closed over the period.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Ticker | Bought (RUB) | Sold (RUB) | Fees (RUB) | Net (RUB) |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, c := range closed {
		if c.Ticker == settlement.TotalTicker {
			fmt.Fprintf(&b, "| **%s** | **%s** | **%s** | **%s** | **%s** |\n",
				c.Ticker,
				c.TotalBuys.StringFixed(),
				c.TotalSells.StringFixed(),
				c.TotalCommission.StringFixed(),
				c.NetResult.SignedString(),
			)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			c.Ticker,
			c.TotalBuys.StringFixed(),
			c.TotalSells.StringFixed(),
			c.TotalCommission.StringFixed(),
			c.NetResult.SignedString(),
		)
	}

	return b.String()
}
