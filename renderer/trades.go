package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/settlement"
)

// TradesMarkdown renders the settled trade table, one row per original or
// borrowed trade, in settlement date order.
func TradesMarkdown(trades []settlement.SettledTrade) string {
	var b strings.Builder

	fmt.Fprint(&b, "## Settled Trades\n\n")
	fmt.Fprintln(&b, "| Ticker | Operation | Qty | Settled | Rate | Amount (RUB) | Fee (RUB) | Net (RUB) |")
	fmt.Fprintln(&b, "|:---|:---|---:|:---|---:|---:|---:|---:|")
	for _, t := range trades {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s | %s | %s |\n",
			t.Ticker,
			t.Operation,
			t.Quantity,
			t.SettlementDate,
			rate(t.Rate),
			t.RubAmount.StringFixed(),
			t.RubCommission.StringFixed(),
			t.NetResult.SignedString(),
		)
	}

	return b.String()
}
