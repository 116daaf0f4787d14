package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/settlement"
	md "github.com/nao1215/markdown"
)

// ChecksMarkdown renders the reconciliation of computed balances against
// the declared ones.
func ChecksMarkdown(checks []settlement.BalanceCheck) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Balance Checks")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Ticker", "Computed", "Declared", "Status"},
	}
	for _, c := range checks {
		declared := "-"
		if c.DeclaredKnown {
			declared = fmt.Sprint(c.Declared)
		}
		status := "sufficient"
		if !c.Sufficient {
			status = md.Bold("insufficient")
		}
		table.Rows = append(table.Rows, []string{
			c.Ticker,
			fmt.Sprint(c.Computed),
			declared,
			status,
		})
	}
	doc.Table(table)

	return doc.String()
}
