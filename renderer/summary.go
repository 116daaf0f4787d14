package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/settlement"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the per instrument summary: end of period signed
// balance and realized result.
func SummaryMarkdown(summary []settlement.PositionSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Position Summary")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Balance", "Realized (RUB)"},
	}
	for _, s := range summary {
		balance := fmt.Sprint(s.SignedBalance)
		if s.Oversold() {
			balance = md.Bold(balance)
		}
		table.Rows = append(table.Rows, []string{
			s.Ticker,
			balance,
			s.RealizedResult.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
