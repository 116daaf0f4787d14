package settlement

import (
	"slices"

	"github.com/shopspring/decimal"
)

// PositionSummary is the per instrument outcome of a settled trade set.
type PositionSummary struct {
	Ticker         string
	SignedBalance  int64 // net units held at end of period, negative means oversold
	RealizedResult Money // sum of net results, rounded once more after summation
}

// Oversold reports a position that sold more units than the period bought.
func (s PositionSummary) Oversold() bool { return s.SignedBalance < 0 }

// Summarize groups settled trades by ticker, adding signed quantities and
// net results. Tickers come back in lexicographic order.
//
// The balance adds +quantity for purchases and -quantity for everything
// else, so a period that sells more than it bought goes negative, which is
// what triggers short coverage.
func Summarize(trades []SettledTrade) []PositionSummary {
	type acc struct {
		balance int64
		result  decimal.Decimal
	}
	accs := make(map[string]*acc)
	var tickers []string
	for _, t := range trades {
		a := accs[t.Ticker]
		if a == nil {
			a = &acc{}
			accs[t.Ticker] = a
			tickers = append(tickers, t.Ticker)
		}
		a.balance += t.SignedQuantity()
		a.result = a.result.Add(t.NetResult.Decimal())
	}
	slices.Sort(tickers)

	summary := make([]PositionSummary, 0, len(tickers))
	for _, ticker := range tickers {
		a := accs[ticker]
		summary = append(summary, PositionSummary{
			Ticker:         ticker,
			SignedBalance:  a.balance,
			RealizedResult: rub(round2(a.result)),
		})
	}
	return summary
}
