package settlement

import "slices"

// BalanceCheck compares a computed end of period balance with the balance
// the broker report declares for the same ticker.
type BalanceCheck struct {
	Ticker        string
	Computed      int64
	Declared      int64
	DeclaredKnown bool // false when the report declares nothing for the ticker
	Sufficient    bool
}

// CheckBalances reconciles computed summaries against declared balances,
// one check per ticker appearing on either side, in lexicographic order.
//
// A ticker is sufficient when its computed balance is zero and nothing was
// declared, or when both balances agree exactly. A declared ticker with no
// trades reconciles against a computed zero.
func CheckBalances(summary []PositionSummary, declared map[string]int64) []BalanceCheck {
	computed := make(map[string]int64, len(summary))
	tickers := make([]string, 0, len(summary)+len(declared))
	for _, s := range summary {
		computed[s.Ticker] = s.SignedBalance
		tickers = append(tickers, s.Ticker)
	}
	for ticker := range declared {
		if _, ok := computed[ticker]; !ok {
			tickers = append(tickers, ticker)
		}
	}
	slices.Sort(tickers)

	checks := make([]BalanceCheck, 0, len(tickers))
	for _, ticker := range tickers {
		c := computed[ticker]
		d, known := declared[ticker]
		checks = append(checks, BalanceCheck{
			Ticker:        ticker,
			Computed:      c,
			Declared:      d,
			DeclaredKnown: known,
			Sufficient:    (c == 0 && !known) || (known && c == d),
		})
	}
	return checks
}

// Insufficient returns the checks that failed reconciliation.
func Insufficient(checks []BalanceCheck) []BalanceCheck {
	var failed []BalanceCheck
	for _, c := range checks {
		if !c.Sufficient {
			failed = append(failed, c)
		}
	}
	return failed
}
