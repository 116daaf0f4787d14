package settlement

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// Pipeline owns one run's configuration and reference inputs: the trading
// currency, the rate table, the prior period lot pool and the declared
// balances. Trades flow through Run.
type Pipeline struct {
	Currency string           // trading currency, rows in any other are skipped
	Rates    *RateTable       // daily rates for Currency
	Prior    []Trade          // purchase lot pool for short coverage, may be nil
	Declared map[string]int64 // declared balances for reconciliation, may be nil
	Log      zerolog.Logger
}

// NewPipeline returns a pipeline over the default trading currency with
// diagnostics disabled.
func NewPipeline(rates *RateTable) *Pipeline {
	return &Pipeline{Currency: DefaultCurrency, Rates: rates, Log: zerolog.Nop()}
}

// Report is the complete outcome of one run.
type Report struct {
	Currency  string
	Trades    []SettledTrade   // original and borrowed rows, settlement date order
	Summary   []PositionSummary
	Closed    []ClosedPosition // with trailing grand total row when non empty
	Checks    []BalanceCheck   // nil when no balances were declared
	Residuals map[string]int64 // per ticker units short coverage could not provide
}

// Run executes the whole pipeline over one period's normalized trades:
// settle every row of the configured currency, aggregate per ticker, cover
// oversold tickers from the prior period pool, re-aggregate, close zero
// balance positions, and reconcile declared balances.
//
// Run is idempotent over its own outcome: a set whose balances are already
// covered borrows nothing, so running again changes no figure.
func (p *Pipeline) Run(trades []Trade) (*Report, error) {
	if err := ValidateInputs(trades, p.Rates); err != nil {
		return nil, err
	}
	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	kept := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.Amount.Currency() != currency {
			p.Log.Debug().
				Str("ticker", t.Ticker).
				Str("currency", t.Amount.Currency()).
				Msg("skipping trade outside the settled currency")
			continue
		}
		if t.Side == Unresolved {
			p.Log.Warn().
				Str("ticker", t.Ticker).
				Str("operation", t.Operation).
				Msg("unresolved operation label, quantity enters with the sell sign")
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no %s trades: %w", currency, ErrEmptyInput)
	}

	settled := SettleAll(kept, p.Rates, p.Log)
	summary := Summarize(settled)

	report := &Report{Currency: currency, Residuals: map[string]int64{}}
	if len(p.Prior) > 0 {
		var borrowed []Trade
		for _, s := range summary {
			if !s.Oversold() {
				continue
			}
			cov := CoverShortfall(s.Ticker, -s.SignedBalance, p.Prior)
			p.Log.Info().
				Str("ticker", cov.Ticker).
				Int64("shortfall", -s.SignedBalance).
				Int("lots", len(cov.Borrowed)).
				Msg("covering oversold balance from prior periods")
			if !cov.Covered() {
				p.Log.Warn().
					Str("ticker", cov.Ticker).
					Int64("residual", cov.Residual).
					Msg("prior period lots exhausted, balance stays open")
				report.Residuals[cov.Ticker] = cov.Residual
			}
			borrowed = append(borrowed, cov.Borrowed...)
		}
		if len(borrowed) > 0 {
			settled = append(settled, Resettle(borrowed, p.Rates, p.Log)...)
			slices.SortStableFunc(settled, func(a, b SettledTrade) int {
				return a.SettlementDate.Compare(b.SettlementDate)
			})
			summary = Summarize(settled)
		}
	}

	report.Trades = settled
	report.Summary = summary
	report.Closed = ClosePositions(settled, summary)
	if p.Declared != nil {
		report.Checks = CheckBalances(summary, p.Declared)
	}
	return report, nil
}
