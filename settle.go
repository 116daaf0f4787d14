package settlement

import (
	"slices"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DomesticCurrency is the currency settlement results are expressed in.
const DomesticCurrency = "RUB"

// DefaultCurrency is the trading currency processed when none is configured.
const DefaultCurrency = "USD"

// rub wraps an exact decimal as domestic money.
func rub(d decimal.Decimal) Money { return Money{value: d, cur: DomesticCurrency} }

// round2 rounds to two decimal places, halves away from zero. Reference
// figures apply it independently at every step below, never once at the
// end, and reproducing them requires the same order.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Settle joins one trade to its rate and computes the domestic amounts:
//
//	RubAmount     = round2(Amount × rate), negated for a Buy
//	RubCommission = round2(Commission × rate)
//	NetResult     = round2(RubAmount − RubCommission)
//
// A zero rate is the fallback when no publication covers the settlement
// date: it zeroes the domestic amounts rather than failing the run.
func Settle(t Trade, r Rate) SettledTrade {
	amount := round2(t.Amount.Decimal().Mul(r.Decimal()))
	if t.Side == Buy {
		amount = amount.Neg()
	}
	commission := round2(t.Commission.Decimal().Mul(r.Decimal()))
	net := round2(amount.Sub(commission))
	return SettledTrade{
		Trade:         t,
		Rate:          r,
		RubAmount:     rub(amount),
		RubCommission: rub(commission),
		NetResult:     rub(net),
	}
}

// SettleAll settles a batch against the table in one forward pass. Trades
// come back ordered by settlement date (stable for equal dates); after the
// sort the rate join is a merge, the cursor only advances. A missing rate
// falls back to zero with a warning per row.
func SettleAll(trades []Trade, rates *RateTable, log zerolog.Logger) []SettledTrade {
	ordered := slices.Clone(trades)
	slices.SortStableFunc(ordered, func(a, b Trade) int {
		return a.SettlementDate.Compare(b.SettlementDate)
	})

	cursor := rates.resolver()
	settled := make([]SettledTrade, 0, len(ordered))
	for _, t := range ordered {
		r, ok := cursor.resolve(t.SettlementDate)
		if !ok {
			log.Warn().
				Str("ticker", t.Ticker).
				Stringer("settlement", t.SettlementDate).
				Msg("no rate on or before settlement date, amounts settle to zero")
		}
		settled = append(settled, Settle(t, r))
	}
	return settled
}

// Resettle settles trades synthesized with a pending rate. Borrowed lots
// arrive most recent first, not date ordered, so each row does its own
// as-of lookup, with the same zero fallback as SettleAll.
func Resettle(borrowed []Trade, rates *RateTable, log zerolog.Logger) []SettledTrade {
	settled := make([]SettledTrade, 0, len(borrowed))
	for _, t := range borrowed {
		r, ok := rates.Lookup(t.SettlementDate)
		if !ok {
			log.Warn().
				Str("ticker", t.Ticker).
				Stringer("settlement", t.SettlementDate).
				Msg("no rate on or before borrowed lot settlement date, amounts settle to zero")
		}
		settled = append(settled, Settle(t, r))
	}
	return settled
}
