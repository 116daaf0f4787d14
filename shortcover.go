package settlement

import (
	"slices"

	"github.com/shopspring/decimal"
)

// BorrowedOperation labels trades synthesized from prior period lots. The
// label matches the buy lexicon, so these rows classify as purchases even
// if something re-derives their side from the label.
const BorrowedOperation = "Buy (prior period)"

// Coverage is the outcome of covering one oversold ticker from prior
// period purchase lots.
type Coverage struct {
	Ticker   string
	Borrowed []Trade // synthesized purchase rows, rates pending (see Resettle)
	Residual int64   // units the pool could not provide, 0 when fully covered
}

// Covered reports whether the whole shortfall was provided for.
func (c Coverage) Covered() bool { return c.Residual == 0 }

// CoverShortfall borrows purchase lots for one oversold ticker.
//
// The pool is every prior period row of the ticker whose label is a
// purchase or an opening balance. Lots are consumed most recent first by
// trade date, a LIFO-like policy kept for parity with the reference
// figures even though tax lot conventions usually ask for FIFO; changing
// it needs an explicit product decision, not a refactor.
//
// An emitted row takes use = min(lot quantity, what is still missing)
// units and scales the lot's amount and commission by use/quantity, both
// rounded to two decimals. Rates are left pending for Resettle.
func CoverShortfall(ticker string, shortfall int64, prior []Trade) Coverage {
	var lots []Trade
	for _, t := range prior {
		if t.Ticker == ticker && t.Quantity > 0 && IsLotSource(t.Operation) {
			lots = append(lots, t)
		}
	}
	slices.SortStableFunc(lots, func(a, b Trade) int {
		return b.TradeDate.Compare(a.TradeDate)
	})

	cov := Coverage{Ticker: ticker}
	consumed := int64(0)
	for _, lot := range lots {
		if consumed >= shortfall {
			break
		}
		use := min(int64(lot.Quantity), shortfall-consumed)
		cov.Borrowed = append(cov.Borrowed, Trade{
			Ticker:         lot.Ticker,
			Operation:      BorrowedOperation,
			Side:           Buy,
			Quantity:       Quantity(use),
			Price:          lot.Price,
			Amount:         M(scale(lot.Amount.Decimal(), use, lot.Quantity), lot.Amount.Currency()),
			Commission:     M(scale(lot.Commission.Decimal(), use, lot.Quantity), lot.Commission.Currency()),
			TradeDate:      lot.TradeDate,
			SettlementDate: lot.SettlementDate,
		})
		consumed += use
	}
	cov.Residual = shortfall - consumed
	return cov
}

// scale returns round2(value*use/of), the pro rata share of a lot amount
// when only part of the lot is borrowed.
func scale(value decimal.Decimal, use int64, of Quantity) decimal.Decimal {
	return round2(value.Mul(decimal.NewFromInt(use)).Div(of.Decimal()))
}
