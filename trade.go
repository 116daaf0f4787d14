package settlement

import (
	"errors"
	"fmt"

	"github.com/etnz/settlement/date"
)

// Trade is one normalized brokerage operation row.
//
// Amounts are magnitudes in the trading currency: the report never signs
// them, direction lives in the operation label and its canonical Side.
type Trade struct {
	Ticker         string
	Operation      string // raw label from the report, preserved verbatim
	Side           Side   // canonical classification of Operation, computed once
	Quantity       Quantity
	Price          Money // unit price, informational
	Amount         Money // total consideration for the row
	Commission     Money // broker commission for the row
	TradeDate      date.Date
	SettlementDate date.Date // drives rate selection
}

// SignedQuantity derives the position movement: purchases add units,
// everything else consumes them. An Unresolved label therefore enters with
// the sell sign, which corrupts the balance when the label was really a
// purchase; the pipeline warns about such rows instead of guessing.
func (t Trade) SignedQuantity() int64 {
	if t.Side == Buy {
		return int64(t.Quantity)
	}
	return -int64(t.Quantity)
}

// Validate reports everything structurally wrong with the row at once.
func (t Trade) Validate() error {
	var errs []error
	if t.Ticker == "" {
		errs = append(errs, errors.New("missing ticker"))
	}
	if t.Quantity < 0 {
		errs = append(errs, fmt.Errorf("negative quantity %d", t.Quantity))
	}
	if t.Amount.IsNegative() {
		errs = append(errs, fmt.Errorf("negative amount %s", t.Amount.StringFixed()))
	}
	if t.Commission.IsNegative() {
		errs = append(errs, fmt.Errorf("negative commission %s", t.Commission.StringFixed()))
	}
	if t.SettlementDate.IsZero() {
		errs = append(errs, errors.New("missing settlement date"))
	}
	return errors.Join(errs...)
}

// SettledTrade is a Trade joined to its settlement rate, with the domestic
// amounts computed (see Settle for the arithmetic).
type SettledTrade struct {
	Trade
	Rate          Rate  // applied rate, zero when none covered the settlement date
	RubAmount     Money // signed consideration: negative for a Buy
	RubCommission Money // always reduces the net result
	NetResult     Money // RubAmount - RubCommission
}
