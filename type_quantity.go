package settlement

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Quantity is a number of units of an instrument.
//
// Trade rows always carry it as a magnitude; the sign of a position
// movement comes from the Side (see Trade.SignedQuantity).
type Quantity int64

// Decimal returns the quantity as an exact decimal, for scaling arithmetic.
func (q Quantity) Decimal() decimal.Decimal { return decimal.NewFromInt(int64(q)) }

// IsZero returns true for the zero quantity.
func (q Quantity) IsZero() bool { return q == 0 }

func (q Quantity) String() string { return strconv.FormatInt(int64(q), 10) }
