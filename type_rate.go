package settlement

import "github.com/shopspring/decimal"

// Rate is the domestic price of one unit of the trading currency, as
// published for a given day. Published rates are strictly positive; the
// zero Rate is the documented fallback when no publication covers a date.
type Rate struct {
	value decimal.Decimal
}

// R creates a Rate from any number, for literals in tests and fixtures.
func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// Decimal returns the exact rate value.
func (r Rate) Decimal() decimal.Decimal { return r.value }

// IsZero reports the no-publication fallback value.
func (r Rate) IsZero() bool { return r.value.IsZero() }

// IsPositive returns true for a usable published rate.
func (r Rate) IsPositive() bool { return r.value.IsPositive() }

// Equal returns true when both rates carry the same value.
func (r Rate) Equal(o Rate) bool { return r.value.Equal(o.value) }

// String renders the exact rate, without padding.
func (r Rate) String() string { return r.value.String() }
