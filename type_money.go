package settlement

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact monetary value in a single currency.
//
// The value is an arbitrary precision decimal: settlement results must
// reproduce the broker's reference figures bit for bit, so binary floats
// never enter a monetary path. The currency is an ISO 4217 code, or "" for
// a weak value that adopts the other operand's currency (handy for zero
// accumulators).
type Money struct {
	value decimal.Decimal
	cur   string
}

// newDecimal is a convenient generic factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	case decimal.Decimal:
		return v
	}
	panic("unsupported number type")
}

// M creates a Money from any number, for literals in tests and fixtures.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// cur returns the common currency of two values, treating "" as weak.
// Mixing two different strong currencies is a programming error.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("mixing currencies " + a.cur + " and " + b.cur)
	}
	return a.cur
}

// KnownCurrency reports whether code is an ISO 4217 code go-money knows.
func KnownCurrency(code string) bool { return money.GetCurrency(code) != nil }

// Currency returns the ISO 4217 code, "" for a weak value.
func (m Money) Currency() string { return m.cur }

// Decimal returns the exact amount in major units.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Add returns m+o. Currencies must agree, "" is weak.
func (m Money) Add(o Money) Money {
	return Money{value: m.value.Add(o.value), cur: cur(m, o)}
}

// Sub returns m-o. Currencies must agree, "" is weak.
func (m Money) Sub(o Money) Money {
	return Money{value: m.value.Sub(o.value), cur: cur(m, o)}
}

// Neg returns the opposite value.
func (m Money) Neg() Money { return Money{value: m.value.Neg(), cur: m.cur} }

// Round2 rounds to two decimal places, halves away from zero. It is the
// single rounding rule of the whole pipeline.
func (m Money) Round2() Money { return Money{value: m.value.Round(2), cur: m.cur} }

// IsZero returns true for a zero amount whatever the currency.
func (m Money) IsZero() bool { return m.value.IsZero() }

// IsNegative returns true for a strictly negative amount.
func (m Money) IsNegative() bool { return m.value.IsNegative() }

// IsPositive returns true for a strictly positive amount.
func (m Money) IsPositive() bool { return m.value.IsPositive() }

// Equal returns true when amounts and currencies are the same, "" weak.
func (m Money) Equal(o Money) bool {
	if m.cur != "" && o.cur != "" && m.cur != o.cur {
		return false
	}
	return m.value.Equal(o.value)
}

// StringFixed renders the bare amount with exactly two fractional digits,
// the way report files carry monetary columns.
func (m Money) StringFixed() string { return m.value.StringFixed(2) }

// String renders the value with its currency symbol for human readable
// tables, e.g. "₽1,234.50".
func (m Money) String() string {
	c := money.New(0, m.cur).Currency()
	return c.Formatter().Format(m.value.Shift(int32(c.Fraction)).IntPart())
}

// SignedString is like String with an explicit plus sign, and a plain "-"
// for zero. Result columns read better this way.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
