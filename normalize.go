package settlement

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Operation labels are free text and vary by broker and language, e.g.
// "Покупка", "Swap открытие. Продажа.", "Buy". Classification is therefore
// substring based, case insensitive, over small lexicons.
var (
	buyLexicon  = []string{"покуп", "купл", "buy"}
	sellLexicon = []string{"продаж", "sell"}
	// lotLexicon additionally admits opening balance rows when borrowing
	// purchase lots from prior periods.
	lotLexicon = []string{"покуп", "купл", "buy", "открыт"}
)

// Classify maps a raw operation label to its canonical Side. The buy
// lexicon wins when both match.
func Classify(label string) Side {
	l := strings.ToLower(label)
	for _, token := range buyLexicon {
		if strings.Contains(l, token) {
			return Buy
		}
	}
	for _, token := range sellLexicon {
		if strings.Contains(l, token) {
			return Sell
		}
	}
	return Unresolved
}

// IsLotSource reports whether a prior period row can serve as a purchase
// lot when covering an oversold balance.
func IsLotSource(label string) bool {
	l := strings.ToLower(label)
	for _, token := range lotLexicon {
		if strings.Contains(l, token) {
			return true
		}
	}
	return false
}

// ParseDecimal parses a decimal literal the way broker reports write them:
// comma decimal separators and embedded plain or no-break spaces as digit
// group separators. An empty cell parses as zero.
func ParseDecimal(s string) (decimal.Decimal, error) {
	clean := strings.Map(dropSpace, s)
	clean = strings.ReplaceAll(clean, ",", ".")
	if clean == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return d, nil
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}

// ParseQuantity parses a unit count. Quantities are magnitudes: direction
// always comes from the operation label, so a signed or fractional count
// is malformed.
func ParseQuantity(s string) (Quantity, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("invalid quantity %q: not a whole number", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid quantity %q: negative", s)
	}
	return Quantity(d.IntPart()), nil
}
