package settlement

import (
	"encoding/json"
	"fmt"
)

// Side is the canonical classification of a trade operation label.
//
// It is computed once, when a row enters the system (see Classify), and is
// the only thing downstream arithmetic looks at. The raw label is kept on
// the Trade for display and diagnostics.
type Side int

const (
	// Unresolved marks labels matching neither lexicon. Such rows keep
	// flowing through settlement and aggregation rather than being dropped;
	// see Trade.SignedQuantity for the consequence.
	Unresolved Side = iota
	// Buy covers purchase labels, including lots borrowed from prior
	// periods.
	Buy
	// Sell covers sale labels.
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "Unresolved"
	}
}

// ParseSide parses a canonical side name, as written by MarshalJSON.
func ParseSide(str string) (Side, error) {
	switch str {
	case "Buy":
		return Buy, nil
	case "Sell":
		return Sell, nil
	case "Unresolved":
		return Unresolved, nil
	default:
		return Unresolved, fmt.Errorf("unknown side %q", str)
	}
}

// MarshalJSON writes the side as its canonical name.
func (s Side) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// UnmarshalJSON reads a side written by MarshalJSON.
func (s *Side) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseSide(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

var _ json.Marshaler = Buy
var _ json.Unmarshaler = (*Side)(nil)
