package settlement

import (
	"errors"
	"fmt"
)

// Sentinel errors of the run level taxonomy. Row scoped problems are
// recovered by the decoders with a default and a diagnostic; these three
// abort the run.
var (
	// ErrEmptyInput reports a structurally empty trade or rate table.
	ErrEmptyInput = errors.New("empty input")
	// ErrSchema reports a table missing a structurally required column.
	ErrSchema = errors.New("missing required column")
	// ErrRowParse tags a malformed row, skipped and logged by decoders.
	ErrRowParse = errors.New("malformed row")
)

// ValidateInputs checks the structural preconditions of a run and returns
// every violation at once.
func ValidateInputs(trades []Trade, rates *RateTable) error {
	var errs []error
	if len(trades) == 0 {
		errs = append(errs, fmt.Errorf("trade table: %w", ErrEmptyInput))
	}
	if rates == nil || rates.Len() == 0 {
		errs = append(errs, fmt.Errorf("rate table: %w", ErrEmptyInput))
	}
	for i, t := range trades {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("trade %d (%s): %w", i, t.Ticker, err))
		}
	}
	return errors.Join(errs...)
}
