// Package renderer turns settlement reports into markdown, the lingua
// franca of the command line application: printed styled on a terminal,
// pasted as-is into a review document.
package renderer

import "github.com/etnz/settlement"

// rate renders a rate cell, "-" for the zero fallback so a missing
// publication stays visible in the table.
func rate(r settlement.Rate) string {
	if r.IsZero() {
		return "-"
	}
	return r.String()
}
