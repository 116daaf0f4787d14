// Package date provides a calendar day value type.
//
// Brokerage reports and central bank rate feeds work at day granularity:
// a trade settles on a day, a rate is published for a day. Date keeps that
// granularity explicit instead of smuggling time.Time around with the
// clock part zeroed by convention.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readFormat = "2006-1-2" // permissive read format (allows 2025-7-1)

// Format is the canonical ISO-8601 day format used in all outputs.
const Format = "2006-01-02"

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
// Out-of-range values roll over the way time.Date rolls them over.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare orders d against x, returning -1, 0 or +1. It is the comparison
// function expected by the sort and slices packages.
func (d Date) Compare(x Date) int {
	switch {
	case d.Before(x):
		return -1
	case d.After(x):
		return 1
	default:
		return 0
	}
}

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// String formats the date in its standard format.
func (d Date) String() string { return d.time().Format(Format) }

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON reads a Date from a JSON string in the standard format.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the Date as a JSON string in the standard format.
func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
