package settlement

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/settlement/date"
)

// ErrNoRate reports that a date precedes every entry of a rate table.
var ErrNoRate = errors.New("no rate on or before date")

// RateEntry is one published rate: the domestic price of the trading
// currency on a given day.
type RateEntry struct {
	Day  date.Date
	Rate Rate
}

// RateTable is an ordered daily rate series with as-of lookups.
//
// Publications are sparse (weekends, holidays), so the rate applicable on a
// day is the entry with the latest day not after it. Entries are unique per
// day and kept sorted; appending to an existing day overwrites it, last
// write wins.
type RateTable struct {
	days  []date.Date
	rates []Rate
}

// NewRateTable builds a table from entries in any order.
func NewRateTable(entries ...RateEntry) *RateTable {
	t := &RateTable{}
	for _, e := range entries {
		t.Append(e.Day, e.Rate)
	}
	return t
}

// Len returns the number of days in the table.
func (t *RateTable) Len() int { return len(t.days) }

// Append records the rate for a day, replacing any previous value for that
// day. It returns the table for chaining.
func (t *RateTable) Append(on date.Date, r Rate) *RateTable {
	i, found := slices.BinarySearchFunc(t.days, on, date.Date.Compare)
	if found {
		t.rates[i] = r
		return t
	}
	t.days = slices.Insert(t.days, i, on)
	t.rates = slices.Insert(t.rates, i, r)
	return t
}

// Lookup returns the rate applicable on a day. ok is false when the table
// only starts after that day.
func (t *RateTable) Lookup(on date.Date) (r Rate, ok bool) {
	i, found := slices.BinarySearchFunc(t.days, on, date.Date.Compare)
	if found {
		return t.rates[i], true
	}
	if i == 0 {
		return Rate{}, false
	}
	return t.rates[i-1], true
}

// RateOn is Lookup for callers that want an error.
func (t *RateTable) RateOn(on date.Date) (Rate, error) {
	r, ok := t.Lookup(on)
	if !ok {
		return Rate{}, fmt.Errorf("%w: %s", ErrNoRate, on)
	}
	return r, nil
}

// Values iterates the entries in chronological order.
func (t *RateTable) Values() iter.Seq2[date.Date, Rate] {
	return func(yield func(date.Date, Rate) bool) {
		for i, day := range t.days {
			if !yield(day, t.rates[i]) {
				return
			}
		}
	}
}

// resolver returns a forward-only cursor over the table. Batch settlement
// presents dates in ascending order, so joining all trades to their rates
// is a single merge over two sorted sequences instead of a search per row.
func (t *RateTable) resolver() *rateResolver { return &rateResolver{table: t} }

type rateResolver struct {
	table *RateTable
	next  int // first entry not yet passed
}

// resolve returns the rate applicable on a day. Days must be presented in
// ascending order; the cursor only ever advances.
func (c *rateResolver) resolve(on date.Date) (Rate, bool) {
	for c.next < len(c.table.days) && !c.table.days[c.next].After(on) {
		c.next++
	}
	if c.next == 0 {
		return Rate{}, false
	}
	return c.table.rates[c.next-1], true
}
