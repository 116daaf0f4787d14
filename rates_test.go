package settlement

import (
	"errors"
	"testing"

	"github.com/etnz/settlement/date"
)

func day(s string) date.Date { return date.MustParse(s) }

func TestRateTableAppend(t *testing.T) {
	table := NewRateTable()
	table.Append(day("2024-01-10"), R(92.5))
	table.Append(day("2024-01-01"), R(90))
	table.Append(day("2024-01-05"), R(91))
	// last write wins on an existing day
	table.Append(day("2024-01-05"), R(91.25))

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	var days []string
	for d, r := range table.Values() {
		days = append(days, d.String()+":"+r.String())
	}
	want := []string{"2024-01-01:90", "2024-01-05:91.25", "2024-01-10:92.5"}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, days[i], want[i])
		}
	}
}

func TestRateTableLookup(t *testing.T) {
	table := NewRateTable(
		RateEntry{Day: day("2024-01-01"), Rate: R(90)},
		RateEntry{Day: day("2024-01-10"), Rate: R(92.5)},
	)
	testCases := []struct {
		name   string
		on     string
		want   string
		wantOK bool
	}{
		{name: "exact day", on: "2024-01-01", want: "90", wantOK: true},
		{name: "between publications", on: "2024-01-05", want: "90", wantOK: true},
		{name: "exact later day", on: "2024-01-10", want: "92.5", wantOK: true},
		{name: "after the last", on: "2024-02-01", want: "92.5", wantOK: true},
		{name: "before the first", on: "2023-12-31", wantOK: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := table.Lookup(day(tc.on))
			if ok != tc.wantOK {
				t.Fatalf("Lookup(%s) ok = %v, want %v", tc.on, ok, tc.wantOK)
			}
			if ok && r.String() != tc.want {
				t.Errorf("Lookup(%s) = %s, want %s", tc.on, r, tc.want)
			}
		})
	}
}

func TestRateTableRateOn(t *testing.T) {
	table := NewRateTable(RateEntry{Day: day("2024-01-10"), Rate: R(92.5)})
	if _, err := table.RateOn(day("2024-01-09")); !errors.Is(err, ErrNoRate) {
		t.Errorf("RateOn before the table = %v, want ErrNoRate", err)
	}
	r, err := table.RateOn(day("2024-01-10"))
	if err != nil {
		t.Fatalf("RateOn: %v", err)
	}
	if r.String() != "92.5" {
		t.Errorf("RateOn = %s, want 92.5", r)
	}
}

// The forward cursor must agree with Lookup on any ascending sequence of
// days, including repeated ones.
func TestRateResolver(t *testing.T) {
	table := NewRateTable(
		RateEntry{Day: day("2024-01-01"), Rate: R(90)},
		RateEntry{Day: day("2024-01-04"), Rate: R(91)},
		RateEntry{Day: day("2024-01-10"), Rate: R(92.5)},
	)
	cursor := table.resolver()
	days := []string{
		"2023-12-30", "2024-01-01", "2024-01-01", "2024-01-03",
		"2024-01-04", "2024-01-07", "2024-01-10", "2024-02-01",
	}
	for _, s := range days {
		on := day(s)
		wantRate, wantOK := table.Lookup(on)
		gotRate, gotOK := cursor.resolve(on)
		if gotOK != wantOK || !gotRate.Equal(wantRate) {
			t.Errorf("resolve(%s) = %s, %v; Lookup gives %s, %v", s, gotRate, gotOK, wantRate, wantOK)
		}
	}
}
