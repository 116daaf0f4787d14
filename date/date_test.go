package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewNormalizes(t *testing.T) {
	testCases := []struct {
		name string
		got  Date
		want Date
	}{
		{"plain", New(2024, time.March, 15), Date{2024, time.March, 15}},
		{"day overflow", New(2024, time.January, 32), Date{2024, time.February, 1}},
		{"month overflow", New(2024, 13, 1), Date{2025, time.January, 1}},
		{"leap day", New(2024, time.February, 29), Date{2024, time.February, 29}},
		{"non leap rollover", New(2023, time.February, 29), Date{2023, time.March, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("New() = %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"canonical", "2024-03-15", "2024-03-15", false},
		{"lenient single digits", "2024-3-5", "2024-03-05", false},
		{"garbage", "not-a-date", "", true},
		{"european order", "15.03.2024", "", true},
		{"empty", "", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected an error, got %v", tc.in, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.in, err)
			}
			if d.String() != tc.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tc.in, d.String(), tc.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	early := MustParse("2024-01-05")
	late := MustParse("2024-01-10")

	if got := early.Compare(late); got != -1 {
		t.Errorf("early.Compare(late) = %d, want -1", got)
	}
	if got := late.Compare(early); got != 1 {
		t.Errorf("late.Compare(early) = %d, want 1", got)
	}
	if got := early.Compare(early); got != 0 {
		t.Errorf("early.Compare(early) = %d, want 0", got)
	}
}

func TestAdd(t *testing.T) {
	d := MustParse("2024-02-28")
	if got := d.Add(1).String(); got != "2024-02-29" {
		t.Errorf("Add(1) = %s, want 2024-02-29", got)
	}
	if got := d.Add(-28).String(); got != "2024-01-31" {
		t.Errorf("Add(-28) = %s, want 2024-01-31", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2024-12-31")
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `"2024-12-31"` {
		t.Errorf("Marshal = %s, want \"2024-12-31\"", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestIsZero(t *testing.T) {
	var zero Date
	if !zero.IsZero() {
		t.Error("zero Date should report IsZero")
	}
	if Today().IsZero() {
		t.Error("Today() should not report IsZero")
	}
}
