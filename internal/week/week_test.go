package week_test

import (
	"reflect"
	"testing"
	"time"

	"sup-routine-backend/internal/week"
)

// fixed builds a resolver pinned to the given date.
func fixed(year int, month time.Month, day int) *week.Resolver {
	t := time.Date(year, month, day, 10, 0, 0, 0, time.UTC)
	return week.NewWithClock(time.UTC, func() time.Time { return t })
}

func TestMondayRelative(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		reference string
		want      string
	}{
		// 2025-02-05 is a Wednesday.
		{"current midweek", time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), "current", "03/02"},
		{"next midweek", time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), "next", "10/02"},
		// 2025-02-03 is a Monday: current is today, next is a full week out.
		{"current on monday", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), "current", "03/02"},
		{"next on monday", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), "next", "10/02"},
		// 2025-06-15 is a Sunday.
		{"current on sunday", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), "current", "09/06"},
		{"next on sunday", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), "next", "16/06"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := week.NewWithClock(time.UTC, func() time.Time { return tt.today })
			got, err := r.Monday(tt.reference)
			if err != nil {
				t.Fatalf("Monday(%q): %v", tt.reference, err)
			}
			if got != tt.want {
				t.Errorf("Monday(%q) = %q, want %q", tt.reference, got, tt.want)
			}
		})
	}
}

func TestMondayExplicitSameYear(t *testing.T) {
	// Today 2025-02-05; 20/02 is a Thursday later the same month.
	r := fixed(2025, 2, 5)
	got, err := r.Monday("20/02")
	if err != nil {
		t.Fatal(err)
	}
	if got != "17/02" {
		t.Errorf("Monday(20/02) = %q, want %q", got, "17/02")
	}
}

func TestMondayExplicitRollsToNextYear(t *testing.T) {
	// Today is 15/06/2025; 01/01 already passed, so it means 01/01/2026,
	// a Thursday, whose Monday is 29/12/2025.
	r := fixed(2025, 6, 15)
	got, err := r.Monday("01/01")
	if err != nil {
		t.Fatal(err)
	}
	if got != "29/12" {
		t.Errorf("Monday(01/01) = %q, want %q", got, "29/12")
	}
}

func TestMondayBadInput(t *testing.T) {
	r := fixed(2025, 2, 5)
	for _, bad := range []string{"", "tomorrow", "5/2/2025", "31/02", "aa/bb"} {
		if _, err := r.Monday(bad); err == nil {
			t.Errorf("Monday(%q): expected error", bad)
		}
	}
}

func TestDates(t *testing.T) {
	r := fixed(2025, 2, 5)
	got, err := r.Dates("03/02")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"03/02", "04/02", "05/02", "06/02", "07/02"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dates(03/02) = %v, want %v", got, want)
	}
}

func TestDatesAcrossYearBoundary(t *testing.T) {
	r := fixed(2025, 6, 15)
	got, err := r.Dates("29/12")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"29/12", "30/12", "31/12", "01/01", "02/01"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dates(29/12) = %v, want %v", got, want)
	}
}

func TestDatesBadInput(t *testing.T) {
	r := fixed(2025, 2, 5)
	if _, err := r.Dates("not-a-date"); err == nil {
		t.Error("Dates(not-a-date): expected error")
	}
}

func TestNextMonday(t *testing.T) {
	tests := []struct {
		today time.Time
		want  string
	}{
		{time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), "10/02"}, // Monday
		{time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), "10/02"}, // Wednesday
		{time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC), "10/02"}, // Sunday
	}
	for _, tt := range tests {
		r := week.NewWithClock(time.UTC, func() time.Time { return tt.today })
		if got := r.NextMonday(); got != tt.want {
			t.Errorf("NextMonday from %s = %q, want %q",
				tt.today.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestWeekdayName(t *testing.T) {
	r := fixed(2025, 2, 5)
	got, err := r.WeekdayName("03/02")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Monday" {
		t.Errorf("WeekdayName(03/02) = %q, want %q", got, "Monday")
	}
	if _, err := r.WeekdayName("99/99"); err == nil {
		t.Error("WeekdayName(99/99): expected error")
	}
}
