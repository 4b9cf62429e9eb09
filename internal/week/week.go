// Package week resolves week references ("current", "next", explicit
// "dd/mm") into canonical Monday anchors and expands anchors into their
// Monday-to-Friday dates.
//
// Week keys and dates are dd/mm strings without a year. An explicit date
// that already passed this year is taken to mean its next occurrence, so
// references near a year boundary roll into the following year.
package week

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyFormat is the dd/mm layout used for all stored date keys.
const KeyFormat = "02/01"

// Resolver does all calendar math against an injected clock so that the
// rollover heuristic is testable with a fixed "today".
type Resolver struct {
	loc *time.Location
	now func() time.Time
}

func New(loc *time.Location) *Resolver {
	return &Resolver{
		loc: loc,
		now: func() time.Time { return time.Now().In(loc) },
	}
}

// NewWithClock is used by tests to pin today.
func NewWithClock(loc *time.Location, now func() time.Time) *Resolver {
	return &Resolver{loc: loc, now: now}
}

// Now returns the current time in the resolver's location.
func (r *Resolver) Now() time.Time {
	return r.now()
}

// Today returns today's dd/mm key.
func (r *Resolver) Today() string {
	return r.now().Format(KeyFormat)
}

// today returns the current date truncated to midnight.
func (r *Resolver) today() time.Time {
	t := r.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.loc)
}

// weekdayIndex maps Monday to 0 through Sunday to 6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Monday resolves a week reference into that week's Monday key.
// Accepted references: "current", "next", or an explicit "dd/mm" date
// (snapped back to its Monday, rolled to next year when already past).
func (r *Resolver) Monday(reference string) (string, error) {
	today := r.today()

	var monday time.Time
	switch reference {
	case "current":
		monday = today.AddDate(0, 0, -weekdayIndex(today))
	case "next":
		monday = today.AddDate(0, 0, 7-weekdayIndex(today))
	default:
		date, err := r.resolveDate(reference)
		if err != nil {
			return "", err
		}
		monday = date.AddDate(0, 0, -weekdayIndex(date))
	}

	return monday.Format(KeyFormat), nil
}

// NextMonday returns next week's Monday key. On a Monday this is the
// Monday seven days ahead, not today.
func (r *Resolver) NextMonday() string {
	today := r.today()
	ahead := 7 - weekdayIndex(today)
	return today.AddDate(0, 0, ahead).Format(KeyFormat)
}

// Dates expands a Monday key into the five Monday-to-Friday dd/mm dates,
// applying the same next-year inference as Monday.
func (r *Resolver) Dates(mondayKey string) ([]string, error) {
	monday, err := r.resolveDate(mondayKey)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		dates = append(dates, monday.AddDate(0, 0, i).Format(KeyFormat))
	}
	return dates, nil
}

// WeekdayName returns the English weekday name ("Monday", ...) of a dd/mm
// date interpreted in the current year.
func (r *Resolver) WeekdayName(dateKey string) (string, error) {
	day, month, err := parseKey(dateKey)
	if err != nil {
		return "", err
	}
	date, ok := makeDate(r.today().Year(), month, day, r.loc)
	if !ok {
		return "", fmt.Errorf("invalid date %q", dateKey)
	}
	return date.Weekday().String(), nil
}

// DateInCurrentYear parses a dd/mm key against the current year with no
// next-year rollover. Retention checks compare stored week keys against
// today and must see past dates as past.
func (r *Resolver) DateInCurrentYear(key string) (time.Time, error) {
	day, month, err := parseKey(key)
	if err != nil {
		return time.Time{}, err
	}
	date, ok := makeDate(r.today().Year(), month, day, r.loc)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q", key)
	}
	return date, nil
}

// resolveDate parses a dd/mm key against the current year, rolling forward
// to next year when the date is strictly before today.
func (r *Resolver) resolveDate(key string) (time.Time, error) {
	day, month, err := parseKey(key)
	if err != nil {
		return time.Time{}, err
	}

	today := r.today()
	date, ok := makeDate(today.Year(), month, day, r.loc)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q", key)
	}
	if date.Before(today) {
		next, ok := makeDate(today.Year()+1, month, day, r.loc)
		if !ok {
			return time.Time{}, fmt.Errorf("invalid date %q", key)
		}
		date = next
	}
	return date, nil
}

func parseKey(key string) (day, month int, err error) {
	parts := strings.Split(strings.TrimSpace(key), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("cannot parse date %q, want dd/mm", key)
	}
	day, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("cannot parse date %q, want dd/mm", key)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("cannot parse date %q, want dd/mm", key)
	}
	return day, month, nil
}

// makeDate builds a date and rejects inputs that time.Date would silently
// normalize, like 31/02.
func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
