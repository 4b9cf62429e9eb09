package routine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Lateness reports how far past a same-day "HH:MM" deadline the given
// moment is. Returns false for empty or unparsable deadlines and for
// on-time completions.
func Lateness(deadline string, at time.Time) (time.Duration, bool) {
	hour, minute, ok := parseClock(deadline)
	if !ok {
		return 0, false
	}
	due := time.Date(at.Year(), at.Month(), at.Day(), hour, minute, 0, 0, at.Location())
	if !at.After(due) {
		return 0, false
	}
	return at.Sub(due), true
}

// FormatDelay renders a delay like "7 min" or "1h 25min".
func FormatDelay(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}

func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
