package routine

import (
	"time"

	"sup-routine-backend/internal/catalog"
)

const (
	// reminderSkipHour is the early-afternoon reminder run during which
	// late-evening tasks are not nagged about yet.
	reminderSkipHour = 13
	// lateDeadlineHour marks a deadline as late-evening.
	lateDeadlineHour = 16
)

// Outstanding partitions the day's tasks into not-yet-completed and
// overdue, given the current completion map and time. During the 13:00
// reminder run, tasks whose deadline is 16:00 or later are left out
// entirely. Tasks with malformed or missing deadlines are never overdue.
func Outstanding(tasks []catalog.Task, completed map[string]Completion, now time.Time) (incomplete, overdue []catalog.Task) {
	for _, task := range tasks {
		if _, done := completed[task.Key()]; done {
			continue
		}

		hour, minute, ok := parseClock(task.Deadline)
		if !ok {
			incomplete = append(incomplete, task)
			continue
		}

		if now.Hour() == reminderSkipHour && hour >= lateDeadlineHour {
			continue
		}

		due := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if now.After(due) {
			overdue = append(overdue, task)
		} else {
			incomplete = append(incomplete, task)
		}
	}
	return incomplete, overdue
}
