// Package remote validates and stores employees' weekly remote-work day
// selections: at most two days per week, pruned lazily as weeks age out.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"sup-routine-backend/internal/directory"
	"sup-routine-backend/internal/week"
)

// MaxDaysPerWeek caps how many remote days one employee may pick per week.
const MaxDaysPerWeek = 2

// pruneGraceDays keeps a week's entry until its Monday is this many days
// in the past.
const pruneGraceDays = 7

// Scheduler manages the per-employee remote-day maps.
type Scheduler struct {
	dir   *directory.Directory
	weeks *week.Resolver
}

func NewScheduler(dir *directory.Directory, weeks *week.Resolver) *Scheduler {
	return &Scheduler{dir: dir, weeks: weeks}
}

// Set validates and stores an employee's remote dates for a week. The
// employee reference may be a directory id or a messaging id. The message
// is user-facing for both outcomes.
//
// Every write also prunes the employee's entries for weeks whose Monday
// is more than a week in the past; stale data for other employees is left
// until their own next write.
func (s *Scheduler) Set(ctx context.Context, employeeRef, weekMonday string, dates []string) (bool, string) {
	emp, ok := s.dir.Resolve(ctx, employeeRef)
	if !ok {
		slog.Warn("remote days: employee not found", "ref", employeeRef)
		return false, "employee not found"
	}

	if len(dates) == 0 {
		return false, "select at least one day"
	}
	if len(dates) > MaxDaysPerWeek {
		return false, fmt.Sprintf("you can select at most %d remote days per week", MaxDaysPerWeek)
	}

	span, err := s.weeks.Dates(weekMonday)
	if err != nil {
		return false, "cannot determine the week's dates"
	}
	for _, date := range dates {
		if !contains(span, date) {
			return false, fmt.Sprintf("%s is not a weekday of the week of %s", date, weekMonday)
		}
	}

	err = s.dir.UpdateEmployee(ctx, emp.ID, func(e *directory.Employee) error {
		e.RemoteDates = s.prune(e.RemoteDates)
		e.RemoteDates[weekMonday] = dates
		return nil
	})
	if err != nil {
		slog.Error("cannot save remote days", "employee", emp.ID, "error", err)
		return false, "error saving remote days"
	}

	return true, fmt.Sprintf("remote days set for %s (week of %s): %s",
		emp.Name, weekMonday, strings.Join(dates, ", "))
}

// Clear drops an employee's remote entry for a week; clearing an absent
// entry succeeds.
func (s *Scheduler) Clear(ctx context.Context, employeeRef, weekMonday string) (bool, string) {
	emp, ok := s.dir.Resolve(ctx, employeeRef)
	if !ok {
		return false, fmt.Sprintf("employee %s not found", employeeRef)
	}
	if _, exists := emp.RemoteDates[weekMonday]; !exists {
		return true, "no remote days found for this week"
	}

	err := s.dir.UpdateEmployee(ctx, emp.ID, func(e *directory.Employee) error {
		delete(e.RemoteDates, weekMonday)
		return nil
	})
	if err != nil {
		slog.Error("cannot clear remote days", "employee", emp.ID, "error", err)
		return false, "error saving changes"
	}
	return true, fmt.Sprintf("remote days cleared for week of %s", weekMonday)
}

// OnDate returns the employees working remotely on a dd/mm date, ordered
// by id. An employee appearing in several week entries is reported once.
func (s *Scheduler) OnDate(ctx context.Context, date string) []directory.Employee {
	var out []directory.Employee
	for _, emp := range s.dir.Employees(ctx) {
		for _, dates := range emp.RemoteDates {
			if contains(dates, date) {
				out = append(out, emp)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DaySummary lists who is remote on one date of a summarized week.
type DaySummary struct {
	Date      string               `json:"date"`
	Weekday   string               `json:"weekday"`
	Employees []directory.Employee `json:"employees,omitempty"`
}

// WeekSummary aggregates a week's remote schedule with its statistics.
type WeekSummary struct {
	WeekMonday      string       `json:"week_monday"`
	Days            []DaySummary `json:"days"`
	UniqueEmployees int          `json:"unique_employees"`
	TotalRemoteDays int          `json:"total_remote_days"`
}

var weekdayNames = [5]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Summary builds the remote schedule for the week of the given Monday.
func (s *Scheduler) Summary(ctx context.Context, weekMonday string) (WeekSummary, error) {
	span, err := s.weeks.Dates(weekMonday)
	if err != nil {
		return WeekSummary{}, err
	}

	summary := WeekSummary{WeekMonday: weekMonday}
	seen := map[string]bool{}
	for i, date := range span {
		employees := s.OnDate(ctx, date)
		summary.Days = append(summary.Days, DaySummary{
			Date:      date,
			Weekday:   weekdayNames[i],
			Employees: employees,
		})
		summary.TotalRemoteDays += len(employees)
		for _, emp := range employees {
			seen[emp.ID] = true
		}
	}
	summary.UniqueEmployees = len(seen)
	return summary, nil
}

// NextWeekSummary is the Friday-afternoon view: the schedule for the
// upcoming week.
func (s *Scheduler) NextWeekSummary(ctx context.Context) (WeekSummary, error) {
	return s.Summary(ctx, s.weeks.NextMonday())
}

// prune drops entries for weeks whose Monday is more than pruneGraceDays
// before today, and entries whose key does not parse at all.
func (s *Scheduler) prune(remoteDates map[string][]string) map[string][]string {
	kept := map[string][]string{}
	now := s.weeks.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, -pruneGraceDays)

	for weekKey, dates := range remoteDates {
		monday, err := s.weeks.DateInCurrentYear(weekKey)
		if err != nil {
			slog.Warn("dropping malformed remote week key", "key", weekKey)
			continue
		}
		if monday.Before(cutoff) {
			continue
		}
		kept[weekKey] = dates
	}
	return kept
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
