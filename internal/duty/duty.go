// Package duty validates and stores the weekly duty rotation: which
// employee covers which duty for a given week.
package duty

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"sup-routine-backend/internal/config"
	"sup-routine-backend/internal/directory"
	"sup-routine-backend/internal/store"
	"sup-routine-backend/internal/week"
)

// MinWorkingDays is the eligibility threshold: an assignee must be on the
// morning calendar for at least this many of the week's five days.
//
// Only the morning calendar is consulted, even for duties that are not
// shift-specific. That matches the live rule; whether evening-only duties
// should generalize it is an open product question.
const MinWorkingDays = 3

// assignments is the stored document: week Monday key to duty key to
// assignee messaging id.
type assignments map[string]map[string]string

// Manager assigns, removes and reads duty rotation entries.
type Manager struct {
	store store.Store
	dir   *directory.Directory
	weeks *week.Resolver
}

func NewManager(st store.Store, dir *directory.Directory, weeks *week.Resolver) *Manager {
	return &Manager{store: st, dir: dir, weeks: weeks}
}

// CanAssign decides whether the employee may take a duty for the week.
// The reason string is user-facing and relayed verbatim by callers.
func (m *Manager) CanAssign(ctx context.Context, slackID, weekMonday string) (bool, string) {
	dates, err := m.weeks.Dates(weekMonday)
	if err != nil {
		return false, "cannot determine the week's dates"
	}

	emp, ok := m.dir.FindBySlackID(ctx, slackID)
	if !ok {
		return false, "employee not found"
	}

	working := 0
	for _, date := range dates {
		if emp.WorksMorning(date) {
			working++
		}
	}

	if working < MinWorkingDays {
		name := emp.Name
		if name == "" {
			name = "the employee"
		}
		return false, fmt.Sprintf("%s works only %d day(s) this week (need at least %d)",
			name, working, MinWorkingDays)
	}
	return true, ""
}

// Assign writes the duty-to-employee mapping for the week. Callers are
// expected to have passed CanAssign first; Assign itself does not
// re-validate.
func (m *Manager) Assign(ctx context.Context, dutyName, weekMonday, slackID string) error {
	dutyKey := strings.ToUpper(dutyName)
	err := m.store.Update(ctx, store.KeyDutyAssignments, func(cur []byte) ([]byte, error) {
		all := decodeAssignments(cur)
		if all[weekMonday] == nil {
			all[weekMonday] = map[string]string{}
		}
		all[weekMonday][dutyKey] = slackID
		return json.Marshal(all)
	})
	if err != nil {
		return err
	}
	slog.Info("duty assigned", "duty", dutyKey, "week", weekMonday, "user", slackID)
	return nil
}

// Remove deletes the week's mapping for a duty; removing an absent entry
// succeeds as a no-op.
func (m *Manager) Remove(ctx context.Context, dutyName, weekMonday string) error {
	dutyKey := strings.ToUpper(dutyName)
	err := m.store.Update(ctx, store.KeyDutyAssignments, func(cur []byte) ([]byte, error) {
		all := decodeAssignments(cur)
		delete(all[weekMonday], dutyKey)
		if len(all[weekMonday]) == 0 {
			delete(all, weekMonday)
		}
		return json.Marshal(all)
	})
	if err != nil {
		return err
	}
	slog.Info("duty assignment removed", "duty", dutyKey, "week", weekMonday)
	return nil
}

// ForWeek returns the duty-to-employee map of a week; empty when nothing
// is assigned.
func (m *Manager) ForWeek(ctx context.Context, weekMonday string) map[string]string {
	data, err := m.store.Get(ctx, store.KeyDutyAssignments)
	if err != nil {
		slog.Error("cannot load duty assignments", "error", err)
		return map[string]string{}
	}
	weekAssignments := decodeAssignments(data)[weekMonday]
	if weekAssignments == nil {
		return map[string]string{}
	}
	return weekAssignments
}

// ResolveType maps a short duty alias ("fin") to its canonical duty name
// ("FIN-DUTY").
func ResolveType(alias string) (string, bool) {
	name, ok := config.DutyTypes[strings.ToLower(alias)]
	return name, ok
}

// TypeAliases lists the accepted duty aliases, sorted for help texts.
func TypeAliases() []string {
	aliases := make([]string, 0, len(config.DutyTypes))
	for alias := range config.DutyTypes {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

func decodeAssignments(data []byte) assignments {
	if data == nil {
		return assignments{}
	}
	var all assignments
	if err := json.Unmarshal(data, &all); err != nil {
		slog.Error("corrupted duty assignments document", "error", err)
		return assignments{}
	}
	if all == nil {
		all = assignments{}
	}
	return all
}
