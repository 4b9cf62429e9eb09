// Package directory is the shared read/write surface over employee
// records: identities, declared work-day calendars and remote-day maps.
//
// Employees live in their own store document; task assignments and
// special dates, which historically lived inside the same blob, are
// separate documents so that iterating employees never needs an
// exclusion list.
package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"sup-routine-backend/internal/store"
)

// Employee is one directory record. The map key in the stored document
// is the employee id ("1", "2", ...).
type Employee struct {
	ID           string              `json:"-"`
	Name         string              `json:"name"`
	SlackID      string              `json:"slack_id"`
	Username     string              `json:"username"`
	MorningDates []string            `json:"morning_dates,omitempty"`
	EveningDates []string            `json:"evening_dates,omitempty"`
	RemoteDates  map[string][]string `json:"remote_dates,omitempty"`
}

// WorksMorning reports whether the employee's morning calendar contains
// the dd/mm date.
func (e Employee) WorksMorning(date string) bool {
	for _, d := range e.MorningDates {
		if d == date {
			return true
		}
	}
	return false
}

// legacySections are keys old blobs embedded alongside employee records.
// They are stripped once at the decode boundary; current writes keep them
// in their own documents.
var legacySections = map[string]bool{
	"task_assignments":        true,
	"weekly_duty_assignments": true,
	"special_dates":           true,
}

type Directory struct {
	store store.Store
}

func New(st store.Store) *Directory {
	return &Directory{store: st}
}

// Employees returns all directory records keyed by employee id. Missing
// or corrupted documents degrade to an empty map with a logged warning.
func (d *Directory) Employees(ctx context.Context) map[string]Employee {
	data, err := d.store.Get(ctx, store.KeyEmployees)
	if err != nil {
		slog.Error("cannot load employees", "error", err)
		return map[string]Employee{}
	}
	return decodeEmployees(data)
}

// Get looks up an employee by directory id.
func (d *Directory) Get(ctx context.Context, id string) (Employee, bool) {
	emp, ok := d.Employees(ctx)[id]
	return emp, ok
}

// FindBySlackID looks up an employee by messaging id.
func (d *Directory) FindBySlackID(ctx context.Context, slackID string) (Employee, bool) {
	if slackID == "" {
		return Employee{}, false
	}
	for _, emp := range d.Employees(ctx) {
		if emp.SlackID == slackID {
			return emp, true
		}
	}
	return Employee{}, false
}

// FindByUsername looks up an employee by chat username, tolerating a
// leading "@".
func (d *Directory) FindByUsername(ctx context.Context, username string) (Employee, bool) {
	clean := username
	for len(clean) > 0 && clean[0] == '@' {
		clean = clean[1:]
	}
	if clean == "" {
		return Employee{}, false
	}
	for _, emp := range d.Employees(ctx) {
		if emp.Username == clean {
			return emp, true
		}
	}
	return Employee{}, false
}

// Resolve accepts either a directory id or a messaging id.
func (d *Directory) Resolve(ctx context.Context, ref string) (Employee, bool) {
	if emp, ok := d.Get(ctx, ref); ok {
		return emp, true
	}
	return d.FindBySlackID(ctx, ref)
}

// WorkingOn returns the employees whose calendar for the given period
// ("morning" or "evening") contains the dd/mm date, ordered by id.
func (d *Directory) WorkingOn(ctx context.Context, date, period string) []Employee {
	var out []Employee
	for _, emp := range d.Employees(ctx) {
		var dates []string
		switch period {
		case "morning":
			dates = emp.MorningDates
		case "evening":
			dates = emp.EveningDates
		default:
			return nil
		}
		for _, dd := range dates {
			if dd == date {
				out = append(out, emp)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateEmployee applies fn to one record inside an optimistic
// read-modify-write of the employees document.
func (d *Directory) UpdateEmployee(ctx context.Context, id string, fn func(*Employee) error) error {
	return d.store.Update(ctx, store.KeyEmployees, func(cur []byte) ([]byte, error) {
		employees := decodeEmployees(cur)
		emp := employees[id]
		emp.ID = id
		if err := fn(&emp); err != nil {
			return nil, err
		}
		employees[id] = emp
		return encodeEmployees(employees)
	})
}

func decodeEmployees(data []byte) map[string]Employee {
	employees := map[string]Employee{}
	if data == nil {
		return employees
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Error("corrupted employees document", "error", err)
		return employees
	}

	for id, msg := range raw {
		if legacySections[id] {
			continue
		}
		var emp Employee
		if err := json.Unmarshal(msg, &emp); err != nil {
			slog.Warn("skipping malformed employee record", "employee_id", id, "error", err)
			continue
		}
		emp.ID = id
		employees[id] = emp
	}
	return employees
}

func encodeEmployees(employees map[string]Employee) ([]byte, error) {
	return json.Marshal(employees)
}
