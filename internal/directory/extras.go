package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"sup-routine-backend/internal/store"
)

// SpecialDate marks a dd/mm date the presentation layer should call out
// (holidays, reduced-staff days).
type SpecialDate struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// SpecialDates returns the whole special-dates document.
func (d *Directory) SpecialDates(ctx context.Context) map[string]SpecialDate {
	out := map[string]SpecialDate{}
	d.loadDoc(ctx, store.KeySpecialDates, &out)
	return out
}

// CheckSpecialDate looks up one dd/mm date.
func (d *Directory) CheckSpecialDate(ctx context.Context, date string) (SpecialDate, bool) {
	sd, ok := d.SpecialDates(ctx)[date]
	return sd, ok
}

// SetSpecialDate adds or replaces a special date entry.
func (d *Directory) SetSpecialDate(ctx context.Context, date string, sd SpecialDate) error {
	return d.store.Update(ctx, store.KeySpecialDates, func(cur []byte) ([]byte, error) {
		dates := map[string]SpecialDate{}
		decodeDoc(cur, &dates, store.KeySpecialDates)
		dates[date] = sd
		return json.Marshal(dates)
	})
}

// TaskAssignments returns the task-key to messaging-id map of per-task
// daily assignees.
func (d *Directory) TaskAssignments(ctx context.Context) map[string]string {
	out := map[string]string{}
	d.loadDoc(ctx, store.KeyTaskAssignments, &out)
	return out
}

// Assignment returns the assignee for a task name, empty when unassigned.
func (d *Directory) Assignment(ctx context.Context, taskName string) string {
	return d.TaskAssignments(ctx)[strings.ToUpper(taskName)]
}

// SetAssignment assigns a user to a task; an empty userID removes the
// assignment.
func (d *Directory) SetAssignment(ctx context.Context, taskName, userID string) error {
	key := strings.ToUpper(taskName)
	return d.store.Update(ctx, store.KeyTaskAssignments, func(cur []byte) ([]byte, error) {
		assignments := map[string]string{}
		decodeDoc(cur, &assignments, store.KeyTaskAssignments)
		if userID == "" {
			delete(assignments, key)
		} else {
			assignments[key] = userID
		}
		return json.Marshal(assignments)
	})
}

func (d *Directory) loadDoc(ctx context.Context, key string, out any) {
	data, err := d.store.Get(ctx, key)
	if err != nil {
		slog.Error("cannot load document", "key", key, "error", err)
		return
	}
	decodeDoc(data, out, key)
}

func decodeDoc(data []byte, out any, key string) {
	if data == nil {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Error("corrupted document", "key", key, "error", err)
	}
}
