// Package catalog reads the externally curated task base: which routine
// tasks exist, on which weekdays they apply and with what deadlines.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"sup-routine-backend/internal/store"
)

// deadlineSentinel sorts tasks without a deadline to the end of the day.
const deadlineSentinel = "23:59"

// Task is one catalog entry. The map key in the stored document is the
// task id; Name (upper-cased) is the key used for completion tracking.
type Task struct {
	ID       string `json:"-" yaml:"-"`
	Name     string `json:"name" yaml:"name"`
	Deadline string `json:"deadline,omitempty" yaml:"deadline,omitempty"` // "HH:MM", empty = none
	Period   string `json:"period,omitempty" yaml:"period,omitempty"`     // "", "morning", "evening"
	Days     string `json:"days,omitempty" yaml:"days,omitempty"`         // "all" or weekday names
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`         // "", "duty"
	Comments string `json:"comments,omitempty" yaml:"comments,omitempty"`
	AsanaURL string `json:"asana_url,omitempty" yaml:"asana_url,omitempty"`
}

// Key returns the completion-tracking key for the task.
func (t Task) Key() string {
	return strings.ToUpper(t.Name)
}

// Groups buckets tasks by their period, each bucket deadline-sorted.
type Groups struct {
	Ungrouped []Task
	Morning   []Task
	Evening   []Task
}

// Catalog loads the task base fresh from the store on every call, so it
// always reflects the latest curated state.
type Catalog struct {
	store store.Store
}

func New(st store.Store) *Catalog {
	return &Catalog{store: st}
}

// All returns every task, deadline-sorted.
func (c *Catalog) All(ctx context.Context) []Task {
	base := c.load(ctx)
	tasks := make([]Task, 0, len(base))
	for id, t := range base {
		t.ID = id
		tasks = append(tasks, t)
	}
	sortByDeadline(tasks)
	return tasks
}

// ForWeekday returns the tasks applying on the named weekday
// (case-insensitive), deadline-sorted, tasks without a deadline last.
func (c *Catalog) ForWeekday(ctx context.Context, dayName string) []Task {
	var tasks []Task
	for id, t := range c.load(ctx) {
		if !appliesOn(t, dayName) {
			continue
		}
		t.ID = id
		tasks = append(tasks, t)
	}
	sortByDeadline(tasks)
	return tasks
}

// RegularForWeekday is ForWeekday minus duty tasks: the day-to-day list
// a completion session is opened for.
func (c *Catalog) RegularForWeekday(ctx context.Context, dayName string) []Task {
	all := c.ForWeekday(ctx, dayName)
	tasks := all[:0]
	for _, t := range all {
		if t.Type != "duty" {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// DutyTasks returns the weekly-rotating duty tasks.
func (c *Catalog) DutyTasks(ctx context.Context) []Task {
	var tasks []Task
	for id, t := range c.load(ctx) {
		if t.Type != "duty" {
			continue
		}
		t.ID = id
		tasks = append(tasks, t)
	}
	sortByDeadline(tasks)
	return tasks
}

// Deadlines maps every task key to its "HH:MM" deadline; tasks without
// one map to the empty string.
func (c *Catalog) Deadlines(ctx context.Context) map[string]string {
	deadlines := map[string]string{}
	for _, t := range c.load(ctx) {
		if t.Name == "" {
			continue
		}
		deadlines[t.Key()] = t.Deadline
	}
	return deadlines
}

// FindByPattern returns the name of the first task whose name contains
// the pattern, case-insensitive. Empty string when nothing matches.
func (c *Catalog) FindByPattern(ctx context.Context, pattern string) string {
	pattern = strings.ToLower(pattern)
	for _, t := range c.All(ctx) {
		if strings.Contains(strings.ToLower(t.Name), pattern) {
			return t.Name
		}
	}
	return ""
}

// FindInText extracts a task key from free text of the form
// "... <task name> ... done". Empty string when no task is mentioned.
func (c *Catalog) FindInText(ctx context.Context, text string) string {
	var names []string
	for _, t := range c.load(ctx) {
		if t.Name != "" {
			names = append(names, regexp.QuoteMeta(t.Name))
		}
	}
	if len(names) == 0 {
		return ""
	}
	// Longer names first so "KYC-10" wins over "KYC-1".
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	re, err := regexp.Compile(`(?i)(` + strings.Join(names, "|") + `).*done`)
	if err != nil {
		slog.Warn("cannot build task regex", "error", err)
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

// Save replaces the whole task base. Used by catalog seeding.
func (c *Catalog) Save(ctx context.Context, base map[string]Task) error {
	return c.store.Update(ctx, store.KeyTaskBase, func([]byte) ([]byte, error) {
		return json.Marshal(base)
	})
}

// GroupByPeriod splits tasks into ungrouped, morning and evening buckets,
// keeping the deadline order inside each bucket.
func GroupByPeriod(tasks []Task) Groups {
	var g Groups
	for _, t := range tasks {
		switch t.Period {
		case "morning":
			g.Morning = append(g.Morning, t)
		case "evening":
			g.Evening = append(g.Evening, t)
		default:
			g.Ungrouped = append(g.Ungrouped, t)
		}
	}
	return g
}

// load fetches the task base document. Missing or corrupted documents
// degrade to an empty catalog so the engine keeps operating.
func (c *Catalog) load(ctx context.Context) map[string]Task {
	data, err := c.store.Get(ctx, store.KeyTaskBase)
	if err != nil {
		slog.Error("cannot load task base", "error", err)
		return map[string]Task{}
	}
	if data == nil {
		slog.Warn("task base is empty or not found")
		return map[string]Task{}
	}
	var base map[string]Task
	if err := json.Unmarshal(data, &base); err != nil {
		slog.Error("corrupted task base document", "error", err)
		return map[string]Task{}
	}
	return base
}

func appliesOn(t Task, dayName string) bool {
	days := strings.ToLower(t.Days)
	if days == "" || days == "all" {
		return true
	}
	return strings.Contains(days, strings.ToLower(dayName))
}

func sortByDeadline(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		di, dj := tasks[i].Deadline, tasks[j].Deadline
		if di == "" {
			di = deadlineSentinel
		}
		if dj == "" {
			dj = deadlineSentinel
		}
		if di != dj {
			return di < dj
		}
		return tasks[i].Name < tasks[j].Name
	})
}
