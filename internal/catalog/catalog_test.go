package catalog_test

import (
	"context"
	"testing"

	"sup-routine-backend/internal/catalog"
	"sup-routine-backend/internal/store"
)

func seedCatalog(t *testing.T) (*catalog.Catalog, *store.MemStore) {
	t.Helper()
	st := store.NewMemStore()
	c := catalog.New(st)
	base := map[string]catalog.Task{
		"1": {Name: "LPB", Deadline: "11:00", Period: "morning", Days: "all"},
		"2": {Name: "KYC-1", Deadline: "09:30", Period: "morning", Days: "monday, wednesday"},
		"3": {Name: "Statements", Period: "evening", Days: "all"},
		"4": {Name: "FIN-DUTY", Type: "duty", Days: "all"},
		"5": {Name: "Backups", Deadline: "16:00", Days: "friday"},
	}
	if err := c.Save(context.Background(), base); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return c, st
}

func names(tasks []catalog.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}

func TestForWeekdayFilterAndOrder(t *testing.T) {
	c, _ := seedCatalog(t)
	ctx := context.Background()

	got := names(c.ForWeekday(ctx, "Monday"))
	// Deadline ascending, no-deadline tasks last.
	want := []string{"KYC-1", "LPB", "FIN-DUTY", "Statements"}
	if len(got) != len(want) {
		t.Fatalf("ForWeekday(Monday) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ForWeekday(Monday) = %v, want %v", got, want)
		}
	}

	tuesday := names(c.ForWeekday(ctx, "Tuesday"))
	for _, n := range tuesday {
		if n == "KYC-1" || n == "Backups" {
			t.Errorf("ForWeekday(Tuesday) unexpectedly includes %s", n)
		}
	}
}

func TestRegularForWeekdayExcludesDuties(t *testing.T) {
	c, _ := seedCatalog(t)
	for _, task := range c.RegularForWeekday(context.Background(), "Monday") {
		if task.Type == "duty" {
			t.Errorf("RegularForWeekday returned duty task %s", task.Name)
		}
	}
}

func TestDutyTasks(t *testing.T) {
	c, _ := seedCatalog(t)
	duties := c.DutyTasks(context.Background())
	if len(duties) != 1 || duties[0].Name != "FIN-DUTY" {
		t.Errorf("DutyTasks = %v, want [FIN-DUTY]", names(duties))
	}
}

func TestDeadlines(t *testing.T) {
	c, _ := seedCatalog(t)
	deadlines := c.Deadlines(context.Background())
	if deadlines["LPB"] != "11:00" {
		t.Errorf("deadline for LPB = %q, want %q", deadlines["LPB"], "11:00")
	}
	if d, ok := deadlines["STATEMENTS"]; !ok || d != "" {
		t.Errorf("STATEMENTS should be present with empty deadline, got %q (ok=%v)", d, ok)
	}
}

func TestFindByPattern(t *testing.T) {
	c, _ := seedCatalog(t)
	if got := c.FindByPattern(context.Background(), "fin-duty"); got != "FIN-DUTY" {
		t.Errorf("FindByPattern(fin-duty) = %q, want FIN-DUTY", got)
	}
	if got := c.FindByPattern(context.Background(), "nothing"); got != "" {
		t.Errorf("FindByPattern(nothing) = %q, want empty", got)
	}
}

func TestFindInText(t *testing.T) {
	c, _ := seedCatalog(t)
	ctx := context.Background()

	tests := []struct {
		text string
		want string
	}{
		{"<@BOT> LPB done", "LPB"},
		{"<@BOT> lpb is done", "LPB"},
		{"kyc-1 checks all done", "KYC-1"},
		{"LPB is finished", ""},
		{"nothing here", ""},
	}
	for _, tt := range tests {
		if got := c.FindInText(ctx, tt.text); got != tt.want {
			t.Errorf("FindInText(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCorruptedCatalogDegradesToEmpty(t *testing.T) {
	st := store.NewMemStore()
	ctx := context.Background()
	err := st.Update(ctx, store.KeyTaskBase, func([]byte) ([]byte, error) {
		return []byte("{not json"), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	c := catalog.New(st)
	if got := c.All(ctx); len(got) != 0 {
		t.Errorf("All on corrupted doc = %v, want empty", names(got))
	}
}

func TestGroupByPeriod(t *testing.T) {
	c, _ := seedCatalog(t)
	g := catalog.GroupByPeriod(c.ForWeekday(context.Background(), "Friday"))
	if len(g.Morning) != 1 || g.Morning[0].Name != "LPB" {
		t.Errorf("morning group = %v", names(g.Morning))
	}
	if len(g.Evening) != 1 || g.Evening[0].Name != "Statements" {
		t.Errorf("evening group = %v", names(g.Evening))
	}
	// FIN-DUTY and Backups have no period.
	if len(g.Ungrouped) != 2 {
		t.Errorf("ungrouped = %v, want 2 tasks", names(g.Ungrouped))
	}
}
