package directory_test

import (
	"context"
	"testing"

	"sup-routine-backend/internal/directory"
	"sup-routine-backend/internal/store"
)

// legacyEmployeesDoc mimics an old blob where assignment sections still
// lived next to employee records.
const legacyEmployeesDoc = `{
	"1": {
		"name": "Anna",
		"slack_id": "U111",
		"username": "anna",
		"morning_dates": ["03/02", "04/02", "05/02"],
		"evening_dates": ["06/02"]
	},
	"2": {
		"name": "Boris",
		"slack_id": "U222",
		"username": "boris",
		"morning_dates": ["03/02"],
		"remote_dates": {"03/02": ["04/02"]}
	},
	"task_assignments": {"LPB": "U111"},
	"weekly_duty_assignments": {"03/02": {"FIN-DUTY": "U222"}},
	"special_dates": {"25/12": {"type": "christmas", "description": "Christmas"}}
}`

func seedDirectory(t *testing.T) (*directory.Directory, *store.MemStore) {
	t.Helper()
	st := store.NewMemStore()
	err := st.Update(context.Background(), store.KeyEmployees, func([]byte) ([]byte, error) {
		return []byte(legacyEmployeesDoc), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return directory.New(st), st
}

func TestEmployeesSkipsLegacySections(t *testing.T) {
	d, _ := seedDirectory(t)
	employees := d.Employees(context.Background())
	if len(employees) != 2 {
		t.Fatalf("Employees = %d records, want 2", len(employees))
	}
	if _, ok := employees["task_assignments"]; ok {
		t.Error("legacy task_assignments section leaked into employee set")
	}
	if employees["1"].Name != "Anna" || employees["1"].ID != "1" {
		t.Errorf("employee 1 = %+v", employees["1"])
	}
}

func TestResolve(t *testing.T) {
	d, _ := seedDirectory(t)
	ctx := context.Background()

	if emp, ok := d.Resolve(ctx, "1"); !ok || emp.Name != "Anna" {
		t.Errorf("Resolve(1) = %+v, %v", emp, ok)
	}
	if emp, ok := d.Resolve(ctx, "U222"); !ok || emp.Name != "Boris" {
		t.Errorf("Resolve(U222) = %+v, %v", emp, ok)
	}
	if _, ok := d.Resolve(ctx, "U999"); ok {
		t.Error("Resolve(U999) should fail")
	}
}

func TestFindByUsername(t *testing.T) {
	d, _ := seedDirectory(t)
	ctx := context.Background()

	for _, ref := range []string{"boris", "@boris"} {
		emp, ok := d.FindByUsername(ctx, ref)
		if !ok || emp.SlackID != "U222" {
			t.Errorf("FindByUsername(%q) = %+v, %v", ref, emp, ok)
		}
	}
	if _, ok := d.FindByUsername(ctx, "nobody"); ok {
		t.Error("FindByUsername(nobody) should fail")
	}
}

func TestWorkingOn(t *testing.T) {
	d, _ := seedDirectory(t)
	ctx := context.Background()

	morning := d.WorkingOn(ctx, "03/02", "morning")
	if len(morning) != 2 {
		t.Fatalf("WorkingOn(03/02, morning) = %d employees, want 2", len(morning))
	}
	if morning[0].ID != "1" || morning[1].ID != "2" {
		t.Errorf("WorkingOn not ordered by id: %v, %v", morning[0].ID, morning[1].ID)
	}

	evening := d.WorkingOn(ctx, "06/02", "evening")
	if len(evening) != 1 || evening[0].Name != "Anna" {
		t.Errorf("WorkingOn(06/02, evening) = %+v", evening)
	}

	if got := d.WorkingOn(ctx, "03/02", "night"); got != nil {
		t.Errorf("WorkingOn with unknown period = %v, want nil", got)
	}
}

func TestUpdateEmployee(t *testing.T) {
	d, _ := seedDirectory(t)
	ctx := context.Background()

	err := d.UpdateEmployee(ctx, "1", func(emp *directory.Employee) error {
		emp.RemoteDates = map[string][]string{"10/02": {"11/02"}}
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateEmployee: %v", err)
	}

	emp, ok := d.Get(ctx, "1")
	if !ok {
		t.Fatal("employee 1 disappeared after update")
	}
	if len(emp.RemoteDates["10/02"]) != 1 {
		t.Errorf("remote dates not persisted: %+v", emp.RemoteDates)
	}

	// Other records survive the rewrite.
	if _, ok := d.Get(ctx, "2"); !ok {
		t.Error("employee 2 lost after updating employee 1")
	}
}

func TestTaskAssignments(t *testing.T) {
	d, _ := seedDirectory(t)
	ctx := context.Background()

	// Assignments live in their own document now, so the legacy section
	// embedded in the employees blob is not visible.
	if got := d.Assignment(ctx, "LPB"); got != "" {
		t.Errorf("Assignment(LPB) from legacy blob = %q, want empty", got)
	}

	if err := d.SetAssignment(ctx, "lpb", "U111"); err != nil {
		t.Fatal(err)
	}
	if got := d.Assignment(ctx, "LPB"); got != "U111" {
		t.Errorf("Assignment(LPB) = %q, want U111", got)
	}

	if err := d.SetAssignment(ctx, "LPB", ""); err != nil {
		t.Fatal(err)
	}
	if got := d.Assignment(ctx, "LPB"); got != "" {
		t.Errorf("Assignment(LPB) after removal = %q, want empty", got)
	}
}

func TestSpecialDates(t *testing.T) {
	d, _ := seedDirectory(t)
	ctx := context.Background()

	if err := d.SetSpecialDate(ctx, "31/12", directory.SpecialDate{
		Type: "new_year", Description: "New Year's Eve",
	}); err != nil {
		t.Fatal(err)
	}

	sd, ok := d.CheckSpecialDate(ctx, "31/12")
	if !ok || sd.Type != "new_year" {
		t.Errorf("CheckSpecialDate(31/12) = %+v, %v", sd, ok)
	}
	if _, ok := d.CheckSpecialDate(ctx, "01/04"); ok {
		t.Error("CheckSpecialDate(01/04) should miss")
	}
}

func TestCorruptedEmployeesDegradesToEmpty(t *testing.T) {
	st := store.NewMemStore()
	ctx := context.Background()
	err := st.Update(ctx, store.KeyEmployees, func([]byte) ([]byte, error) {
		return []byte("not json at all"), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	d := directory.New(st)
	if got := d.Employees(ctx); len(got) != 0 {
		t.Errorf("Employees on corrupted doc = %d records, want 0", len(got))
	}
}
