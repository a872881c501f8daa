package sched

import (
	"errors"
	"testing"

	"github.com/joshharrison/latepack/internal/task"
)

// sixTasks is the representative planning scenario: task 5 is cancelled and
// must be excluded, task 6 depends on tasks 4 and 1.
func sixTasks() []*task.Task {
	return []*task.Task{
		{ID: "1", Deadline: 50, Duration: 10, Priority: 3, Status: task.StatusTodo},
		{ID: "2", Deadline: 55, Duration: 5, Priority: 5, Status: task.StatusInProgress},
		{ID: "3", Deadline: 60, Duration: 5, Priority: 2, Status: task.StatusTodo},
		{ID: "4", Deadline: 60, Duration: 10, Priority: 4, Status: task.StatusPaused},
		{ID: "5", Deadline: 100, Duration: 5, Priority: 1, Status: task.StatusCancelled},
		{ID: "6", Deadline: 70, Duration: 5, Priority: 3, Status: task.StatusTodo, DependsOn: []string{"4", "1"}},
	}
}

func assertWindow(t *testing.T, res *Result, id string, start, finish float64) {
	t.Helper()
	w, ok := res.Window(id)
	if !ok {
		t.Fatalf("task %s: no window assigned", id)
	}
	if w.Start != start || w.Finish != finish {
		t.Errorf("task %s: expected window [%v, %v], got [%v, %v]", id, start, finish, w.Start, w.Finish)
	}
}

// assertScheduleInvariants checks the guarantees that hold for every run:
// finish <= deadline and finish - start == duration for each scheduled task.
func assertScheduleInvariants(t *testing.T, tasks []*task.Task, res *Result) {
	t.Helper()
	byID := make(map[string]*task.Task)
	for _, tk := range tasks {
		byID[tk.ID] = tk
	}
	for _, id := range res.Order {
		tk := byID[id]
		w := res.Windows[id]
		if w.Finish > tk.Deadline {
			t.Errorf("task %s: finish %v exceeds deadline %v", id, w.Finish, tk.Deadline)
		}
		if w.Finish-w.Start != tk.Duration {
			t.Errorf("task %s: window length %v != duration %v", id, w.Finish-w.Start, tk.Duration)
		}
	}
}

func TestSchedule_ScenarioAlphaZero(t *testing.T) {
	tasks := sixTasks()

	res, err := Schedule(tasks, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pure deadline ordering among ready tasks; 6 waits for 1 and 4.
	want := []string{"1", "2", "3", "4", "6"}
	if len(res.Order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, res.Order)
	}
	for i := range want {
		if res.Order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, res.Order)
		}
	}

	if res.Horizon != 70 {
		t.Errorf("expected horizon 70, got %v", res.Horizon)
	}

	// Backward packing from the horizon, each finish capped by its deadline.
	assertWindow(t, res, "6", 65, 70)
	assertWindow(t, res, "4", 50, 60)
	assertWindow(t, res, "3", 45, 50)
	assertWindow(t, res, "2", 40, 45)
	assertWindow(t, res, "1", 30, 40)

	assertScheduleInvariants(t, tasks, res)

	if len(res.Inversions) != 0 {
		t.Errorf("expected no inversions, got %v", res.Inversions)
	}
}

func TestSchedule_ScenarioAlphaFive(t *testing.T) {
	tasks := sixTasks()

	res, err := Schedule(tasks, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Effective deadlines: 1→35, 2→30, 3→50, 4→40, 6→55.
	// Priority 5 task 2 moves ahead of everything.
	want := []string{"2", "1", "4", "3", "6"}
	for i := range want {
		if res.Order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, res.Order)
		}
	}

	assertWindow(t, res, "6", 65, 70)
	assertWindow(t, res, "3", 55, 60)
	assertWindow(t, res, "4", 45, 55)
	assertWindow(t, res, "1", 35, 45)
	assertWindow(t, res, "2", 30, 35)

	assertScheduleInvariants(t, tasks, res)
}

func TestSchedule_StatusFiltering(t *testing.T) {
	tasks := sixTasks()

	res, err := Schedule(tasks, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := res.Window("5"); ok {
		t.Error("cancelled task 5 must not receive a window")
	}
	for _, id := range res.Order {
		if id == "5" {
			t.Error("cancelled task 5 must not appear in the order")
		}
	}
}

func TestSchedule_DependentOfFilteredTask(t *testing.T) {
	// b depends on a done task: the dependency drops away with the filter
	// and b schedules freely.
	tasks := []*task.Task{
		{ID: "a", Deadline: 10, Duration: 5, Priority: 3, Status: task.StatusDone},
		{ID: "b", Deadline: 20, Duration: 5, Priority: 3, Status: task.StatusTodo, DependsOn: []string{"a"}},
	}

	res, err := Schedule(tasks, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Order) != 1 || res.Order[0] != "b" {
		t.Fatalf("expected order [b], got %v", res.Order)
	}
	assertWindow(t, res, "b", 15, 20)
}

func TestSchedule_EmptyInput(t *testing.T) {
	res, err := Schedule(nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Empty() {
		t.Errorf("expected empty result, got %v", res.Order)
	}
}

func TestSchedule_AllFilteredOut(t *testing.T) {
	tasks := []*task.Task{
		{ID: "a", Deadline: 10, Duration: 5, Priority: 3, Status: task.StatusDone},
		{ID: "b", Deadline: 20, Duration: 5, Priority: 3, Status: task.StatusDeleted},
		{ID: "c", Deadline: 30, Duration: 5, Priority: 3, Status: task.StatusCancelled},
	}

	res, err := Schedule(tasks, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Empty() {
		t.Errorf("expected empty result, got %v", res.Order)
	}
}

func TestScheduleFiltered_CustomStatusSet(t *testing.T) {
	// An override that admits done tasks schedules them like any other;
	// the untouched default still drops them.
	tasks := []*task.Task{
		{ID: "a", Deadline: 10, Duration: 5, Priority: 3, Status: task.StatusDone},
		{ID: "b", Deadline: 20, Duration: 5, Priority: 3, Status: task.StatusTodo, DependsOn: []string{"a"}},
	}
	keep := func(tk *task.Task) bool {
		return tk.Status == task.StatusDone || tk.Status == task.StatusTodo
	}

	res, err := ScheduleFiltered(tasks, 0, keep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Order) != 2 {
		t.Fatalf("expected both tasks scheduled, got %v", res.Order)
	}
	assertWindow(t, res, "b", 15, 20)
	assertWindow(t, res, "a", 5, 10)

	def, err := Schedule(tasks, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := def.Window("a"); ok {
		t.Error("done task a must stay excluded without an override")
	}
}

func TestScheduleFiltered_NothingKept(t *testing.T) {
	tasks := []*task.Task{
		{ID: "a", Deadline: 10, Duration: 5, Priority: 3, Status: task.StatusTodo},
	}

	res, err := ScheduleFiltered(tasks, 0, func(*task.Task) bool { return false })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Empty() {
		t.Errorf("expected empty result, got %v", res.Order)
	}
}

func TestSchedule_CyclePropagates(t *testing.T) {
	tasks := []*task.Task{
		{ID: "a", Deadline: 10, Duration: 1, Priority: 3, Status: task.StatusTodo, DependsOn: []string{"b"}},
		{ID: "b", Deadline: 20, Duration: 1, Priority: 3, Status: task.StatusTodo, DependsOn: []string{"a"}},
	}

	res, err := Schedule(tasks, 0)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected cycle error, got %v", err)
	}
	if res != nil {
		t.Errorf("expected no result on cycle, got %+v", res)
	}
}

func TestSchedule_OverloadGoesNegative(t *testing.T) {
	// 30 units of work against a deadline of 10: the chain packs backward
	// past zero. Negative start signals overload, not an error.
	tasks := []*task.Task{
		{ID: "a", Deadline: 10, Duration: 10, Priority: 3, Status: task.StatusTodo},
		{ID: "b", Deadline: 10, Duration: 10, Priority: 3, Status: task.StatusTodo, DependsOn: []string{"a"}},
		{ID: "c", Deadline: 10, Duration: 10, Priority: 3, Status: task.StatusTodo, DependsOn: []string{"b"}},
	}

	res, err := Schedule(tasks, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertWindow(t, res, "c", 0, 10)
	assertWindow(t, res, "b", -10, 0)
	assertWindow(t, res, "a", -20, -10)
	assertScheduleInvariants(t, tasks, res)
}

func TestSchedule_DoesNotMutateInput(t *testing.T) {
	tasks := sixTasks()
	before := make([]task.Task, len(tasks))
	for i, tk := range tasks {
		before[i] = *tk
	}

	if _, err := Schedule(tasks, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, tk := range tasks {
		if tk.ID != before[i].ID || tk.Deadline != before[i].Deadline ||
			tk.Duration != before[i].Duration || tk.Priority != before[i].Priority ||
			tk.Status != before[i].Status {
			t.Errorf("task %s mutated by Schedule", tk.ID)
		}
	}
}

func TestSchedule_Determinism(t *testing.T) {
	first, err := Schedule(sixTasks(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Schedule(sixTasks(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j := range first.Order {
			if again.Order[j] != first.Order[j] {
				t.Fatalf("run %d: order changed: %v vs %v", i, again.Order, first.Order)
			}
		}
		for id, w := range first.Windows {
			if again.Windows[id] != w {
				t.Fatalf("run %d: window for %s changed: %v vs %v", i, id, again.Windows[id], w)
			}
		}
	}
}

func TestSchedule_InversionDiagnostic(t *testing.T) {
	// A negative duration (passed through unvalidated) can push an
	// intermediate start past an earlier task's finish, producing a
	// dependency window inversion. It is reported, never repaired.
	tasks := []*task.Task{
		{ID: "a", Deadline: 100, Duration: 10, Priority: 3, Status: task.StatusTodo},
		{ID: "b", Deadline: 100, Duration: -50, Priority: 3, Status: task.StatusTodo},
		{ID: "c", Deadline: 100, Duration: 5, Priority: 3, Status: task.StatusTodo, DependsOn: []string{"a"}},
	}

	res, err := Schedule(tasks, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Inversions) != 1 {
		t.Fatalf("expected 1 inversion, got %v", res.Inversions)
	}
	inv := res.Inversions[0]
	if inv.DepID != "a" || inv.TaskID != "c" {
		t.Errorf("expected inversion a -> c, got %+v", inv)
	}

	// Times are left as computed.
	assertWindow(t, res, "c", 95, 100)
	assertWindow(t, res, "a", 90, 100)
}
