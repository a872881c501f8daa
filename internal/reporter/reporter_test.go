package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/joshharrison/latepack/internal/planner"
	"github.com/joshharrison/latepack/internal/task"
)

func testPlan(t *testing.T, alpha float64) *planner.ExecutionPlan {
	t.Helper()
	tasks := []*task.Task{
		{ID: "spec", Title: "Write the spec", Deadline: 50, Duration: 10, Priority: 3, Status: task.StatusTodo},
		{ID: "ship", Title: "Ship it", Deadline: 70, Duration: 5, Priority: 5, Status: task.StatusTodo, DependsOn: []string{"spec"}},
	}
	plan, err := planner.Generate(tasks, planner.PlanConfig{Alpha: alpha})
	if err != nil {
		t.Fatalf("generate plan: %v", err)
	}
	return plan
}

func TestPrintPlan(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	New(testPlan(t, 0)).PrintPlan(&buf)
	out := buf.String()

	for _, want := range []string{"spec", "ship", "Write the spec", "horizon", "70"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	// spec must be printed before ship (dependency order)
	if strings.Index(out, "spec") > strings.Index(out, "ship") {
		t.Errorf("expected spec before ship in output:\n%s", out)
	}
}

func TestPrintPlan_Empty(t *testing.T) {
	color.NoColor = true

	plan, err := planner.Generate(nil, planner.PlanConfig{})
	if err != nil {
		t.Fatalf("generate plan: %v", err)
	}

	var buf bytes.Buffer
	New(plan).PrintPlan(&buf)
	if !strings.Contains(buf.String(), "Nothing to plan") {
		t.Errorf("expected empty-plan message, got:\n%s", buf.String())
	}
}

func TestPrintPlan_OverloadWarning(t *testing.T) {
	color.NoColor = true

	tasks := []*task.Task{
		{ID: "heavy", Deadline: 5, Duration: 50, Priority: 3, Status: task.StatusTodo},
	}
	plan, err := planner.Generate(tasks, planner.PlanConfig{Alpha: 0})
	if err != nil {
		t.Fatalf("generate plan: %v", err)
	}

	var buf bytes.Buffer
	New(plan).PrintPlan(&buf)
	if !strings.Contains(buf.String(), "overload") {
		t.Errorf("expected overload warning, got:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	color.NoColor = true

	s := New(testPlan(t, 0)).Summary()
	if !strings.Contains(s, "planned 2 tasks") {
		t.Errorf("unexpected summary: %s", s)
	}
}

func TestPrintSweep(t *testing.T) {
	color.NoColor = true

	plans := []*planner.ExecutionPlan{testPlan(t, 0), testPlan(t, 5)}

	var buf bytes.Buffer
	PrintSweep(&buf, plans)
	out := buf.String()

	if !strings.Contains(out, "alpha 0:") || !strings.Contains(out, "alpha 5:") {
		t.Errorf("expected one line per alpha, got:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	data, err := New(testPlan(t, 0)).JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded planner.ExecutionPlan
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode JSON output: %v", err)
	}
	if decoded.TotalTasks != 2 {
		t.Errorf("expected 2 tasks in JSON, got %d", decoded.TotalTasks)
	}
}
