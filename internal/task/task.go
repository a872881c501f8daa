// Package task defines the planner's task model.
package task

import "fmt"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusCancelled  Status = "cancelled"
	StatusDone       Status = "done"
	StatusDeleted    Status = "deleted"
)

// Plannable reports whether a task in this status still needs a time window.
// Cancelled, done and deleted tasks neither occupy time nor block dependents.
func (s Status) Plannable() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusPaused:
		return true
	}
	return false
}

// ParseStatus maps common spellings onto the canonical Status constants.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "todo", "to-do", "to_do":
		return StatusTodo, nil
	case "in_progress", "in-progress":
		return StatusInProgress, nil
	case "paused", "on-hold", "on_hold":
		return StatusPaused, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	case "done", "completed":
		return StatusDone, nil
	case "deleted":
		return StatusDeleted, nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// Task is a single unit of work in the planning run.
//
// Deadline, Duration and the schedule windows derived from them share one
// abstract time axis; the planner attaches no calendar meaning to them.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title,omitempty"`
	Deadline  float64  `json:"deadline"`
	Duration  float64  `json:"duration"`
	Priority  int      `json:"priority"` // 1..5, 5 = most urgent
	Status    Status   `json:"status"`
	DependsOn []string `json:"depends_on,omitempty"`
}

// EffectiveDeadline is the ranking key used by the ordering engine: the raw
// deadline discounted by priority. alpha = 0 degenerates to pure deadline
// ordering.
func (t *Task) EffectiveDeadline(alpha float64) float64 {
	return t.Deadline - alpha*float64(t.Priority)
}
