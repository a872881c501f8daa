package planner

import (
	"time"

	"github.com/joshharrison/latepack/internal/sched"
	"github.com/joshharrison/latepack/internal/task"
)

// PlanConfig holds the knobs for plan generation. An empty Statuses list
// keeps the built-in plannable set (todo, in_progress, paused); a non-empty
// one replaces it.
type PlanConfig struct {
	Alpha    float64       `json:"alpha"` // priority weight in the effective deadline
	Statuses []task.Status `json:"statuses,omitempty"`
}

// ExecutionPlan is the complete outcome of one planning run, shaped for
// JSON output and rendering.
type ExecutionPlan struct {
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	Alpha      float64           `json:"alpha"`
	Horizon    float64           `json:"horizon"`
	TotalTasks int               `json:"total_tasks"`
	Entries    []Entry           `json:"entries"`
	Inversions []sched.Inversion `json:"inversions,omitempty"`
}

// Entry is one scheduled task, in visitation order. Slack is deadline minus
// finish; Overloaded marks windows that start before time zero; DependsOn
// lists scheduled dependencies only.
type Entry struct {
	TaskID     string      `json:"task_id"`
	Title      string      `json:"title,omitempty"`
	Priority   int         `json:"priority"`
	Status     task.Status `json:"status"`
	Deadline   float64     `json:"deadline"`
	Duration   float64     `json:"duration"`
	Start      float64     `json:"start"`
	Finish     float64     `json:"finish"`
	Slack      float64     `json:"slack"`
	Overloaded bool        `json:"overloaded"`
	DependsOn  []string    `json:"depends_on,omitempty"`
}
