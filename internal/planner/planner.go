// Package planner assembles schedule results into execution plans.
package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joshharrison/latepack/internal/sched"
	"github.com/joshharrison/latepack/internal/task"
)

// Generate runs the scheduler over the task set and wraps the result in an
// ExecutionPlan. An empty or fully filtered task set yields a plan with no
// entries; a dependency cycle is returned unchanged from the ordering engine.
func Generate(tasks []*task.Task, config PlanConfig) (*ExecutionPlan, error) {
	if config.Alpha < 0 {
		return nil, fmt.Errorf("alpha must be non-negative, got %v", config.Alpha)
	}

	keep := func(t *task.Task) bool { return t.Status.Plannable() }
	if len(config.Statuses) > 0 {
		set := make(map[task.Status]bool, len(config.Statuses))
		for _, s := range config.Statuses {
			set[s] = true
		}
		keep = func(t *task.Task) bool { return set[t.Status] }
	}

	res, err := sched.ScheduleFiltered(tasks, config.Alpha, keep)
	if err != nil {
		return nil, fmt.Errorf("schedule tasks: %w", err)
	}

	byID := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	plan := &ExecutionPlan{
		ID:         fmt.Sprintf("plan-%s", uuid.NewString()[:8]),
		CreatedAt:  time.Now(),
		Alpha:      config.Alpha,
		Horizon:    res.Horizon,
		TotalTasks: len(res.Order),
		Inversions: res.Inversions,
	}

	for _, id := range res.Order {
		t := byID[id]
		w := res.Windows[id]

		var deps []string
		for _, dep := range t.DependsOn {
			if _, ok := res.Windows[dep]; ok {
				deps = append(deps, dep)
			}
		}

		plan.Entries = append(plan.Entries, Entry{
			TaskID:     id,
			Title:      t.Title,
			Priority:   t.Priority,
			Status:     t.Status,
			Deadline:   t.Deadline,
			Duration:   t.Duration,
			Start:      w.Start,
			Finish:     w.Finish,
			Slack:      t.Deadline - w.Finish,
			Overloaded: w.Start < 0,
			DependsOn:  deps,
		})
	}

	return plan, nil
}

// Sweep generates one plan per alpha so the orders can be compared side by
// side. The config's own Alpha is ignored; everything else (the status
// override) applies to every run. Any single failure aborts the sweep.
func Sweep(tasks []*task.Task, config PlanConfig, alphas []float64) ([]*ExecutionPlan, error) {
	plans := make([]*ExecutionPlan, 0, len(alphas))
	for _, alpha := range alphas {
		cfg := config
		cfg.Alpha = alpha
		plan, err := Generate(tasks, cfg)
		if err != nil {
			return nil, fmt.Errorf("alpha %v: %w", alpha, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
