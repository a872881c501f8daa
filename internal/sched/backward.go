package sched

import (
	"math"

	"github.com/joshharrison/latepack/internal/graph"
	"github.com/joshharrison/latepack/internal/task"
)

// Schedule computes backward-packed time windows for a task set.
//
// Tasks whose status is not plannable (cancelled, done, deleted) are excluded
// entirely; if nothing survives the filter the result is empty, not an error.
// The remaining tasks are ordered by Order, then walked in reverse from the
// horizon (the maximum deadline): each task finishes at min(cursor, its own
// deadline) and the cursor moves to its start. Windows in visitation order
// therefore never overlap, every finish respects its task's deadline, and a
// start may go negative when cumulative durations exceed the time available —
// that is overload signaling, not an error.
//
// A cycle among the plannable tasks aborts the run with the ordering engine's
// CycleError before any window is computed.
func Schedule(tasks []*task.Task, alpha float64) (*Result, error) {
	return ScheduleFiltered(tasks, alpha, func(t *task.Task) bool {
		return t.Status.Plannable()
	})
}

// ScheduleFiltered is Schedule with a caller-chosen eligibility predicate,
// for runs where the plannable status set is overridden by configuration.
// Dependencies on excluded tasks drop away like any other dangling reference.
func ScheduleFiltered(tasks []*task.Task, alpha float64, keep func(*task.Task) bool) (*Result, error) {
	res := &Result{Windows: make(map[string]Window)}

	g := graph.Build(tasks).Filter(keep)
	if g.TaskCount() == 0 {
		return res, nil
	}

	ordered, err := Order(g, alpha)
	if err != nil {
		return nil, err
	}

	horizon := ordered[0].Deadline
	for _, t := range ordered[1:] {
		if t.Deadline > horizon {
			horizon = t.Deadline
		}
	}
	res.Horizon = horizon

	cursor := horizon
	for i := len(ordered) - 1; i >= 0; i-- {
		t := ordered[i]
		finish := math.Min(cursor, t.Deadline)
		start := finish - t.Duration
		res.Windows[t.ID] = Window{Start: start, Finish: finish}
		cursor = start
	}

	for _, t := range ordered {
		res.Order = append(res.Order, t.ID)
	}

	res.Inversions = findInversions(g, res)
	return res, nil
}

// findInversions checks every in-set dependency edge for a window that fails
// to precede its dependent's. Diagnostic only: times are never adjusted.
func findInversions(g *graph.TaskGraph, res *Result) []Inversion {
	var out []Inversion
	for _, id := range res.Order {
		w := res.Windows[id]
		for _, dep := range g.RevAdj[id] {
			if dw, ok := res.Windows[dep]; ok && dw.Finish > w.Start {
				out = append(out, Inversion{DepID: dep, TaskID: id})
			}
		}
	}
	return out
}
