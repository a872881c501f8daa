// Package reporter renders execution plans for terminals and machines.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joshharrison/latepack/internal/planner"
	"github.com/joshharrison/latepack/internal/ui"
)

// Reporter renders one ExecutionPlan.
type Reporter struct {
	Plan *planner.ExecutionPlan
}

// New creates a Reporter for a plan.
func New(plan *planner.ExecutionPlan) *Reporter {
	return &Reporter{Plan: plan}
}

// PrintPlan writes a terminal-friendly schedule table in visitation order.
func (r *Reporter) PrintPlan(w io.Writer) {
	if len(r.Plan.Entries) == 0 {
		fmt.Fprintf(w, "%s Nothing to plan — no plannable tasks in the set.\n", ui.Dim("∅"))
		return
	}

	fmt.Fprintf(w, "%s %s — %s tasks, horizon %s, alpha %s\n\n",
		ui.BoldCyan("⧗ Latepack"), ui.Dim(r.Plan.ID),
		ui.Bold(r.Plan.TotalTasks), ui.Bold(fmt.Sprintf("%g", r.Plan.Horizon)),
		ui.Bold(fmt.Sprintf("%g", r.Plan.Alpha)))

	fmt.Fprintf(w, "  %-3s %-2s %-10s %-28s %-6s %-16s %-9s %s\n",
		"#", "", "TASK", "TITLE", "PRIO", "WINDOW", "DEADLINE", "SLACK")

	for i, e := range r.Plan.Entries {
		r.printEntry(w, i, e)
	}

	if overloaded := r.overloadedCount(); overloaded > 0 {
		fmt.Fprintf(w, "\n%s %d task(s) start before time zero — more work than the deadlines allow.\n",
			ui.BoldRed("▲ overload:"), overloaded)
	}
	for _, inv := range r.Plan.Inversions {
		fmt.Fprintf(w, "%s window of %s does not precede its dependent %s\n",
			ui.BoldYellow("▲ inversion:"), ui.BoldMagenta(inv.DepID), ui.BoldMagenta(inv.TaskID))
	}
}

func (r *Reporter) printEntry(w io.Writer, i int, e planner.Entry) {
	title := e.Title
	if len(title) > 26 {
		title = title[:23] + "..."
	}

	window := fmt.Sprintf("[%g → %g]", e.Start, e.Finish)
	if e.Overloaded {
		window = ui.Red(window)
	}

	fmt.Fprintf(w, "  %-3d %s %-10s %-28s %-6s %-16s %-9g %s\n",
		i+1,
		ui.StatusIcon(e.Status),
		ui.BoldMagenta(e.TaskID),
		title,
		ui.PriorityLabel(e.Priority),
		window,
		e.Deadline,
		ui.SlackLabel(e.Slack))
}

// PrintSweep writes one compact order line per alpha so runs can be compared.
func PrintSweep(w io.Writer, plans []*planner.ExecutionPlan) {
	for _, p := range plans {
		fmt.Fprintf(w, "%s %-8s", ui.Bold("alpha"), fmt.Sprintf("%g:", p.Alpha))
		for i, e := range p.Entries {
			if i > 0 {
				fmt.Fprint(w, ui.Dim(" → "))
			}
			fmt.Fprint(w, ui.BoldMagenta(e.TaskID))
		}
		fmt.Fprintln(w)
	}
}

// Summary returns a one-line outcome description.
func (r *Reporter) Summary() string {
	if len(r.Plan.Entries) == 0 {
		return "planned 0 tasks"
	}
	s := fmt.Sprintf("planned %d tasks against horizon %g (alpha %g)",
		r.Plan.TotalTasks, r.Plan.Horizon, r.Plan.Alpha)
	if n := r.overloadedCount(); n > 0 {
		s += fmt.Sprintf(", %d overloaded", n)
	}
	return s
}

func (r *Reporter) overloadedCount() int {
	n := 0
	for _, e := range r.Plan.Entries {
		if e.Overloaded {
			n++
		}
	}
	return n
}

// JSON returns the machine-readable plan.
func (r *Reporter) JSON() ([]byte, error) {
	return json.MarshalIndent(r.Plan, "", "  ")
}
