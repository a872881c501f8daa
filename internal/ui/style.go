package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/joshharrison/latepack/internal/task"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// PrintLogo renders the colored latepack logo to stderr.
func PrintLogo() {
	w := os.Stderr
	frame := color.New(color.FgCyan)
	axis := color.New(color.FgCyan, color.Faint)
	brand := color.New(color.Bold, color.FgMagenta)
	tag := color.New(color.Faint)

	fmt.Fprintln(w)
	frame.Fprintln(w, "   +---------------------------+")
	axis.Fprintln(w, "   |  ....::::||||::::....  >| |")
	brand.Fprintln(w, "   |   L  A  T  E  P  A  C  K  |")
	axis.Fprintln(w, "   |  ....::::||||::::....  >| |")
	frame.Fprintln(w, "   +---------------------------+")
	tag.Fprintln(w, "   Deadline-anchored task planning")
	fmt.Fprintln(w)
}

// StatusIcon returns a colored icon for a task status.
func StatusIcon(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return Cyan("◌")
	case task.StatusInProgress:
		return BoldCyan("●")
	case task.StatusPaused:
		return Yellow("❚❚")
	case task.StatusDone:
		return Green("✓")
	case task.StatusCancelled, task.StatusDeleted:
		return Dim("⊘")
	default:
		return Dim("?")
	}
}

// SlackLabel colors a slack value: green when comfortable, yellow when the
// window sits right on the deadline, red never happens (finish is capped).
func SlackLabel(slack float64) string {
	s := fmt.Sprintf("%g", slack)
	if slack == 0 {
		return Yellow(s)
	}
	return Green(s)
}

// PriorityLabel renders a priority 1..5 as colored exclamation marks.
func PriorityLabel(p int) string {
	switch {
	case p >= 5:
		return BoldRed("!!!!!")
	case p == 4:
		return Red("!!!!")
	case p == 3:
		return Yellow("!!!")
	case p == 2:
		return Dim("!!")
	default:
		return Dim("!")
	}
}
