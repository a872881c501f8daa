package sched

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is the sentinel for dependency cycles. Callers match it with
// errors.Is; CycleError carries the offending path.
var ErrCycle = errors.New("dependency cycle")

// CycleError reports that the task set's dependency relation is not a DAG.
// No partial order or schedule accompanies it.
type CycleError struct {
	Path []string // one cycle, dependency order, first id repeated at the end
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCycle.Error(), strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }
