package sched

// Window is one task's allotted slice of the time axis.
type Window struct {
	Start  float64 `json:"start"`
	Finish float64 `json:"finish"`
}

// Inversion records a dependency whose computed window does not precede its
// dependent's. The backward pass reports these but never adjusts times; with
// non-negative durations the reverse walk's cursor is monotone and none can
// occur.
type Inversion struct {
	DepID  string `json:"dep_id"`
	TaskID string `json:"task_id"`
}

// Result is the immutable outcome of one scheduling run. Input tasks are
// never mutated; tasks filtered out by status are absent from both Order and
// Windows.
type Result struct {
	Order      []string          `json:"order"` // ids in visitation order
	Windows    map[string]Window `json:"windows"`
	Horizon    float64           `json:"horizon"`
	Inversions []Inversion       `json:"inversions,omitempty"`
}

// Empty reports whether the run scheduled nothing (empty or fully filtered
// input).
func (r *Result) Empty() bool {
	return len(r.Order) == 0
}

// Window returns the time window for a task id, if it was scheduled.
func (r *Result) Window(id string) (Window, bool) {
	w, ok := r.Windows[id]
	return w, ok
}
