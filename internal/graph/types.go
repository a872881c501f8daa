package graph

import "github.com/joshharrison/latepack/internal/task"

// TaskGraph is the dependency graph over one planning run's task set.
//
// Edges run dependency -> dependent. Only ids present in the input set appear;
// dangling dependency references are dropped at build time.
type TaskGraph struct {
	Tasks  map[string]*task.Task
	Order  []string            // task ids in input order, for stable tie-breaks
	Adj    map[string][]string // id -> ids that depend on it
	RevAdj map[string][]string // id -> ids it depends on (present ones only)
	Roots  []string            // tasks with no in-set dependencies
	Leaves []string            // tasks nothing in the set depends on
}
