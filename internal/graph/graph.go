// Package graph builds the dependency graph a planning run works over.
package graph

import (
	"sort"

	"github.com/joshharrison/latepack/internal/task"
)

// Build constructs a TaskGraph from a task set.
//
// Edges come from each task's DependsOn list, restricted to ids present in
// the set: a dependency on an unknown id imposes no constraint and is dropped
// silently. Build never fails; cycles are the ordering engine's concern.
func Build(tasks []*task.Task) *TaskGraph {
	g := &TaskGraph{
		Tasks:  make(map[string]*task.Task, len(tasks)),
		Adj:    make(map[string][]string),
		RevAdj: make(map[string][]string),
	}

	for _, t := range tasks {
		g.Tasks[t.ID] = t
		g.Order = append(g.Order, t.ID)
	}

	// Dedupe edges so a repeated dependency entry doesn't inflate in-degrees.
	edgeSet := make(map[[2]string]bool)
	addEdge := func(from, to string) {
		key := [2]string{from, to}
		if edgeSet[key] {
			return
		}
		edgeSet[key] = true
		g.Adj[from] = append(g.Adj[from], to)
		g.RevAdj[to] = append(g.RevAdj[to], from)
	}

	for _, id := range g.Order {
		for _, dep := range g.Tasks[id].DependsOn {
			if _, ok := g.Tasks[dep]; ok {
				addEdge(dep, id)
			}
		}
	}

	// Sort adjacency lists for deterministic traversal
	for k := range g.Adj {
		sort.Strings(g.Adj[k])
	}
	for k := range g.RevAdj {
		sort.Strings(g.RevAdj[k])
	}

	for _, id := range g.Order {
		if len(g.RevAdj[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
		if len(g.Adj[id]) == 0 {
			g.Leaves = append(g.Leaves, id)
		}
	}
	sort.Strings(g.Roots)
	sort.Strings(g.Leaves)

	return g
}

// TaskCount returns the number of tasks in the graph.
func (g *TaskGraph) TaskCount() int {
	return len(g.Tasks)
}

// InDegree returns the number of in-set dependencies per task id.
func (g *TaskGraph) InDegree() map[string]int {
	deg := make(map[string]int, len(g.Tasks))
	for id := range g.Tasks {
		deg[id] = len(g.RevAdj[id])
	}
	return deg
}

// Filter returns a new TaskGraph over the tasks matching the predicate.
// Edges to filtered-out tasks drop away like any other dangling reference.
func (g *TaskGraph) Filter(pred func(*task.Task) bool) *TaskGraph {
	var kept []*task.Task
	for _, id := range g.Order {
		if t := g.Tasks[id]; pred(t) {
			kept = append(kept, t)
		}
	}
	return Build(kept)
}

// DetectCycle returns the cycle path if one exists, or nil if the graph is
// acyclic. Uses DFS with coloring: white (unvisited), gray (in progress),
// black (done).
func (g *TaskGraph) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int)
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range g.Adj[node] {
			if color[next] == gray {
				// Found a cycle — reconstruct it
				cycle := []string{next, node}
				cur := node
				for cur != next {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				// Reverse to get forward order
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
