// Package sched holds the planner's core: a priority-weighted topological
// ordering engine and a deadline-anchored backward scheduler.
package sched

import (
	"container/heap"

	"github.com/joshharrison/latepack/internal/graph"
	"github.com/joshharrison/latepack/internal/task"
)

// readyItem is one entry in the ordering engine's ready pool.
type readyItem struct {
	t   *task.Task
	key float64 // effective deadline under the run's alpha
	seq int     // input position, stable tie-break
}

// readyPool is a min-heap keyed by (effective deadline, input position). It
// replaces the naive re-sort of the whole ready list after every insertion
// while keeping the same removal order.
type readyPool []readyItem

func (p readyPool) Len() int { return len(p) }

func (p readyPool) Less(i, j int) bool {
	if p[i].key != p[j].key {
		return p[i].key < p[j].key
	}
	return p[i].seq < p[j].seq
}

func (p readyPool) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p *readyPool) Push(x any) { *p = append(*p, x.(readyItem)) }

func (p *readyPool) Pop() any {
	old := *p
	n := len(old)
	item := old[n-1]
	*p = old[:n-1]
	return item
}

// Order runs Kahn's algorithm over the graph, always consuming the ready task
// with the smallest effective deadline (deadline − alpha·priority). Ties fall
// back to input position, so repeated runs over the same input are identical.
//
// The result is a permutation of the graph's tasks in which every in-set
// dependency precedes its dependent. If some tasks never become ready the
// dependency relation contains a cycle and Order fails with a CycleError;
// no partial order is returned. Input tasks are not mutated.
func Order(g *graph.TaskGraph, alpha float64) ([]*task.Task, error) {
	inDegree := g.InDegree()

	seq := make(map[string]int, len(g.Order))
	for i, id := range g.Order {
		seq[id] = i
	}

	pool := make(readyPool, 0, len(g.Order))
	for _, id := range g.Order {
		if inDegree[id] == 0 {
			t := g.Tasks[id]
			pool = append(pool, readyItem{t: t, key: t.EffectiveDeadline(alpha), seq: seq[id]})
		}
	}
	heap.Init(&pool)

	ordered := make([]*task.Task, 0, g.TaskCount())
	for pool.Len() > 0 {
		item := heap.Pop(&pool).(readyItem)
		ordered = append(ordered, item.t)

		for _, succ := range g.Adj[item.t.ID] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				t := g.Tasks[succ]
				heap.Push(&pool, readyItem{t: t, key: t.EffectiveDeadline(alpha), seq: seq[succ]})
			}
		}
	}

	if len(ordered) != g.TaskCount() {
		return nil, &CycleError{Path: g.DetectCycle()}
	}

	return ordered, nil
}
