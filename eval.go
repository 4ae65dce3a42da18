// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"container/heap"

	"github.com/pkg/errors"
)

// Values maps node ids to their evaluated value.
//
type Values map[NodeID]bool

// Order returns the evaluation order of g's nodes: every wire's source comes
// before its target, and among nodes that are ready at the same time the
// lowest id goes first.
//
// It fails with ErrInconsistentGraph if g contains a cycle.
//
func Order(g *Graph) ([]NodeID, error) {
	pending := make(map[NodeID]int, len(g.nodes))
	var ready idHeap
	for id, n := range g.nodes {
		cnt := 0
		for _, w := range n.in {
			if w != nil {
				cnt++
			}
		}
		if cnt == 0 {
			ready = append(ready, id)
		} else {
			pending[id] = cnt
		}
	}
	heap.Init(&ready)

	order := make([]NodeID, 0, len(g.nodes))
	for ready.Len() > 0 {
		id := heap.Pop(&ready).(NodeID)
		order = append(order, id)
		for _, w := range g.nodes[id].outs {
			pending[w.Target]--
			if pending[w.Target] == 0 {
				delete(pending, w.Target)
				heap.Push(&ready, w.Target)
			}
		}
	}
	if len(order) != len(g.nodes) {
		return nil, errors.Wrapf(ErrInconsistentGraph, "%d of %d nodes are on a cycle", len(g.nodes)-len(order), len(g.nodes))
	}
	return order, nil
}

// Evaluate computes the value of every node in g. Input nodes take their
// drive value, gates and probes the function of their kind over their slot
// values. Floating slots read false.
//
// Evaluate does not modify g.
//
func Evaluate(g *Graph) (Values, error) {
	order, err := Order(g)
	if err != nil {
		return nil, err
	}
	vs := make(Values, len(order))
	var in [2]bool
	for _, id := range order {
		n := g.nodes[id]
		if n.kind == Input {
			vs[id] = n.drive
			continue
		}
		for i, w := range n.in {
			in[i] = false
			if w != nil {
				v, ok := vs[w.Source]
				if !ok {
					return nil, errors.Wrapf(ErrInconsistentGraph, "node %v evaluated before its source %v", id, w.Source)
				}
				in[i] = v
			}
		}
		vs[id] = n.kind.eval(in[:len(n.in)])
	}
	return vs, nil
}

// idHeap is a min-heap of node ids.
//
type idHeap []NodeID

func (h idHeap) Len() int           { return len(h) }
func (h idHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x any)        { *h = append(*h, x.(NodeID)) }
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
