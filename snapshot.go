// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"sort"
	"strings"
)

// NodeState is the state of a node in a Snapshot.
//
type NodeState struct {
	ID    NodeID `json:"id"`
	Kind  Kind   `json:"kind"`
	Value bool   `json:"value"`
	// Inputs holds the value read on each input slot. Floating slots read
	// false.
	Inputs []bool `json:"inputs,omitempty"`
}

// WireState is the state of a wire in a Snapshot. Value is the value of the
// wire's source.
//
type WireState struct {
	Wire
	Value bool `json:"value"`
}

// A Snapshot is a read-only view of all node values and wires at a point in
// time. Nodes are sorted by id and wires by target then slot. Snapshots are
// never modified once returned and must not be modified by callers.
//
type Snapshot struct {
	Nodes []NodeState `json:"nodes"`
	Wires []WireState `json:"wires"`
}

func emptySnapshot() *Snapshot {
	return &Snapshot{Nodes: []NodeState{}, Wires: []WireState{}}
}

func newSnapshot(g *Graph, vs Values) *Snapshot {
	s := &Snapshot{
		Nodes: make([]NodeState, 0, len(g.nodes)),
		Wires: make([]WireState, 0, g.wires),
	}
	for _, id := range g.IDs() {
		n := g.nodes[id]
		ns := NodeState{ID: id, Kind: n.kind, Value: vs[id]}
		if len(n.in) > 0 {
			ns.Inputs = make([]bool, len(n.in))
			for i, w := range n.in {
				if w != nil {
					v := vs[w.Source]
					ns.Inputs[i] = v
					s.Wires = append(s.Wires, WireState{*w, v})
				}
			}
		}
		s.Nodes = append(s.Nodes, ns)
	}
	return s
}

// Len returns the number of nodes in the snapshot.
//
func (s *Snapshot) Len() int { return len(s.Nodes) }

// Node returns the state of node id.
//
func (s *Snapshot) Node(id NodeID) (NodeState, bool) {
	i := sort.Search(len(s.Nodes), func(i int) bool { return s.Nodes[i].ID >= id })
	if i < len(s.Nodes) && s.Nodes[i].ID == id {
		return s.Nodes[i], true
	}
	return NodeState{}, false
}

// Value returns the value of node id. It returns false if there is no such
// node.
//
func (s *Snapshot) Value(id NodeID) bool {
	n, _ := s.Node(id)
	return n.Value
}

// String returns a compact, line oriented dump of the snapshot, one node per
// line followed by its feeding wires:
//
//	#1 input 1
//	#3 and 1 <- #1 #2
//
func (s *Snapshot) String() string {
	var b strings.Builder
	feeds := make(map[NodeID][]NodeID)
	for _, w := range s.Wires {
		f := feeds[w.Target]
		for len(f) <= w.Slot {
			f = append(f, 0)
		}
		f[w.Slot] = w.Source
		feeds[w.Target] = f
	}
	for _, n := range s.Nodes {
		b.WriteString(n.ID.String())
		b.WriteByte(' ')
		b.WriteString(n.Kind.String())
		b.WriteByte(' ')
		b.WriteString(bit(n.Value))
		if len(n.Inputs) > 0 {
			b.WriteString(" <-")
			f := feeds[n.ID]
			for i := range n.Inputs {
				b.WriteByte(' ')
				if i < len(f) && f[i] != 0 {
					b.WriteString(f[i].String())
				} else {
					b.WriteByte('-')
				}
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
