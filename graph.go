// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// NodeID identifies a node within a Graph. IDs are allocated in creation
// order starting at 1 and are never reused until the graph is cleared.
//
type NodeID int

func (id NodeID) String() string { return "#" + strconv.Itoa(int(id)) }

// A Node is a circuit element: an input source, a gate or an output probe.
//
type Node struct {
	id    NodeID
	kind  Kind
	in    []*Wire // wire feeding each slot, nil if floating
	outs  []*Wire // fan-out
	value bool
	drive bool
}

// ID returns the node's id.
func (n *Node) ID() NodeID { return n.id }

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Value returns the node's value as of the last evaluation.
func (n *Node) Value() bool { return n.value }

// Drive returns the drive value of an input node. It is always false for
// other kinds.
func (n *Node) Drive() bool { return n.drive }

// Slot returns the wire feeding slot i, or nil if the slot is floating.
//
func (n *Node) Slot(i int) *Wire {
	if i < 0 || i >= len(n.in) {
		return nil
	}
	return n.in[i]
}

// Graph is a circuit graph. It owns all nodes and wires and keeps the wire
// set acyclic.
//
// A Graph is not safe for concurrent use.
//
type Graph struct {
	nodes map[NodeID]*Node
	last  NodeID // last allocated id
	wires int
}

// NewGraph returns a new empty graph.
//
func NewGraph() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

// AddNode creates a node of the given kind with all its slots floating.
//
func (g *Graph) AddNode(k Kind) (NodeID, error) {
	if !k.Valid() {
		return 0, errors.Wrap(ErrUnknownKind, k.String())
	}
	g.last++
	n := &Node{id: g.last, kind: k}
	if a := k.Arity(); a > 0 {
		n.in = make([]*Wire, a)
	}
	g.nodes[n.id] = n
	return n.id, nil
}

// RemoveNode removes a node and every wire connected to it. Slots it was
// feeding become floating.
//
func (g *Graph) RemoveNode(id NodeID) error {
	n := g.nodes[id]
	if n == nil {
		return errors.Wrapf(ErrNotFound, "node %v", id)
	}
	for _, w := range n.in {
		if w != nil {
			g.unlink(w)
		}
	}
	for len(n.outs) > 0 {
		g.unlink(n.outs[0])
	}
	delete(g.nodes, id)
	return nil
}

// SetDrive sets the drive value of an input node.
//
func (g *Graph) SetDrive(id NodeID, v bool) error {
	n, err := g.input(id)
	if err != nil {
		return err
	}
	n.drive = v
	return nil
}

// Drive returns the drive value of an input node.
//
func (g *Graph) Drive(id NodeID) (bool, error) {
	n, err := g.input(id)
	if err != nil {
		return false, err
	}
	return n.drive, nil
}

func (g *Graph) input(id NodeID) (*Node, error) {
	n := g.nodes[id]
	if n == nil {
		return nil, errors.Wrapf(ErrNotFound, "node %v", id)
	}
	if n.kind != Input {
		return nil, errors.Wrapf(ErrWrongKind, "node %v is %v, not %v", id, n.kind, Input)
	}
	return n, nil
}

// Clear removes all nodes and wires. ID allocation restarts at 1.
//
func (g *Graph) Clear() {
	g.nodes = make(map[NodeID]*Node)
	g.last = 0
	g.wires = 0
}

// Node returns the node with the given id or nil if there is no such node.
//
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes in the graph.
//
func (g *Graph) Len() int { return len(g.nodes) }

// WireCount returns the number of wires in the graph.
//
func (g *Graph) WireCount() int { return g.wires }

// IDs returns the ids of all nodes in ascending order.
//
func (g *Graph) IDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Wires returns a copy of all wires, ordered by target id then slot.
//
func (g *Graph) Wires() []Wire {
	ws := make([]Wire, 0, g.wires)
	for _, id := range g.IDs() {
		for _, w := range g.nodes[id].in {
			if w != nil {
				ws = append(ws, *w)
			}
		}
	}
	return ws
}

// Clone returns a deep copy of g.
//
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes: make(map[NodeID]*Node, len(g.nodes)),
		last:  g.last,
	}
	for id, n := range g.nodes {
		cn := *n
		cn.outs = nil
		if n.in != nil {
			cn.in = make([]*Wire, len(n.in))
		}
		c.nodes[id] = &cn
	}
	for _, w := range g.Wires() {
		c.link(w)
	}
	return c
}

// apply stores evaluated values into the nodes.
//
func (g *Graph) apply(vs Values) {
	for id, n := range g.nodes {
		n.value = vs[id]
	}
}
