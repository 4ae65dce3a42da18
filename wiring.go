// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Wire connects the output of node Source to input slot Slot of node
// Target.
//
type Wire struct {
	Source NodeID `json:"source"`
	Target NodeID `json:"target"`
	Slot   int    `json:"slot"`
}

func (w Wire) String() string {
	return w.Source.String() + "->" + w.Target.String() + "[" + strconv.Itoa(w.Slot) + "]"
}

// Connect wires the output of node src to slot slot of node dst.
//
// Checks run in this order: ErrNotFound if either node does not exist,
// ErrWrongKind if src is a probe, ErrCycleDetected if dst already reaches src
// (or src == dst), ErrInvalidSlot if dst has no such slot and ErrSlotOccupied
// if the slot is already fed. The graph is left untouched on failure.
//
func (g *Graph) Connect(src, dst NodeID, slot int) error {
	w := Wire{src, dst, slot}
	s, d := g.nodes[src], g.nodes[dst]
	switch {
	case s == nil:
		return errors.Wrapf(ErrNotFound, "wire %v: source", w)
	case d == nil:
		return errors.Wrapf(ErrNotFound, "wire %v: target", w)
	case !s.kind.HasOutput():
		return errors.Wrapf(ErrWrongKind, "wire %v: %v has no output", w, s.kind)
	case g.reaches(dst, src):
		return errors.Wrapf(ErrCycleDetected, "wire %v", w)
	case slot < 0 || slot >= len(d.in):
		return errors.Wrapf(ErrInvalidSlot, "wire %v: %v has %d input slots", w, d.kind, len(d.in))
	case d.in[slot] != nil:
		return errors.Wrapf(ErrSlotOccupied, "wire %v: fed by %v", w, d.in[slot].Source)
	}
	g.link(w)
	return nil
}

// Disconnect removes the wire from src to slot slot of dst.
//
func (g *Graph) Disconnect(src, dst NodeID, slot int) error {
	w := Wire{src, dst, slot}
	d := g.nodes[dst]
	if d == nil || slot < 0 || slot >= len(d.in) || d.in[slot] == nil || d.in[slot].Source != src {
		return errors.Wrapf(ErrNotFound, "wire %v", w)
	}
	g.unlink(d.in[slot])
	return nil
}

// link adds w without any check.
//
func (g *Graph) link(w Wire) {
	p := &w
	g.nodes[w.Target].in[w.Slot] = p
	s := g.nodes[w.Source]
	s.outs = append(s.outs, p)
	g.wires++
}

// unlink removes the wire w points to.
//
func (g *Graph) unlink(w *Wire) {
	g.nodes[w.Target].in[w.Slot] = nil
	s := g.nodes[w.Source]
	for i, o := range s.outs {
		if o == w {
			s.outs = append(s.outs[:i], s.outs[i+1:]...)
			break
		}
	}
	g.wires--
}

// reaches returns true if there is a directed path from node from to node to,
// including the empty path when from == to.
//
func (g *Graph) reaches(from, to NodeID) bool {
	if from == to {
		return true
	}
	seen := map[NodeID]bool{from: true}
	stack := []NodeID{from}
	for len(stack) > 0 {
		n := g.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		for _, w := range n.outs {
			if w.Target == to {
				return true
			}
			if !seen[w.Target] {
				seen[w.Target] = true
				stack = append(stack, w.Target)
			}
		}
	}
	return false
}
