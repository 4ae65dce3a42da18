// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logiclib provides a library of reusable parts for logicsim.
//
// Parts are built out of plain logicsim nodes through a Controller. Mounting a
// part wires the given source nodes into new gates and returns the nodes that
// carry the part's outputs:
//
//	c := logicsim.NewController()
//	a, _, _ := c.AddNode(logicsim.Input)
//	b, _, _ := c.AddNode(logicsim.Input)
//	out, err := logiclib.HalfAdder.Mount(c, a, b) // out[0] = sum, out[1] = carry
//
package logiclib

import (
	"strconv"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// make a list of numbered pin names
func pins(n int, names ...string) []string {
	p := make([]string, 0, len(names)*n)
	for _, name := range names {
		for i := 0; i < n; i++ {
			p = append(p, name+strconv.Itoa(i))
		}
	}
	return p
}

// A PartSpec wraps a part specification: its name, the names of its inputs
// and outputs, and the function that builds it.
//
type PartSpec struct {
	Name    string
	Inputs  []string
	Outputs []string
	// Build creates the part's gates. in has one source node per input name
	// and Build must return one node per output name.
	Build func(b *Builder, in []ls.NodeID) []ls.NodeID
}

// Mount builds the part in c, fed by the given source nodes, and returns its
// output nodes. When an error occurs, nodes created so far are left in c.
//
func (p *PartSpec) Mount(c *ls.Controller, in ...ls.NodeID) ([]ls.NodeID, error) {
	if len(in) != len(p.Inputs) {
		return nil, errors.Errorf("%s: got %d inputs, want %d", p.Name, len(in), len(p.Inputs))
	}
	b := NewBuilder(c)
	out := p.Build(b, in)
	if err := b.Err(); err != nil {
		return nil, errors.Wrap(err, p.Name)
	}
	if len(out) != len(p.Outputs) {
		return nil, errors.Errorf("%s: built %d outputs, want %d", p.Name, len(out), len(p.Outputs))
	}
	return out, nil
}

// A Builder issues node and wire commands to a Controller and keeps the first
// error. After an error, all Builder methods are no-ops returning 0.
//
type Builder struct {
	c   *ls.Controller
	err error
}

// NewBuilder returns a builder for c.
//
func NewBuilder(c *ls.Controller) *Builder {
	return &Builder{c: c}
}

// Err returns the first error encountered by b.
//
func (b *Builder) Err() error { return b.err }

// Gate adds a node of kind k and connects in[i] to its slot i. Missing inputs
// are left floating.
//
func (b *Builder) Gate(k ls.Kind, in ...ls.NodeID) ls.NodeID {
	if b.err != nil {
		return 0
	}
	id, _, err := b.c.AddNode(k)
	if err != nil {
		b.err = err
		return 0
	}
	for i, src := range in {
		if _, err = b.c.Connect(src, id, i); err != nil {
			b.err = err
			return 0
		}
	}
	return id
}

// Input adds an input node driven at v.
//
func (b *Builder) Input(v bool) ls.NodeID {
	id := b.Gate(ls.Input)
	if b.err == nil && v {
		_, b.err = b.c.SetDrive(id, true)
	}
	return id
}

// Mount mounts part p fed by in.
//
func (b *Builder) Mount(p *PartSpec, in ...ls.NodeID) []ls.NodeID {
	if b.err != nil {
		return make([]ls.NodeID, len(p.Outputs))
	}
	out, err := p.Mount(b.c, in...)
	if err != nil {
		b.err = err
		return make([]ls.NodeID, len(p.Outputs))
	}
	return out
}
