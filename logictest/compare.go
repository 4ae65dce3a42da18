// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logictest provides utility functions for testing circuits.
//
package logictest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/logiclib"
	"github.com/pkg/errors"
)

// MaxExhaustive is the largest number of inputs for which TruthTable tries
// every combination. Above that, it samples 1<<MaxExhaustive random
// combinations plus all-low and all-high.
//
const MaxExhaustive = 12

// A Row is one line of a truth table.
//
type Row struct {
	In  []bool
	Out []bool
}

func (r Row) String() string {
	var b strings.Builder
	for _, v := range r.In {
		b.WriteString(bit(v))
	}
	b.WriteString(" => ")
	for _, v := range r.Out {
		b.WriteString(bit(v))
	}
	return b.String()
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Vectors returns the input combinations TruthTable uses for n inputs. With
// n <= MaxExhaustive, row i sets input j to bit n-1-j of i, so input 0 is the
// most significant bit. rnd is only used for larger n.
//
func Vectors(n int, rnd *rand.Rand) [][]bool {
	if n <= MaxExhaustive {
		tot := 1 << uint(n)
		vs := make([][]bool, tot)
		for i := range vs {
			v := make([]bool, n)
			for j := range v {
				v[j] = i&(1<<uint(n-1-j)) != 0
			}
			vs[i] = v
		}
		return vs
	}
	iter := 1 << MaxExhaustive
	vs := make([][]bool, 0, iter+2)
	lo, hi := make([]bool, n), make([]bool, n)
	for i := range hi {
		hi[i] = true
	}
	vs = append(vs, lo, hi)
	for i := 0; i < iter; i++ {
		v := make([]bool, n)
		for j := range v {
			v[j] = rnd.Int63()&(1<<62) != 0
		}
		vs = append(vs, v)
	}
	return vs
}

// TruthTable drives the given input nodes of c through every vector returned
// by Vectors and records the values of the output nodes. c is left with the
// last vector applied.
//
func TruthTable(c *ls.Controller, inputs, outputs []ls.NodeID, rnd *rand.Rand) ([]Row, error) {
	var rows []Row
	for _, v := range Vectors(len(inputs), rnd) {
		s := c.Snapshot()
		for i, id := range inputs {
			var err error
			if s, err = c.SetDrive(id, v[i]); err != nil {
				return nil, err
			}
		}
		out := make([]bool, len(outputs))
		for i, id := range outputs {
			n, ok := s.Node(id)
			if !ok {
				return nil, errors.Wrapf(ls.ErrNotFound, "output node %v", id)
			}
			out[i] = n.Value
		}
		rows = append(rows, Row{In: v, Out: out})
	}
	return rows, nil
}

// PartTable mounts p on a new controller fed by fresh inputs and returns its
// truth table.
//
func PartTable(p *logiclib.PartSpec, rnd *rand.Rand) ([]Row, error) {
	c := ls.NewController()
	b := logiclib.NewBuilder(c)
	ins := make([]ls.NodeID, len(p.Inputs))
	for i := range ins {
		ins[i] = b.Input(false)
	}
	outs := b.Mount(p, ins...)
	if err := b.Err(); err != nil {
		return nil, err
	}
	return TruthTable(c, ins, outs, rnd)
}

// CheckPart fails t if p's truth table differs from want, which must list
// every row in Vectors order, outputs only.
//
func CheckPart(t *testing.T, p *logiclib.PartSpec, want [][]bool) {
	t.Helper()
	rows, err := PartTable(p, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("%s: %+v", p.Name, err)
	}
	if len(rows) != len(want) {
		t.Fatalf("%s: %d rows, want %d", p.Name, len(rows), len(want))
	}
	for i, r := range rows {
		for o, v := range r.Out {
			if v != want[i][o] {
				t.Errorf("%s: %s: %s = %v, want %v", p.Name, inputString(p.Inputs, r.In), p.Outputs[o], v, want[i][o])
			}
		}
	}
}

// CompareParts mounts two parts with the same interface side by side on the
// same inputs and fails t on the first output that differs.
//
func CompareParts(t *testing.T, p1, p2 *logiclib.PartSpec) {
	t.Helper()
	if len(p1.Inputs) != len(p2.Inputs) || len(p1.Outputs) != len(p2.Outputs) {
		t.Fatalf("%s and %s have different interfaces", p1.Name, p2.Name)
	}

	c := ls.NewController()
	b := logiclib.NewBuilder(c)
	ins := make([]ls.NodeID, len(p1.Inputs))
	for i := range ins {
		ins[i] = b.Input(false)
	}
	o1 := b.Mount(p1, ins...)
	o2 := b.Mount(p2, ins...)
	if err := b.Err(); err != nil {
		t.Fatalf("%+v", err)
	}

	rows, err := TruthTable(c, ins, append(o1, o2...), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	n := len(o1)
	for _, r := range rows {
		for o := 0; o < n; o++ {
			if r.Out[o] != r.Out[n+o] {
				t.Fatal(fmt.Sprintf("\n%s: expected %s => %s=%v\ngot %v",
					p2.Name, inputString(p1.Inputs, r.In), p1.Outputs[o], r.Out[o], r.Out[n+o]))
			}
		}
	}
	t.Logf("%d nodes, %d vectors", c.Len(), len(rows))
}

func inputString(names []string, in []bool) string {
	var b strings.Builder
	for i, n := range names {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(bit(in[i]))
	}
	return b.String()
}
