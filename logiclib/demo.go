// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logiclib

import (
	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// DemoCircuit holds the node ids of the demo circuit.
//
type DemoCircuit struct {
	A, B ls.NodeID // inputs
	Gate ls.NodeID // AND gate
	Out  ls.NodeID // probe
}

// demoGate is the kind of the demo gate.
var demoGate = ls.And

// Demo builds the demo circuit in c: two inputs feeding an AND gate whose
// output goes to a probe. All inputs start low. If the build fails, c is
// cleared.
//
func Demo(c *ls.Controller) (DemoCircuit, error) {
	b := NewBuilder(c)
	var d DemoCircuit
	d.A = b.Input(false)
	d.B = b.Input(false)
	d.Gate = b.Gate(demoGate, d.A, d.B)
	d.Out = b.Gate(ls.Probe, d.Gate)
	if err := b.Err(); err != nil {
		c.Clear()
		return DemoCircuit{}, errors.Wrap(err, "demo")
	}
	return d, nil
}
