// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package logicsim implements an interactive combinational logic simulator.

A circuit is a directed acyclic graph of nodes (input sources, gates and output
probes) connected by wires. Each wire feeds one input slot of its target; a
slot without a wire floats and reads false. Node values are recomputed by a
full topological evaluation after every change.

All changes go through a Controller:

	c := logicsim.NewController()
	a, _, _ := c.AddNode(logicsim.Input)
	b, _, _ := c.AddNode(logicsim.Input)
	and, _, _ := c.AddNode(logicsim.And)
	c.Connect(a, and, 0)
	c.Connect(b, and, 1)
	c.SetDrive(a, true)
	s, _ := c.ToggleInput(b)
	fmt.Println(s.Value(and)) // true

Every command either succeeds and returns a new Snapshot, or fails and leaves
the circuit unchanged. Connections that would create a cycle are rejected with
ErrCycleDetected, so a valid evaluation order always exists.

The package is purely computational and has no global state. Rendering and
user interaction belong to the caller.
*/
package logicsim
