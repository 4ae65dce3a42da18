// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logiclib

import ls "github.com/db47h/logicsim"

// Mux is a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
var Mux = &PartSpec{
	Name:    "MUX",
	Inputs:  []string{pA, pB, pSel},
	Outputs: []string{pOut},
	Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
		notSel := b.Gate(ls.Not, in[2])
		w0 := b.Gate(ls.And, in[0], notSel)
		w1 := b.Gate(ls.And, in[1], in[2])
		return []ls.NodeID{b.Gate(ls.Or, w0, w1)}
	},
}

// DMux is a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
var DMux = &PartSpec{
	Name:    "DMUX",
	Inputs:  []string{pIn, pSel},
	Outputs: []string{pA, pB},
	Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
		notSel := b.Gate(ls.Not, in[1])
		return []ls.NodeID{
			b.Gate(ls.And, in[0], notSel),
			b.Gate(ls.And, in[0], in[1]),
		}
	},
}
