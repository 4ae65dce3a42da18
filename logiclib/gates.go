// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logiclib

import (
	"strconv"

	ls "github.com/db47h/logicsim"
)

// NandNot is a NOT gate made of a single NAND.
//
//	Inputs: in
//	Outputs: out
//
var NandNot = &PartSpec{
	Name:    "NandNot",
	Inputs:  []string{pIn},
	Outputs: []string{pOut},
	Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
		return []ls.NodeID{b.Gate(ls.Nand, in[0], in[0])}
	},
}

// NandAnd is an AND gate made of NAND gates.
//
//	Inputs: a, b
//	Outputs: out
//
var NandAnd = &PartSpec{
	Name:    "NandAnd",
	Inputs:  []string{pA, pB},
	Outputs: []string{pOut},
	Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
		nand := b.Gate(ls.Nand, in[0], in[1])
		return []ls.NodeID{b.Gate(ls.Nand, nand, nand)}
	},
}

// NandOr is an OR gate made of NAND gates.
//
//	Inputs: a, b
//	Outputs: out
//
var NandOr = &PartSpec{
	Name:    "NandOr",
	Inputs:  []string{pA, pB},
	Outputs: []string{pOut},
	Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
		notA := b.Gate(ls.Nand, in[0], in[0])
		notB := b.Gate(ls.Nand, in[1], in[1])
		return []ls.NodeID{b.Gate(ls.Nand, notA, notB)}
	},
}

// NandXor is a XOR gate made of four NAND gates.
//
//	Inputs: a, b
//	Outputs: out
//
var NandXor = &PartSpec{
	Name:    "NandXor",
	Inputs:  []string{pA, pB},
	Outputs: []string{pOut},
	Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
		nandAB := b.Gate(ls.Nand, in[0], in[1])
		w0 := b.Gate(ls.Nand, in[0], nandAB)
		w1 := b.Gate(ls.Nand, in[1], nandAB)
		return []ls.NodeID{b.Gate(ls.Nand, w0, w1)}
	},
}

// AndNWay returns an n-input AND made of a tree of 2-input AND gates.
//
//	Inputs: in0, in1, ... in(n-1)
//	Outputs: out
//	Function: out = in0 && in1 && ... && in(n-1)
//
func AndNWay(n int) *PartSpec { return nWay("AND", ls.And, n) }

// OrNWay returns an n-input OR made of a tree of 2-input OR gates.
//
//	Inputs: in0, in1, ... in(n-1)
//	Outputs: out
//	Function: out = in0 || in1 || ... || in(n-1)
//
func OrNWay(n int) *PartSpec { return nWay("OR", ls.Or, n) }

func nWay(name string, k ls.Kind, n int) *PartSpec {
	if n < 2 {
		panic("invalid number of inputs")
	}
	return &PartSpec{
		Name:    name + strconv.Itoa(n) + "Way",
		Inputs:  pins(n, pIn),
		Outputs: []string{pOut},
		Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
			level := append([]ls.NodeID(nil), in...)
			for len(level) > 1 {
				next := level[:0:0]
				for i := 0; i+1 < len(level); i += 2 {
					next = append(next, b.Gate(k, level[i], level[i+1]))
				}
				if len(level)%2 != 0 {
					next = append(next, level[len(level)-1])
				}
				level = next
			}
			return level
		},
	}
}
