// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logiclib

import (
	"strconv"

	ls "github.com/db47h/logicsim"
)

// HalfAdder is a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
var HalfAdder = &PartSpec{
	Name:    "HalfAdder",
	Inputs:  []string{pA, pB},
	Outputs: []string{"s", "c"},
	Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
		return []ls.NodeID{
			b.Gate(ls.Xor, in[0], in[1]),
			b.Gate(ls.And, in[0], in[1]),
		}
	},
}

// FullAdder is a full adder made of two half adders.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
var FullAdder = &PartSpec{
	Name:    "FullAdder",
	Inputs:  []string{pA, pB, "cin"},
	Outputs: []string{"s", "cout"},
	Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
		h0 := b.Mount(HalfAdder, in[0], in[1])
		h1 := b.Mount(HalfAdder, h0[0], in[2])
		return []ls.NodeID{h1[0], b.Gate(ls.Or, h0[1], h1[1])}
	},
}

// Adder returns an n-bit ripple carry adder. Each bit is a separate line;
// a0 and b0 are the least significant bits.
//
//	Inputs: a0..a(n-1), b0..b(n-1)
//	Outputs: s0..s(n-1), c
//	Function: s = a + b, c = carry out
//
func Adder(n int) *PartSpec {
	if n < 1 {
		panic("invalid adder width")
	}
	return &PartSpec{
		Name:    "Adder" + strconv.Itoa(n),
		Inputs:  pins(n, pA, pB),
		Outputs: append(pins(n, "s"), "c"),
		Build: func(b *Builder, in []ls.NodeID) []ls.NodeID {
			a, bb := in[:n], in[n:]
			out := make([]ls.NodeID, 0, n+1)
			h := b.Mount(HalfAdder, a[0], bb[0])
			out = append(out, h[0])
			carry := h[1]
			for i := 1; i < n; i++ {
				f := b.Mount(FullAdder, a[i], bb[i], carry)
				out = append(out, f[0])
				carry = f[1]
			}
			return append(out, carry)
		},
	}
}
