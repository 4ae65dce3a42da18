// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the type of a circuit node.
//
type Kind int

// Node kinds.
//
const (
	Input Kind = iota + 1 // input source, driven by the user
	And
	Or
	Xor
	Not
	Probe // output probe, passes its input through
	Nand
	Nor
	Xnor
)

var kindNames = [...]string{
	Input: "input",
	And:   "and",
	Or:    "or",
	Xor:   "xor",
	Not:   "not",
	Probe: "probe",
	Nand:  "nand",
	Nor:   "nor",
	Xnor:  "xnor",
}

// Kinds returns all valid node kinds in declaration order.
//
func Kinds() []Kind {
	return []Kind{Input, And, Or, Xor, Not, Probe, Nand, Nor, Xnor}
}

// Valid returns true if k is one of the declared kinds.
//
func (k Kind) Valid() bool {
	return k >= Input && k <= Xnor
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Arity returns the number of input slots of a node of kind k.
//
func (k Kind) Arity() int {
	switch k {
	case Input:
		return 0
	case Not, Probe:
		return 1
	case And, Or, Xor, Nand, Nor, Xnor:
		return 2
	}
	return 0
}

// HasOutput returns true if nodes of kind k can drive wires.
//
func (k Kind) HasOutput() bool {
	return k.Valid() && k != Probe
}

// ParseKind returns the kind with the given name. Names are case insensitive;
// "in" and "output" are accepted as aliases for input and probe.
//
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "in":
		return Input, nil
	case "out", "output":
		return Probe, nil
	}
	for k, kn := range kindNames {
		if kn != "" && kn == n {
			return Kind(k), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", name)
}

// MarshalText implements encoding.TextMarshaler.
//
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Wrap(ErrUnknownKind, k.String())
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// eval computes the output of a gate of kind k. in holds the slot values,
// floating slots being false. Input nodes are not evaluated here.
//
func (k Kind) eval(in []bool) bool {
	switch k {
	case And:
		return in[0] && in[1]
	case Or:
		return in[0] || in[1]
	case Xor:
		return in[0] && !in[1] || !in[0] && in[1]
	case Not:
		return !in[0]
	case Probe:
		return in[0]
	case Nand:
		return !(in[0] && in[1])
	case Nor:
		return !(in[0] || in[1])
	case Xnor:
		return in[0] && in[1] || !in[0] && !in[1]
	case Input:
		panic("input nodes have no gate function")
	}
	panic("unknown node kind " + k.String())
}
