// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package script implements a small line oriented command language that
// drives a logicsim.Controller. It is used by the command line front-ends.
//
//	# half adder
//	add input a
//	add input b
//	add xor s
//	add and c
//	connect a s 0
//	connect b s 1
//	connect a c 0
//	connect b c 1
//	set a 1
//	toggle b
//	expect s 0
//	expect c 1
//	show
//
// Nodes are referred to by the label given when they are added. Scripts
// replay commands; they do not describe a saved circuit.
package script

import (
	"io"
	"strconv"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Op is a script command.
//
type Op int

// Script commands.
//
const (
	OpAdd Op = iota
	OpRemove
	OpConnect
	OpDisconnect
	OpSet
	OpToggle
	OpClear
	OpEval
	OpShow
	OpExpect
)

var opNames = map[string]Op{
	"add":        OpAdd,
	"remove":     OpRemove,
	"connect":    OpConnect,
	"disconnect": OpDisconnect,
	"set":        OpSet,
	"toggle":     OpToggle,
	"clear":      OpClear,
	"eval":       OpEval,
	"show":       OpShow,
	"expect":     OpExpect,
}

// argument patterns: l = label, k = kind, s = slot, b = bit, o = optional label
var opArgs = [...]string{
	OpAdd:        "ko",
	OpRemove:     "l",
	OpConnect:    "lls",
	OpDisconnect: "lls",
	OpSet:        "lb",
	OpToggle:     "l",
	OpClear:      "",
	OpEval:       "",
	OpShow:       "",
	OpExpect:     "lb",
}

func (op Op) String() string {
	for n, o := range opNames {
		if o == op {
			return n
		}
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// A Command is a parsed script line.
//
type Command struct {
	Op     Op
	Pos    Pos
	Kind   ls.Kind  // OpAdd
	Labels []string // node labels in argument order
	Slot   int      // OpConnect, OpDisconnect
	Value  bool     // OpSet, OpExpect
}

// Parse reads a whole script.
//
func Parse(r io.Reader) ([]Command, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return ParseString(string(b))
}

// ParseString parses a script held in a string.
//
func ParseString(src string) ([]Command, error) {
	toks := lex(src)
	var cmds []Command
	for len(toks) > 0 {
		i := 0
		for toks[i].typ != tokNewline && toks[i].typ != tokEOF && toks[i].typ != tokError {
			i++
		}
		if t := toks[i]; t.typ == tokError {
			return nil, parseError(t.pos, t.val)
		}
		if i > 0 {
			cmd, err := parseCommand(toks[:i])
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, cmd)
		}
		if toks[i].typ == tokEOF {
			break
		}
		toks = toks[i+1:]
	}
	return cmds, nil
}

func parseCommand(toks []token) (Command, error) {
	t := toks[0]
	op, ok := opNames[t.val]
	if t.typ != tokIdent || !ok {
		return Command{}, parseError(t.pos, "unknown command "+strconv.Quote(t.val))
	}
	cmd := Command{Op: op, Pos: t.pos}
	args := toks[1:]
	pattern := opArgs[op]
	for i, p := range pattern {
		if i >= len(args) {
			if p == 'o' {
				break
			}
			return Command{}, parseError(t.pos, op.String()+": missing arguments")
		}
		a := args[i]
		switch p {
		case 'l', 'o':
			if a.typ != tokIdent {
				return Command{}, parseError(a.pos, "expected node label, got "+strconv.Quote(a.val))
			}
			cmd.Labels = append(cmd.Labels, a.val)
		case 'k':
			k, err := ls.ParseKind(a.val)
			if err != nil {
				return Command{}, parseError(a.pos, err.Error())
			}
			cmd.Kind = k
		case 's':
			n, err := strconv.Atoi(a.val)
			if a.typ != tokInt || err != nil {
				return Command{}, parseError(a.pos, "expected slot number, got "+strconv.Quote(a.val))
			}
			cmd.Slot = n
		case 'b':
			switch a.val {
			case "0", "false", "off":
				cmd.Value = false
			case "1", "true", "on":
				cmd.Value = true
			default:
				return Command{}, parseError(a.pos, "expected 0 or 1, got "+strconv.Quote(a.val))
			}
		}
	}
	if len(args) > len(pattern) {
		return Command{}, parseError(args[len(pattern)].pos, "unexpected "+strconv.Quote(args[len(pattern)].val))
	}
	return cmd, nil
}

func parseError(pos Pos, msg string) error {
	return errors.Errorf("%v: %s", pos, msg)
}
