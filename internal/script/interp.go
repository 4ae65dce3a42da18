// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package script

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// ErrExpect is returned when an expect command does not hold.
var ErrExpect = errors.New("expectation failed")

// ErrLabel is returned for unknown or duplicate labels.
var ErrLabel = errors.New("bad label")

// Interpreter runs commands against a Controller and keeps track of node
// labels.
//
type Interpreter struct {
	c      *ls.Controller
	out    io.Writer
	ids    map[string]ls.NodeID
	labels map[ls.NodeID]string
}

// NewInterpreter returns an interpreter for c. show commands write to out.
//
func NewInterpreter(c *ls.Controller, out io.Writer) *Interpreter {
	return &Interpreter{
		c:      c,
		out:    out,
		ids:    make(map[string]ls.NodeID),
		labels: make(map[ls.NodeID]string),
	}
}

// Controller returns the interpreter's controller.
//
func (in *Interpreter) Controller() *ls.Controller { return in.c }

// Lookup returns the id of the node with the given label.
//
func (in *Interpreter) Lookup(label string) (ls.NodeID, bool) {
	id, ok := in.ids[label]
	return id, ok
}

// Label returns the label of node id.
//
func (in *Interpreter) Label(id ls.NodeID) string {
	if l, ok := in.labels[id]; ok {
		return l
	}
	return id.String()
}

// Run executes cmds in order and stops at the first error.
//
func (in *Interpreter) Run(cmds []Command) error {
	for _, cmd := range cmds {
		if err := in.Exec(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Exec executes a single command. Errors are prefixed with the command's
// position.
//
func (in *Interpreter) Exec(cmd Command) error {
	if err := in.exec(cmd); err != nil {
		return errors.Wrap(err, cmd.Pos.String())
	}
	return nil
}

func (in *Interpreter) exec(cmd Command) error {
	ids := make([]ls.NodeID, 0, 2)
	if cmd.Op != OpAdd {
		for _, l := range cmd.Labels {
			id, ok := in.ids[l]
			if !ok {
				return errors.Wrapf(ErrLabel, "unknown node %q", l)
			}
			ids = append(ids, id)
		}
	}

	var err error
	switch cmd.Op {
	case OpAdd:
		return in.add(cmd)
	case OpRemove:
		if _, err = in.c.RemoveNode(ids[0]); err == nil {
			delete(in.labels, ids[0])
			delete(in.ids, cmd.Labels[0])
		}
	case OpConnect:
		_, err = in.c.Connect(ids[0], ids[1], cmd.Slot)
	case OpDisconnect:
		_, err = in.c.Disconnect(ids[0], ids[1], cmd.Slot)
	case OpSet:
		_, err = in.c.SetDrive(ids[0], cmd.Value)
	case OpToggle:
		_, err = in.c.ToggleInput(ids[0])
	case OpClear:
		in.c.Clear()
		in.ids = make(map[string]ls.NodeID)
		in.labels = make(map[ls.NodeID]string)
	case OpEval:
		_, err = in.c.Evaluate()
	case OpShow:
		return in.Show(in.c.Snapshot())
	case OpExpect:
		if v := in.c.Snapshot().Value(ids[0]); v != cmd.Value {
			return errors.Wrapf(ErrExpect, "%s is %s, want %s", cmd.Labels[0], bit(v), bit(cmd.Value))
		}
	default:
		return errors.Errorf("unsupported command %v", cmd.Op)
	}
	return err
}

func (in *Interpreter) add(cmd Command) error {
	var label string
	if len(cmd.Labels) > 0 {
		label = cmd.Labels[0]
		if _, ok := in.ids[label]; ok {
			return errors.Wrapf(ErrLabel, "duplicate label %q", label)
		}
	}
	id, _, err := in.c.AddNode(cmd.Kind)
	if err != nil {
		return err
	}
	if label == "" {
		label = cmd.Kind.String() + strconv.Itoa(int(id))
		for _, ok := in.ids[label]; ok; _, ok = in.ids[label] {
			label += "_"
		}
	}
	in.ids[label] = id
	in.labels[id] = label
	return nil
}

// Show writes a table of s using node labels.
//
func (in *Interpreter) Show(s *ls.Snapshot) error {
	feeds := make(map[ls.NodeID][]string)
	for _, n := range s.Nodes {
		if len(n.Inputs) > 0 {
			f := make([]string, len(n.Inputs))
			for i := range f {
				f[i] = "-"
			}
			feeds[n.ID] = f
		}
	}
	for _, w := range s.Wires {
		feeds[w.Target][w.Slot] = in.Label(w.Source)
	}
	tw := tabwriter.NewWriter(in.out, 0, 4, 2, ' ', 0)
	for _, n := range s.Nodes {
		fmt.Fprintf(tw, "%s\t%v\t%s", in.Label(n.ID), n.Kind, bit(n.Value))
		if f := feeds[n.ID]; len(f) > 0 {
			fmt.Fprintf(tw, "\t<- %s", strings.Join(f, " "))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
