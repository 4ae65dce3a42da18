// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// State is the state of a circuit session.
//
type State int

// Session states.
//
const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Empty {
		return "empty"
	}
	return "populated"
}

// An Observer is notified of every command run by a Controller. It is used
// to collect metrics.
//
type Observer interface {
	// CommandDone is called once per command with its name and outcome.
	CommandDone(cmd string, err error)
	// Evaluated is called after each successful evaluation.
	Evaluated(d time.Duration, nodes, wires int)
}

type nopObserver struct{}

func (nopObserver) CommandDone(string, error)         {}
func (nopObserver) Evaluated(time.Duration, int, int) {}

// An Option configures a Controller.
//
type Option func(*Controller)

// WithLogger sets the logger used by the controller. By default nothing is
// logged.
//
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithObserver sets the controller's Observer.
//
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.obs = o
		}
	}
}

// Controller is the entry point for all changes to a circuit. Each command
// applies one change to the controller's Graph, evaluates the whole circuit
// and returns the resulting Snapshot.
//
// Commands are atomic: on failure, the graph and the current snapshot are
// left as they were before the command.
//
// A Controller is not safe for concurrent use. Callers that share one between
// goroutines must serialize commands.
//
type Controller struct {
	g    *Graph
	snap *Snapshot
	log  *slog.Logger
	obs  Observer
}

// NewController returns a controller over a new, empty graph.
//
func NewController(opts ...Option) *Controller {
	c := &Controller{
		g:    NewGraph(),
		snap: emptySnapshot(),
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		obs:  nopObserver{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns Empty if the circuit has no nodes, Populated otherwise.
//
func (c *Controller) State() State {
	if c.g.Len() == 0 {
		return Empty
	}
	return Populated
}

// Snapshot returns the snapshot computed by the last successful command.
//
func (c *Controller) Snapshot() *Snapshot { return c.snap }

// Len returns the number of nodes in the circuit.
//
func (c *Controller) Len() int { return c.g.Len() }

// Wires returns all wires sorted by target then slot.
//
func (c *Controller) Wires() []Wire { return c.g.Wires() }

// Feeder returns the wire feeding slot slot of node id, if any.
//
func (c *Controller) Feeder(id NodeID, slot int) (Wire, bool) {
	n := c.g.Node(id)
	if n == nil {
		return Wire{}, false
	}
	w := n.Slot(slot)
	if w == nil {
		return Wire{}, false
	}
	return *w, true
}

// AddNode adds a node of kind k and returns its id.
//
func (c *Controller) AddNode(k Kind) (NodeID, *Snapshot, error) {
	var id NodeID
	s, err := c.exec("add", func(g *Graph) (err error) {
		id, err = g.AddNode(k)
		return err
	}, slog.String("kind", k.String()))
	if err != nil {
		return 0, nil, err
	}
	return id, s, nil
}

// RemoveNode removes node id and all wires connected to it.
//
func (c *Controller) RemoveNode(id NodeID) (*Snapshot, error) {
	return c.exec("remove", func(g *Graph) error {
		return g.RemoveNode(id)
	}, slog.Int("node", int(id)))
}

// Connect wires the output of src to slot slot of dst. See Graph.Connect.
//
func (c *Controller) Connect(src, dst NodeID, slot int) (*Snapshot, error) {
	return c.exec("connect", func(g *Graph) error {
		return g.Connect(src, dst, slot)
	}, slog.Int("source", int(src)), slog.Int("target", int(dst)), slog.Int("slot", slot))
}

// Disconnect removes the wire from src to slot slot of dst.
//
func (c *Controller) Disconnect(src, dst NodeID, slot int) (*Snapshot, error) {
	return c.exec("disconnect", func(g *Graph) error {
		return g.Disconnect(src, dst, slot)
	}, slog.Int("source", int(src)), slog.Int("target", int(dst)), slog.Int("slot", slot))
}

// SetDrive sets the drive value of input node id.
//
func (c *Controller) SetDrive(id NodeID, v bool) (*Snapshot, error) {
	return c.exec("set", func(g *Graph) error {
		return g.SetDrive(id, v)
	}, slog.Int("node", int(id)), slog.Bool("value", v))
}

// ToggleInput inverts the drive value of input node id.
//
func (c *Controller) ToggleInput(id NodeID) (*Snapshot, error) {
	return c.exec("toggle", func(g *Graph) error {
		v, err := g.Drive(id)
		if err != nil {
			return err
		}
		return g.SetDrive(id, !v)
	}, slog.Int("node", int(id)))
}

// Clear removes all nodes and wires.
//
func (c *Controller) Clear() *Snapshot {
	s, err := c.exec("clear", func(g *Graph) error {
		g.Clear()
		return nil
	})
	if err != nil {
		// evaluating an empty graph cannot fail.
		panic(err)
	}
	return s
}

// Evaluate re-evaluates the circuit without changing it. The result is always
// identical to the current snapshot.
//
func (c *Controller) Evaluate() (*Snapshot, error) {
	return c.exec("evaluate", nil)
}

func (c *Controller) exec(cmd string, mutate func(*Graph) error, attrs ...slog.Attr) (s *Snapshot, err error) {
	defer func() { c.obs.CommandDone(cmd, err) }()

	var backup *Graph
	if mutate != nil {
		backup = c.g.Clone()
		if err = mutate(c.g); err != nil {
			err = errors.Wrap(err, cmd)
			c.log.LogAttrs(context.Background(), slog.LevelWarn, "command rejected",
				append(attrs, slog.String("cmd", cmd), slog.String("error", err.Error()))...)
			return nil, err
		}
	}

	start := time.Now()
	vs, err := Evaluate(c.g)
	if err != nil {
		if backup != nil {
			c.g = backup
		}
		err = errors.Wrap(err, cmd)
		c.log.LogAttrs(context.Background(), slog.LevelError, "evaluation failed",
			append(attrs, slog.String("cmd", cmd), slog.String("error", err.Error()))...)
		return nil, err
	}
	c.g.apply(vs)
	c.snap = newSnapshot(c.g, vs)
	c.obs.Evaluated(time.Since(start), c.g.Len(), c.g.WireCount())

	c.log.LogAttrs(context.Background(), slog.LevelDebug, cmd,
		append(attrs, slog.Int("nodes", c.g.Len()), slog.Int("wires", c.g.WireCount()))...)
	return c.snap, nil
}
