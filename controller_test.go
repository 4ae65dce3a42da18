// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"testing"
	"time"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func add(t *testing.T, c *ls.Controller, k ls.Kind) ls.NodeID {
	t.Helper()
	id, _, err := c.AddNode(k)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return id
}

func connect(t *testing.T, c *ls.Controller, src, dst ls.NodeID, slot int) *ls.Snapshot {
	t.Helper()
	s, err := c.Connect(src, dst, slot)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return s
}

// andDemo builds A, B -> AND -> probe with A driven high.
func andDemo(t *testing.T, c *ls.Controller) (a, b, g, o ls.NodeID) {
	t.Helper()
	a = add(t, c, ls.Input)
	b = add(t, c, ls.Input)
	_, err := c.SetDrive(a, true)
	require.NoError(t, err)
	g = add(t, c, ls.And)
	connect(t, c, a, g, 0)
	connect(t, c, b, g, 1)
	o = add(t, c, ls.Probe)
	connect(t, c, g, o, 0)
	return a, b, g, o
}

func TestController_andScenario(t *testing.T) {
	c := ls.NewController()
	_, b, g, o := andDemo(t, c)

	s, err := c.Evaluate()
	require.NoError(t, err)
	assert.False(t, s.Value(o))
	assert.False(t, s.Value(g))

	s, err = c.ToggleInput(b)
	require.NoError(t, err)
	assert.True(t, s.Value(o))

	s, err = c.Evaluate()
	require.NoError(t, err)
	assert.True(t, s.Value(o))
}

func TestController_floatingNot(t *testing.T) {
	c := ls.NewController()
	n := add(t, c, ls.Not)
	p := add(t, c, ls.Probe)
	s := connect(t, c, n, p, 0)
	assert.True(t, s.Value(n))
	assert.True(t, s.Value(p))
}

func TestController_cycle(t *testing.T) {
	c := ls.NewController()
	a, b, g, o := andDemo(t, c)
	n := add(t, c, ls.Not)
	connect(t, c, g, n, 0)
	before := c.Snapshot()

	td := []struct {
		name     string
		src, dst ls.NodeID
		slot     int
	}{
		{"back_to_input", g, a, 0},
		{"self_loop", n, n, 0},
		{"transitive", n, g, 0},
		{"self_loop_free_slot", g, g, 1},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			s, err := c.Connect(d.src, d.dst, d.slot)
			assert.ErrorIs(t, err, ls.ErrCycleDetected)
			assert.Nil(t, s)
			assert.Same(t, before, c.Snapshot())
			assert.Len(t, c.Wires(), 4)
		})
	}
	_, _ = b, o
}

func TestController_connectErrors(t *testing.T) {
	c := ls.NewController()
	a, b, g, o := andDemo(t, c)
	n := add(t, c, ls.Not)
	before := c.Snapshot()

	td := []struct {
		name     string
		src, dst ls.NodeID
		slot     int
		err      error
	}{
		{"unknown_source", 99, n, 0, ls.ErrNotFound},
		{"unknown_target", a, 99, 0, ls.ErrNotFound},
		{"from_probe", o, n, 0, ls.ErrWrongKind},
		{"negative_slot", a, n, -1, ls.ErrInvalidSlot},
		{"slot_past_arity", a, n, 1, ls.ErrInvalidSlot},
		{"into_input", n, b, 0, ls.ErrInvalidSlot},
		{"occupied", b, g, 0, ls.ErrSlotOccupied},
		{"occupied_probe", n, o, 0, ls.ErrSlotOccupied},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := c.Connect(d.src, d.dst, d.slot)
			assert.ErrorIs(t, err, d.err)
			assert.Equal(t, d.err, errors.Cause(err))
			assert.Same(t, before, c.Snapshot())
		})
	}
	// prior wire into g slot 0 is intact
	w, ok := c.Feeder(g, 0)
	require.True(t, ok)
	assert.Equal(t, a, w.Source)
}

func TestController_fanOut(t *testing.T) {
	c := ls.NewController()
	a := add(t, c, ls.Input)
	g := add(t, c, ls.Xor)
	connect(t, c, a, g, 0)
	s := connect(t, c, a, g, 1)
	assert.False(t, s.Value(g))
	p1 := add(t, c, ls.Probe)
	p2 := add(t, c, ls.Probe)
	connect(t, c, a, p1, 0)
	connect(t, c, a, p2, 0)
	s, err := c.ToggleInput(a)
	require.NoError(t, err)
	assert.True(t, s.Value(p1))
	assert.True(t, s.Value(p2))
	assert.False(t, s.Value(g))
	assert.Len(t, s.Wires, 4)
}

func TestController_removeCascades(t *testing.T) {
	c := ls.NewController()
	_, b, g, o := andDemo(t, c)
	_, err := c.ToggleInput(b)
	require.NoError(t, err)
	require.True(t, c.Snapshot().Value(o))

	s, err := c.RemoveNode(b)
	require.NoError(t, err)
	assert.Len(t, s.Wires, 2)
	_, ok := s.Node(b)
	assert.False(t, ok)
	gs, _ := s.Node(g)
	assert.Equal(t, []bool{true, false}, gs.Inputs)
	assert.False(t, s.Value(o))

	s, err = c.RemoveNode(g)
	require.NoError(t, err)
	assert.Empty(t, s.Wires)
	_, ok = c.Feeder(o, 0)
	assert.False(t, ok)

	_, err = c.RemoveNode(g)
	assert.ErrorIs(t, err, ls.ErrNotFound)
}

func TestController_disconnect(t *testing.T) {
	c := ls.NewController()
	a, b, g, o := andDemo(t, c)
	_, err := c.ToggleInput(b)
	require.NoError(t, err)

	_, err = c.Disconnect(b, g, 0)
	assert.ErrorIs(t, err, ls.ErrNotFound)
	_, err = c.Disconnect(a, g, 5)
	assert.ErrorIs(t, err, ls.ErrNotFound)
	_, err = c.Disconnect(a, 42, 0)
	assert.ErrorIs(t, err, ls.ErrNotFound)

	s, err := c.Disconnect(b, g, 1)
	require.NoError(t, err)
	assert.False(t, s.Value(o))
	assert.Len(t, s.Wires, 2)

	// the slot can be fed again
	s = connect(t, c, a, g, 1)
	assert.True(t, s.Value(o))
}

func TestController_drive(t *testing.T) {
	c := ls.NewController()
	a := add(t, c, ls.Input)
	g := add(t, c, ls.Or)

	_, err := c.SetDrive(g, true)
	assert.ErrorIs(t, err, ls.ErrWrongKind)
	_, err = c.ToggleInput(g)
	assert.ErrorIs(t, err, ls.ErrWrongKind)
	_, err = c.ToggleInput(7)
	assert.ErrorIs(t, err, ls.ErrNotFound)

	s, err := c.SetDrive(a, true)
	require.NoError(t, err)
	assert.True(t, s.Value(a))
	s, err = c.SetDrive(a, true)
	require.NoError(t, err)
	assert.True(t, s.Value(a))
	s, err = c.ToggleInput(a)
	require.NoError(t, err)
	assert.False(t, s.Value(a))
}

func TestController_addUnknownKind(t *testing.T) {
	c := ls.NewController()
	_, _, err := c.AddNode(ls.Kind(0))
	assert.ErrorIs(t, err, ls.ErrUnknownKind)
	_, _, err = c.AddNode(ls.Kind(42))
	assert.ErrorIs(t, err, ls.ErrUnknownKind)
	assert.Equal(t, ls.Empty, c.State())
}

func TestController_clear(t *testing.T) {
	c := ls.NewController()
	assert.Equal(t, ls.Empty, c.State())
	assert.Equal(t, 0, c.Snapshot().Len())

	andDemo(t, c)
	assert.Equal(t, ls.Populated, c.State())

	s := c.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Wires)
	assert.Equal(t, ls.Empty, c.State())

	s, err := c.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	// clearing an empty circuit is fine, ids restart at 1
	c.Clear()
	assert.Equal(t, ls.NodeID(1), add(t, c, ls.Input))
}

func TestController_freshSnapshot(t *testing.T) {
	c1 := ls.NewController()
	s := c1.Snapshot()
	s.Nodes = append(s.Nodes, ls.NodeState{ID: 42, Kind: ls.And, Value: true})

	c2 := ls.NewController()
	assert.Equal(t, 0, c2.Snapshot().Len())
	assert.False(t, c2.Snapshot().Value(42))
	assert.NotSame(t, c1.Snapshot(), c2.Snapshot())

	c1.Clear()
	assert.NotSame(t, c1.Snapshot(), c2.Snapshot())
	assert.Equal(t, 0, c2.Snapshot().Len())
}

func TestController_reads(t *testing.T) {
	c := ls.NewController()
	a, b, g, o := andDemo(t, c)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []ls.Wire{
		{Source: a, Target: g, Slot: 0},
		{Source: b, Target: g, Slot: 1},
		{Source: g, Target: o, Slot: 0},
	}, c.Wires())
	_, ok := c.Feeder(99, 0)
	assert.False(t, ok)
	_, ok = c.Feeder(g, 2)
	assert.False(t, ok)
}

func TestController_states(t *testing.T) {
	c := ls.NewController()
	a := add(t, c, ls.Input)
	assert.Equal(t, ls.Populated, c.State())
	_, err := c.RemoveNode(a)
	require.NoError(t, err)
	assert.Equal(t, ls.Empty, c.State())
	assert.Equal(t, "empty", c.State().String())
}

func TestController_idempotentEvaluate(t *testing.T) {
	c := ls.NewController()
	_, b, _, _ := andDemo(t, c)
	_, err := c.ToggleInput(b)
	require.NoError(t, err)

	s1, err := c.Evaluate()
	require.NoError(t, err)
	s2, err := c.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, s1.String(), s2.String())
}

type recorder struct {
	cmds  []string
	fails int
	evals int
}

func (r *recorder) CommandDone(cmd string, err error) {
	r.cmds = append(r.cmds, cmd)
	if err != nil {
		r.fails++
	}
}

func (r *recorder) Evaluated(time.Duration, int, int) { r.evals++ }

func TestController_observer(t *testing.T) {
	r := &recorder{}
	c := ls.NewController(ls.WithObserver(r))
	a := add(t, c, ls.Input)
	_, err := c.ToggleInput(a)
	require.NoError(t, err)
	_, err = c.RemoveNode(99)
	require.Error(t, err)
	c.Clear()

	assert.Equal(t, []string{"add", "toggle", "remove", "clear"}, r.cmds)
	assert.Equal(t, 1, r.fails)
	assert.Equal(t, 3, r.evals)
}

func TestController_errorMessages(t *testing.T) {
	c := ls.NewController()
	g := add(t, c, ls.And)
	_, err := c.Connect(g, g, 0)
	require.Error(t, err)
	assert.Equal(t, "connect: wire #1->#1[0]: cycle detected", err.Error())
	_, err = c.SetDrive(g, true)
	assert.Equal(t, "set: node #1 is and, not input: wrong node kind", err.Error())
}
