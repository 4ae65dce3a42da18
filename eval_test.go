// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAdd(t *testing.T, g *Graph, k Kind) NodeID {
	t.Helper()
	id, err := g.AddNode(k)
	require.NoError(t, err)
	return id
}

func TestOrder_tieBreak(t *testing.T) {
	g := NewGraph()
	p := mustAdd(t, g, Probe) // 1
	n := mustAdd(t, g, Not)   // 2
	b := mustAdd(t, g, Input) // 3
	a := mustAdd(t, g, Input) // 4
	x := mustAdd(t, g, Xor)   // 5
	require.NoError(t, g.Connect(x, p, 0))
	require.NoError(t, g.Connect(a, x, 0))
	require.NoError(t, g.Connect(b, x, 1))
	require.NoError(t, g.Connect(a, n, 0))

	order, err := Order(g)
	require.NoError(t, err)
	// 3 and 4 are ready first; 4 releases 2 which goes before 5.
	assert.Equal(t, []NodeID{b, a, n, x, p}, order)

	for i := 0; i < 10; i++ {
		o, err := Order(g)
		require.NoError(t, err)
		assert.Equal(t, order, o)
	}
}

func TestEvaluate_doesNotModify(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Input)
	n := mustAdd(t, g, Not)
	require.NoError(t, g.Connect(a, n, 0))
	vs, err := Evaluate(g)
	require.NoError(t, err)
	assert.Equal(t, Values{a: false, n: true}, vs)
	assert.False(t, g.Node(n).Value())

	g.apply(vs)
	assert.True(t, g.Node(n).Value())
}

func TestEvaluate_inconsistent(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Not)
	b := mustAdd(t, g, Not)
	mustAdd(t, g, Input)
	// bypass Connect to build a loop
	g.link(Wire{a, b, 0})
	g.link(Wire{b, a, 0})

	_, err := Order(g)
	assert.ErrorIs(t, err, ErrInconsistentGraph)
	_, err = Evaluate(g)
	assert.ErrorIs(t, err, ErrInconsistentGraph)
	assert.True(t, IsFatal(err))
	assert.EqualError(t, err, "2 of 3 nodes are on a cycle: inconsistent graph")
}

func TestController_rollbackOnFatal(t *testing.T) {
	c := NewController()
	a, _, err := c.AddNode(Not)
	require.NoError(t, err)
	b, s0, err := c.AddNode(Not)
	require.NoError(t, err)
	c.g.link(Wire{a, b, 0})
	c.g.link(Wire{b, a, 0})
	broken := c.g

	_, _, err = c.AddNode(Input)
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	// graph restored to the state before the failed command
	assert.NotSame(t, broken, c.g)
	assert.Equal(t, 2, c.g.Len())
	assert.Same(t, s0, c.Snapshot())
}

func TestGraph_clone(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Input)
	x := mustAdd(t, g, Xor)
	require.NoError(t, g.Connect(a, x, 0))
	require.NoError(t, g.Connect(a, x, 1))
	require.NoError(t, g.SetDrive(a, true))

	c := g.Clone()
	assert.Equal(t, g.Wires(), c.Wires())
	assert.Equal(t, g.WireCount(), c.WireCount())
	d, err := c.Drive(a)
	require.NoError(t, err)
	assert.True(t, d)

	require.NoError(t, c.RemoveNode(a))
	assert.Equal(t, 0, c.WireCount())
	assert.Equal(t, 2, g.WireCount())
	assert.Len(t, g.Node(a).outs, 2)

	// ids keep counting in the clone
	id := mustAdd(t, c, Probe)
	assert.Equal(t, NodeID(3), id)
}

func TestGraph_wiresOrder(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Input)
	x := mustAdd(t, g, Or)
	y := mustAdd(t, g, And)
	require.NoError(t, g.Connect(a, y, 1))
	require.NoError(t, g.Connect(a, x, 1))
	require.NoError(t, g.Connect(x, y, 0))
	require.NoError(t, g.Connect(a, x, 0))
	assert.Equal(t, []Wire{{a, x, 0}, {a, x, 1}, {x, y, 0}, {a, y, 1}}, g.Wires())
	assert.Equal(t, []NodeID{a, x, y}, g.IDs())
}
