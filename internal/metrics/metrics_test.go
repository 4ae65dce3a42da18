// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package metrics_test

import (
	"strings"
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", metrics.Result(nil))
	assert.Equal(t, "cycle_detected", metrics.Result(errors.Wrap(ls.ErrCycleDetected, "connect")))
	assert.Equal(t, "inconsistent_graph", metrics.Result(ls.ErrInconsistentGraph))
	assert.Equal(t, "error", metrics.Result(errors.New("boom")))
}

func TestObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	c := ls.NewController(ls.WithObserver(m))

	a, _, err := c.AddNode(ls.Input)
	require.NoError(t, err)
	p, _, err := c.AddNode(ls.Probe)
	require.NoError(t, err)
	_, err = c.Connect(a, p, 0)
	require.NoError(t, err)
	_, err = c.Connect(a, p, 0)
	require.Error(t, err)
	_, err = c.ToggleInput(p)
	require.Error(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Commands.WithLabelValues("add", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Commands.WithLabelValues("connect", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Commands.WithLabelValues("connect", "slot_occupied")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Commands.WithLabelValues("toggle", "wrong_kind")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Nodes.WithLabelValues("")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Wires.WithLabelValues("")))

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP logicsim_wires Number of wires in the last evaluated circuit of each session.
# TYPE logicsim_wires gauge
logicsim_wires{session=""} 1
`), "logicsim_wires")
	assert.NoError(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(m.Evaluation))

	c.Clear()
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Nodes.WithLabelValues("")))
}

func TestObserver_sessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	c1 := ls.NewController(ls.WithObserver(m.Session("s1")))
	c2 := ls.NewController(ls.WithObserver(m.Session("s2")))

	for i := 0; i < 3; i++ {
		_, _, err := c1.AddNode(ls.Input)
		require.NoError(t, err)
	}
	_, _, err := c2.AddNode(ls.Not)
	require.NoError(t, err)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.Nodes.WithLabelValues("s1")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Nodes.WithLabelValues("s2")))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.Commands.WithLabelValues("add", "ok")))

	m.Forget("s1")
	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP logicsim_nodes Number of nodes in the last evaluated circuit of each session.
# TYPE logicsim_nodes gauge
logicsim_nodes{session="s2"} 1
`), "logicsim_nodes")
	assert.NoError(t, err)
}

func TestNew_duplicate(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}
