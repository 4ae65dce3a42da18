// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics exports Controller activity as Prometheus metrics.
package metrics

import (
	"time"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "logicsim"

// Observer implements logicsim.Observer. It is safe for concurrent use and a
// single Observer can be shared by several controllers.
//
// The node and wire gauges are labelled by session. The root Observer
// returned by New reports under the empty session label; use Session to get
// an Observer for a given session.
//
type Observer struct {
	Commands   *prometheus.CounterVec
	Evaluation prometheus.Histogram
	Nodes      *prometheus.GaugeVec
	Wires      *prometheus.GaugeVec

	session string
}

var _ ls.Observer = (*Observer)(nil)

// New registers the logicsim metrics with reg and returns an Observer that
// updates them.
//
func New(reg prometheus.Registerer) *Observer {
	f := promauto.With(reg)
	return &Observer{
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Controller commands by command name and result.",
		}, []string{"command", "result"}),
		Evaluation: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of full circuit evaluations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		Nodes: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes",
			Help:      "Number of nodes in the last evaluated circuit of each session.",
		}, []string{"session"}),
		Wires: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wires",
			Help:      "Number of wires in the last evaluated circuit of each session.",
		}, []string{"session"}),
	}
}

// Session returns an Observer sharing o's metrics that reports circuit sizes
// under session id.
//
func (o *Observer) Session(id string) ls.Observer {
	so := *o
	so.session = id
	return &so
}

// Forget removes the gauges of session id.
//
func (o *Observer) Forget(id string) {
	o.Nodes.DeleteLabelValues(id)
	o.Wires.DeleteLabelValues(id)
}

// CommandDone implements logicsim.Observer.
//
func (o *Observer) CommandDone(cmd string, err error) {
	o.Commands.WithLabelValues(cmd, Result(err)).Inc()
}

// Evaluated implements logicsim.Observer.
//
func (o *Observer) Evaluated(d time.Duration, nodes, wires int) {
	o.Evaluation.Observe(d.Seconds())
	o.Nodes.WithLabelValues(o.session).Set(float64(nodes))
	o.Wires.WithLabelValues(o.session).Set(float64(wires))
}

var results = []struct {
	err  error
	name string
}{
	{ls.ErrNotFound, "not_found"},
	{ls.ErrInvalidSlot, "invalid_slot"},
	{ls.ErrSlotOccupied, "slot_occupied"},
	{ls.ErrCycleDetected, "cycle_detected"},
	{ls.ErrWrongKind, "wrong_kind"},
	{ls.ErrUnknownKind, "unknown_kind"},
	{ls.ErrInconsistentGraph, "inconsistent_graph"},
}

// Result returns the result label for a command error: "ok" for nil, the
// snake case name of a logicsim error kind, or "error".
//
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range results {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return "error"
}
