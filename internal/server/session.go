// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package server

import (
	"context"
	"log/slog"
	"sync"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/db47h/logicsim/internal/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Command names accepted in a Request.
//
const (
	CmdAdd        = "add"
	CmdRemove     = "remove"
	CmdConnect    = "connect"
	CmdDisconnect = "disconnect"
	CmdSet        = "set"
	CmdToggle     = "toggle"
	CmdClear      = "clear"
	CmdEvaluate   = "evaluate"
)

// A Request is a command sent over a WebSocket. REST handlers build one from
// the route and body.
//
type Request struct {
	Seq     int       `json:"seq,omitempty"`
	Command string    `json:"command" binding:"required,oneof=add remove connect disconnect set toggle clear evaluate"`
	Kind    string    `json:"kind,omitempty" binding:"required_if=Command add"`
	ID      ls.NodeID `json:"id,omitempty"`
	Source  ls.NodeID `json:"source,omitempty"`
	Target  ls.NodeID `json:"target,omitempty"`
	Slot    int       `json:"slot"`
	Value   *bool     `json:"value,omitempty" binding:"required_if=Command set"`
}

// Message types.
//
const (
	MsgReply    = "reply"
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

// A Message is sent to WebSocket clients. Replies answer the client's own
// requests; snapshots are pushed after any change made in the session.
//
type Message struct {
	Type     string       `json:"type"`
	Seq      int          `json:"seq,omitempty"`
	Command  string       `json:"command,omitempty"`
	ID       ls.NodeID    `json:"id,omitempty"`
	Snapshot *ls.Snapshot `json:"snapshot,omitempty"`
	Error    string       `json:"error,omitempty"`
	Code     string       `json:"code,omitempty"`
}

func errorMessage(seq int, cmd string, err error, code string) Message {
	if code == "" {
		code = metrics.Result(err)
	}
	return Message{Type: MsgError, Seq: seq, Command: cmd, Error: err.Error(), Code: code}
}

type session struct {
	id  string
	log *slog.Logger

	mu    sync.Mutex
	c     *ls.Controller
	conns map[*conn]struct{}
}

// exec runs req on the session's controller. On success, the new snapshot is
// pushed to all connections but from, which gets a reply instead.
//
func (ss *session) exec(ctx context.Context, req Request, from *conn) (ls.NodeID, *ls.Snapshot, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	_, span := telemetry.Tracer().Start(ctx, "logicsim."+req.Command, trace.WithAttributes(
		attribute.String("session", ss.id),
	))
	defer span.End()

	id, s, err := apply(ss.c, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if ls.IsFatal(err) {
			ss.log.Error("circuit evaluation failed", "command", req.Command, "error", err)
		}
		if from != nil {
			ss.push(from, errorMessage(req.Seq, req.Command, err, ""))
		}
		return 0, nil, err
	}
	span.SetAttributes(attribute.Int("nodes", s.Len()), attribute.Int("wires", len(s.Wires)))

	if from != nil {
		ss.push(from, Message{Type: MsgReply, Seq: req.Seq, Command: req.Command, ID: id, Snapshot: s})
	}
	if req.Command != CmdEvaluate {
		for cn := range ss.conns {
			if cn != from {
				ss.push(cn, Message{Type: MsgSnapshot, Command: req.Command, Snapshot: s})
			}
		}
	}
	return id, s, nil
}

func apply(c *ls.Controller, req Request) (id ls.NodeID, s *ls.Snapshot, err error) {
	switch req.Command {
	case CmdAdd:
		var k ls.Kind
		if k, err = ls.ParseKind(req.Kind); err != nil {
			return 0, nil, errors.Wrap(err, CmdAdd)
		}
		return c.AddNode(k)
	case CmdRemove:
		s, err = c.RemoveNode(req.ID)
	case CmdConnect:
		s, err = c.Connect(req.Source, req.Target, req.Slot)
	case CmdDisconnect:
		s, err = c.Disconnect(req.Source, req.Target, req.Slot)
	case CmdSet:
		if req.Value == nil {
			return 0, nil, errors.New("set: missing value")
		}
		s, err = c.SetDrive(req.ID, *req.Value)
	case CmdToggle:
		s, err = c.ToggleInput(req.ID)
	case CmdClear:
		s = c.Clear()
	case CmdEvaluate:
		s, err = c.Evaluate()
	default:
		err = errors.Errorf("unknown command %q", req.Command)
	}
	return 0, s, err
}

// snapshot returns the current snapshot.
//
func (ss *session) snapshot() *ls.Snapshot {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.c.Snapshot()
}

// attach registers cn and sends it the current snapshot.
//
func (ss *session) attach(cn *conn) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.conns[cn] = struct{}{}
	ss.push(cn, Message{Type: MsgSnapshot, Snapshot: ss.c.Snapshot()})
}

func (ss *session) detach(cn *conn) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.conns, cn)
	cn.close()
}

// reply sends m to cn only.
//
func (ss *session) reply(cn *conn, m Message) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.push(cn, m)
}

// push queues m on cn. Slow connections are dropped. ss.mu must be held.
//
func (ss *session) push(cn *conn, m Message) {
	if _, ok := ss.conns[cn]; !ok {
		return
	}
	select {
	case cn.send <- m:
	default:
		ss.log.Warn("dropping slow websocket client")
		delete(ss.conns, cn)
		cn.close()
	}
}

func (ss *session) close() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for cn := range ss.conns {
		delete(ss.conns, cn)
		cn.close()
	}
}
