// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package server

import (
	"net/http"
	"strconv"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const sessionKey = "logicsim.session"

type nodeBody struct {
	Kind string `json:"kind" binding:"required"`
}

type wireBody struct {
	Source ls.NodeID `json:"source" binding:"required"`
	Target ls.NodeID `json:"target" binding:"required"`
	Slot   *int      `json:"slot" binding:"required"`
}

type inputBody struct {
	Value *bool `json:"value" binding:"required"`
}

// SessionResponse is returned when a session is created.
//
type SessionResponse struct {
	ID       string       `json:"id"`
	Snapshot *ls.Snapshot `json:"snapshot"`
}

// NodeResponse is returned when a node is added.
//
type NodeResponse struct {
	ID       ls.NodeID    `json:"id"`
	Snapshot *ls.Snapshot `json:"snapshot"`
}

// ErrorResponse is the body of all error responses. Code is a stable
// identifier such as "cycle_detected".
//
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// StatusCode returns the HTTP status for a command error.
//
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ls.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ls.ErrSlotOccupied), errors.Is(err, ls.ErrCycleDetected):
		return http.StatusConflict
	case errors.Is(err, ls.ErrInvalidSlot), errors.Is(err, ls.ErrWrongKind), errors.Is(err, ls.ErrUnknownKind):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrSessionLimit):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func abort(c *gin.Context, status int, err error, code string) {
	if code == "" {
		code = metrics.Result(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func (s *Server) createSession(c *gin.Context) {
	ss, err := s.newSession()
	if err != nil {
		abort(c, StatusCode(err), err, "session_limit")
		return
	}
	c.JSON(http.StatusCreated, SessionResponse{ID: ss.id, Snapshot: ss.snapshot()})
}

func (s *Server) loadSession(c *gin.Context) {
	sid := c.Param("sid")
	ss := s.session(sid)
	if ss == nil {
		abort(c, http.StatusNotFound, errors.Errorf("session %s: not found", sid), "not_found")
		return
	}
	c.Set(sessionKey, ss)
}

func (s *Server) deleteSession(c *gin.Context) {
	s.removeSession(c.Param("sid"))
	c.Status(http.StatusNoContent)
}

func (s *Server) getSession(c *gin.Context) {
	s.run(c, http.StatusOK, Request{Command: CmdEvaluate})
}

func (s *Server) addNode(c *gin.Context) {
	var b nodeBody
	if !bind(c, &b) {
		return
	}
	ss := c.MustGet(sessionKey).(*session)
	id, snap, err := ss.exec(c.Request.Context(), Request{Command: CmdAdd, Kind: b.Kind}, nil)
	if err != nil {
		abort(c, StatusCode(err), err, "")
		return
	}
	c.JSON(http.StatusCreated, NodeResponse{ID: id, Snapshot: snap})
}

func (s *Server) removeNode(c *gin.Context) {
	if id, ok := nodeID(c); ok {
		s.run(c, http.StatusOK, Request{Command: CmdRemove, ID: id})
	}
}

func (s *Server) connect(c *gin.Context) {
	var b wireBody
	if bind(c, &b) {
		s.run(c, http.StatusCreated, Request{Command: CmdConnect, Source: b.Source, Target: b.Target, Slot: *b.Slot})
	}
}

func (s *Server) disconnect(c *gin.Context) {
	var b wireBody
	if bind(c, &b) {
		s.run(c, http.StatusOK, Request{Command: CmdDisconnect, Source: b.Source, Target: b.Target, Slot: *b.Slot})
	}
}

func (s *Server) setInput(c *gin.Context) {
	id, ok := nodeID(c)
	if !ok {
		return
	}
	var b inputBody
	if bind(c, &b) {
		s.run(c, http.StatusOK, Request{Command: CmdSet, ID: id, Value: b.Value})
	}
}

func (s *Server) toggleInput(c *gin.Context) {
	if id, ok := nodeID(c); ok {
		s.run(c, http.StatusOK, Request{Command: CmdToggle, ID: id})
	}
}

func (s *Server) clear(c *gin.Context) {
	s.run(c, http.StatusOK, Request{Command: CmdClear})
}

// run executes req in the request's session and writes the snapshot.
//
func (s *Server) run(c *gin.Context, status int, req Request) {
	ss := c.MustGet(sessionKey).(*session)
	_, snap, err := ss.exec(c.Request.Context(), req, nil)
	if err != nil {
		abort(c, StatusCode(err), err, "")
		return
	}
	c.JSON(status, snap)
}

func bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		abort(c, http.StatusBadRequest, err, "bad_request")
		return false
	}
	return true
}

func nodeID(c *gin.Context) (ls.NodeID, bool) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abort(c, http.StatusBadRequest, errors.Errorf("bad node id %q", c.Param("id")), "bad_request")
		return 0, false
	}
	return ls.NodeID(n), true
}
