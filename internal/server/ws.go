// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package server

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	writeWait   = 5 * time.Second
	sendBuffer  = 32
	maxFrameLen = 4096
)

// conn is a WebSocket client. Messages are written by a single goroutine
// reading from send.
//
type conn struct {
	ws   *websocket.Conn
	send chan Message
	once sync.Once
}

func (cn *conn) close() {
	cn.once.Do(func() { close(cn.send) })
}

func (cn *conn) writePump() {
	defer cn.ws.Close()
	for m := range cn.send {
		_ = cn.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cn.ws.WriteJSON(m); err != nil {
			return
		}
	}
	_ = cn.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (s *Server) serveWS(c *gin.Context) {
	ss := c.MustGet(sessionKey).(*session)
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		ss.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	ws.SetReadLimit(maxFrameLen)
	cn := &conn{ws: ws, send: make(chan Message, sendBuffer)}
	ss.attach(cn)
	go cn.writePump()
	ss.log.Debug("websocket client connected", "remote", ws.RemoteAddr().String())

	lim := rate.NewLimiter(rate.Limit(s.cfg.WSRate), s.cfg.WSBurst)
	ctx := c.Request.Context()
	for {
		var req Request
		if err := ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ss.log.Debug("websocket read", "error", err)
			}
			break
		}
		if !lim.Allow() {
			ss.reply(cn, errorMessage(req.Seq, req.Command, errors.New("rate limit exceeded"), "rate_limited"))
			continue
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			ss.reply(cn, errorMessage(req.Seq, req.Command, err, "bad_request"))
			continue
		}
		_, _, _ = ss.exec(ctx, req, cn)
	}
	ss.detach(cn)
	ss.log.Debug("websocket client disconnected")
}
