// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package server exposes logicsim circuits over HTTP and WebSocket.
//
// Each session owns one Controller. REST endpoints under /v1/sessions/:sid
// run one command per request and return the new snapshot. Clients connected
// to /v1/sessions/:sid/ws can send the same commands as JSON frames and
// receive every snapshot produced in the session.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/logging"
	"github.com/db47h/logicsim/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"
)

// ErrSessionLimit is returned when the maximum number of sessions is reached.
var ErrSessionLimit = errors.New("session limit reached")

// An Option configures a Server.
//
type Option func(*Server)

// WithLogger sets the server's logger.
//
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// A SessionObserver hands out one Observer per session and is told when a
// session goes away.
//
type SessionObserver interface {
	Session(id string) ls.Observer
	Forget(id string)
}

// WithObserver sets the Observer given to every session controller. If o is
// also a SessionObserver, each session gets its own Observer from o.Session.
//
func WithObserver(o ls.Observer) Option {
	return func(s *Server) { s.obs = o }
}

// WithMetrics enables the metrics endpoint on the configured metrics address.
//
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// Server holds the sessions.
//
type Server struct {
	cfg      config.Server
	log      *slog.Logger
	obs      ls.Observer
	gatherer prometheus.Gatherer
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
}

// New returns a new Server.
//
func New(cfg config.Server, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		log:      logging.Discard(),
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the HTTP handler for the API.
//
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware(telemetry.ServiceName), s.logRequests())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.Len()})
	})

	v1 := r.Group("/v1")
	v1.POST("/sessions", s.createSession)
	sess := v1.Group("/sessions/:sid", s.loadSession)
	sess.GET("", s.getSession)
	sess.DELETE("", s.deleteSession)
	sess.POST("/nodes", s.addNode)
	sess.DELETE("/nodes/:id", s.removeNode)
	sess.POST("/wires", s.connect)
	sess.DELETE("/wires", s.disconnect)
	sess.PUT("/inputs/:id", s.setInput)
	sess.POST("/inputs/:id/toggle", s.toggleInput)
	sess.POST("/clear", s.clear)
	sess.GET("/ws", s.serveWS)
	return r
}

// Len returns the number of open sessions.
//
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) newSession() (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.cfg.MaxSessions {
		return nil, errors.Wrapf(ErrSessionLimit, "%d sessions", len(s.sessions))
	}
	id := uuid.NewString()
	log := s.log.With("session", id)
	opts := []ls.Option{ls.WithLogger(log)}
	if so, ok := s.obs.(SessionObserver); ok {
		opts = append(opts, ls.WithObserver(so.Session(id)))
	} else if s.obs != nil {
		opts = append(opts, ls.WithObserver(s.obs))
	}
	ss := &session{
		id:    id,
		c:     ls.NewController(opts...),
		log:   log,
		conns: make(map[*conn]struct{}),
	}
	s.sessions[id] = ss
	log.Info("session created")
	return ss, nil
}

func (s *Server) session(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Server) removeSession(id string) bool {
	s.mu.Lock()
	ss := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ss == nil {
		return false
	}
	if so, ok := s.obs.(SessionObserver); ok {
		so.Forget(id)
	}
	ss.close()
	ss.log.Info("session deleted")
	return true
}

func (s *Server) closeAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.removeSession(id)
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		lvl := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			lvl = slog.LevelError
		}
		s.log.LogAttrs(c.Request.Context(), lvl, "request",
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)))
	}
}

// Run serves the API on the configured address and, if enabled, the metrics
// on the metrics address, until ctx is done or one of the servers fails.
//
func (s *Server) Run(ctx context.Context) error {
	servers := []*http.Server{{Addr: s.cfg.Addr, Handler: s.Handler()}}
	if s.gatherer != nil && s.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
		servers = append(servers, &http.Server{Addr: s.cfg.MetricsAddr, Handler: mux})
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, hs := range servers {
		hs := hs
		g.Go(func() error {
			s.log.Info("listening", "addr", hs.Addr)
			if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return errors.Wrap(err, hs.Addr)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeAll()
		for _, hs := range servers {
			if err := hs.Shutdown(sctx); err != nil {
				s.log.Warn("shutdown", "addr", hs.Addr, "error", err)
			}
		}
		return nil
	})
	return g.Wait()
}
