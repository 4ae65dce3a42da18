// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/db47h/logicsim/internal/server"
	"github.com/db47h/logicsim/internal/telemetry"
	"github.com/db47h/logicsim/internal/tui"
	"github.com/db47h/logicsim/logiclib"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Build the demo AND circuit and toggle its inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := a.controller()
			d, err := logiclib.Demo(c)
			if err != nil {
				return err
			}
			fmt.Fprint(out, c.Snapshot())
			for _, id := range []ls.NodeID{d.A, d.B} {
				s, err := c.ToggleInput(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\ntoggle %v:\n%v", id, s)
			}
			return nil
		},
	}
}

// tuiController returns a controller that logs to the log file only, the
// terminal belongs to the UI.
//
func (a *app) tuiController() *ls.Controller {
	return a.controller(ls.WithLogger(a.log.FileOnly()))
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit a circuit in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(a.tuiController(), a.cfg.TUI.ShowWires, tea.WithAltScreen())
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve circuits over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if a.addr != "" {
				cfg.Server.Addr = a.addr
			}
			shutdown, err := telemetry.Setup(cfg.Tracing, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					a.log.Warn("tracing shutdown", "error", err)
				}
			}()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			if !a.log.Enabled(cmd.Context(), slog.LevelDebug) {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := server.New(cfg.Server,
				server.WithLogger(a.log.Logger),
				server.WithObserver(metrics.New(reg)),
				server.WithMetrics(reg))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&a.addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}
