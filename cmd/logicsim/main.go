// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim runs combinational logic circuits from scripts, a REPL, a
// terminal UI or an HTTP server.
package main

import (
	"fmt"
	"os"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/logging"
	"github.com/spf13/cobra"
)

type app struct {
	cfgFile  string
	logLevel string
	addr     string
	cfg      *config.Config
	log      *logging.Logger
}

func (a *app) controller(opts ...ls.Option) *ls.Controller {
	return ls.NewController(append([]ls.Option{ls.WithLogger(a.log.Logger)}, opts...)...)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "logicsim",
		Short:         "Interactive combinational logic simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Log.Level = a.logLevel
				if err = cfg.Validate(); err != nil {
					return err
				}
			}
			a.cfg = cfg
			a.log, err = logging.New(cfg.Log, cmd.ErrOrStderr())
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.log.Close()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newRunCmd(a),
		newReplCmd(a),
		newDemoCmd(a),
		newTUICmd(a),
		newServeCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "logicsim:", err)
		os.Exit(1)
	}
}
