// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/db47h/logicsim/internal/script"
	"github.com/db47h/logicsim/internal/watch"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var watchFile bool
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !watchFile {
				return a.runScript(path, cmd.OutOrStdout())
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watchScript(ctx, path, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "run again whenever the script changes")
	return cmd
}

func (a *app) runScript(path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	cmds, err := script.Parse(f)
	if err != nil {
		return errors.Wrap(err, path)
	}
	in := script.NewInterpreter(a.controller(), out)
	return errors.Wrap(in.Run(cmds), path)
}

func (a *app) watchScript(ctx context.Context, path string, out io.Writer) error {
	run := func() {
		if err := a.runScript(path, out); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
	run()
	w := &watch.Watcher{Log: a.log.Logger}
	return w.File(ctx, path, func() {
		fmt.Fprintf(out, "--- %s changed\n", path)
		run()
	})
}

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read commands from standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			prompt := false
			if f, ok := in.(*os.File); ok {
				prompt = isatty.IsTerminal(f.Fd())
			}
			return a.repl(in, cmd.OutOrStdout(), prompt)
		},
	}
}

// repl executes commands line by line. Errors are printed and do not stop
// the session.
//
func (a *app) repl(r io.Reader, out io.Writer, prompt bool) error {
	in := script.NewInterpreter(a.controller(), out)
	sc := bufio.NewScanner(r)
	line := 0
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line++
		cmds, err := script.ParseString(sc.Text())
		if err == nil {
			err = in.Run(cmds)
		}
		if err != nil {
			fmt.Fprintf(out, "line %d: %v\n", line, err)
		}
	}
	return sc.Err()
}
