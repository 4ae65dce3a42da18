// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0600))
	return fn
}

func TestDemo(t *testing.T) {
	out, _, err := execute(t, "", "demo")
	require.NoError(t, err)
	assert.Equal(t, `#1 input 0
#2 input 0
#3 and 0 <- #1 #2
#4 probe 0 <- #3

toggle #1:
#1 input 1
#2 input 0
#3 and 0 <- #1 #2
#4 probe 0 <- #3

toggle #2:
#1 input 1
#2 input 1
#3 and 1 <- #1 #2
#4 probe 1 <- #3
`, out)
}

func TestRun(t *testing.T) {
	fn := writeFile(t, "xor.lsim", `
add input a
add input b
add xor x
connect a x 0
connect b x 1
set a 1
expect x 1
toggle b
expect x 0
show
`)
	out, _, err := execute(t, "", "run", fn)
	require.NoError(t, err)
	assert.Contains(t, out, "x")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)

	fn = writeFile(t, "bad.lsim", "add input a\nexpect a 1\n")
	_, _, err = execute(t, "", "run", fn)
	assert.EqualError(t, err, fn+": 2:1: a is 0, want 1: expectation failed")

	fn = writeFile(t, "syntax.lsim", "add input a\nconnect a\n")
	_, _, err = execute(t, "", "run", fn)
	assert.EqualError(t, err, fn+": 2:1: connect: missing arguments")

	_, _, err = execute(t, "", "run", filepath.Join(t.TempDir(), "missing.lsim"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRepl(t *testing.T) {
	out, _, err := execute(t, "add not n\nadd out p\nconnect n p 0\nconnect p n 0\nfly\nexpect p 1\nshow\n", "repl")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "line 4: 1:1: connect: wire #2->#1[0]: probe has no output: wrong node kind", lines[0])
	assert.Equal(t, `line 5: 1:1: unknown command "fly"`, lines[1])
	assert.Equal(t, []string{"n", "not", "1"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"p", "probe", "1", "<-", "n"}, strings.Fields(lines[3]))
}

func TestConfigFlags(t *testing.T) {
	_, _, err := execute(t, "", "--log-level", "loud", "demo")
	assert.ErrorContains(t, err, "invalid configuration")

	fn := writeFile(t, "logicsim.yaml", "log:\n  level: debug\n  format: text\n")
	_, logs, err := execute(t, "", "--config", fn, "demo")
	require.NoError(t, err)
	assert.Contains(t, logs, "level=DEBUG msg=toggle")

	_, _, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "none.yaml"), "demo")
	assert.Error(t, err)
}

func TestTUIController_logsToFileOnly(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "tui.log")
	var stderr bytes.Buffer
	l, err := logging.New(logging.Config{Format: logging.FormatText, File: fn}, &stderr)
	require.NoError(t, err)
	a := &app{log: l}

	c := a.tuiController()
	_, err = c.ToggleInput(1)
	require.Error(t, err)
	_, _, err = c.AddNode(ls.Input)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	assert.Empty(t, stderr.String())
	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"command rejected"`)

	// without a log file nothing is logged
	l, err = logging.New(logging.Config{Format: logging.FormatText}, &stderr)
	require.NoError(t, err)
	a = &app{log: l}
	_, err = a.tuiController().ToggleInput(1)
	require.Error(t, err)
	assert.Empty(t, stderr.String())
}
