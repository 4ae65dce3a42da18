// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package script_test

import (
	"strings"
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `# test
add input a
add NOT
connect a not2 0

set a on
expect not2 0
disconnect a not2 0
clear
`
	cmds, err := script.Parse(strings.NewReader(src))
	require.NoError(t, err)
	want := []script.Command{
		{Op: script.OpAdd, Pos: script.Pos{Line: 2, Col: 1}, Kind: ls.Input, Labels: []string{"a"}},
		{Op: script.OpAdd, Pos: script.Pos{Line: 3, Col: 1}, Kind: ls.Not},
		{Op: script.OpConnect, Pos: script.Pos{Line: 4, Col: 1}, Labels: []string{"a", "not2"}},
		{Op: script.OpSet, Pos: script.Pos{Line: 6, Col: 1}, Labels: []string{"a"}, Value: true},
		{Op: script.OpExpect, Pos: script.Pos{Line: 7, Col: 1}, Labels: []string{"not2"}},
		{Op: script.OpDisconnect, Pos: script.Pos{Line: 8, Col: 1}, Labels: []string{"a", "not2"}},
		{Op: script.OpClear, Pos: script.Pos{Line: 9, Col: 1}},
	}
	assert.Equal(t, want, cmds)
}

func TestParse_errors(t *testing.T) {
	td := []struct {
		src string
		err string
	}{
		{"frobnicate", `1:1: unknown command "frobnicate"`},
		{"\nadd", "2:1: add: missing arguments"},
		{"add flipflop", `1:5: "flipflop": unknown node kind`},
		{"connect a b x", `1:13: expected slot number, got "x"`},
		{"set a 2", `1:7: expected 0 or 1, got "2"`},
		{"toggle 3", `1:8: expected node label, got "3"`},
		{"show all", `1:6: unexpected "all"`},
		{"add and @", `1:9: unexpected character '@'`},
		{"42", `1:1: unknown command "42"`},
	}
	for _, d := range td {
		t.Run(d.src, func(t *testing.T) {
			_, err := script.ParseString(d.src)
			require.Error(t, err)
			assert.Equal(t, d.err, err.Error())
		})
	}
}
