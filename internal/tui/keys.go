// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	ls "github.com/db47h/logicsim"
)

type keyMap struct {
	Up, Down   key.Binding
	Toggle     key.Binding
	Remove     key.Binding
	Connect    key.Binding
	Disconnect key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Clear      key.Binding
	Evaluate   key.Binding
	Wires      key.Binding
	Help       key.Binding
	Quit       key.Binding
	// one binding per node kind
	Add map[ls.Kind]key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space", "toggle input")),
		Remove:     key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "remove node")),
		Connect:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		Disconnect: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unwire inputs")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick target")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Clear:      key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear")),
		Evaluate:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "evaluate")),
		Wires:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "show wires")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Add: map[ls.Kind]key.Binding{
			ls.Input: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "add input")),
			ls.And:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add and")),
			ls.Or:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "add or")),
			ls.Xor:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "add xor")),
			ls.Not:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add not")),
			ls.Probe: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "add probe")),
			ls.Nand:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "add nand")),
			ls.Nor:   key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "add nor")),
			ls.Xnor:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "add xnor")),
		},
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add[ls.Input], k.Add[ls.And], k.Toggle, k.Connect, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	add := make([]key.Binding, 0, len(k.Add))
	for _, kd := range ls.Kinds() {
		add = append(add, k.Add[kd])
	}
	return [][]key.Binding{
		add,
		{k.Up, k.Down, k.Toggle, k.Remove, k.Evaluate},
		{k.Connect, k.Confirm, k.Cancel, k.Disconnect},
		{k.Clear, k.Wires, k.Help, k.Quit},
	}
}
