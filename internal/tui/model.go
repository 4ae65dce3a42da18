// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package tui implements an interactive terminal view of a circuit.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ls "github.com/db47h/logicsim"
)

type mode int

const (
	modeNormal mode = iota
	modeTarget      // connect: picking the target node
	modeSlot        // connect: typing the slot number
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	markStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// Model is a bubbletea model over a Controller.
//
type Model struct {
	c     *ls.Controller
	keys  keyMap
	help  help.Model
	wires bool

	cursor   int
	mode     mode
	src, dst ls.NodeID

	status string
	err    bool
}

// New returns a model driving c.
//
func New(c *ls.Controller, showWires bool) Model {
	return Model{c: c, keys: defaultKeys(), help: help.New(), wires: showWires}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeTarget:
			m.updateTarget(msg)
		case modeSlot:
			m.updateSlot(msg)
		default:
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) {
	for k, b := range m.keys.Add {
		if key.Matches(msg, b) {
			id, _, err := m.c.AddNode(k)
			if m.report(err, "added %v %v", k, id) {
				m.cursor = m.c.Snapshot().Len() - 1
			}
			return
		}
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Wires):
		m.wires = !m.wires
	case key.Matches(msg, m.keys.Evaluate):
		_, err := m.c.Evaluate()
		m.report(err, "evaluated")
	case key.Matches(msg, m.keys.Clear):
		m.c.Clear()
		m.cursor = 0
		m.report(nil, "cleared")
	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.selected(); ok {
			_, err := m.c.ToggleInput(id)
			m.report(err, "toggled %v", id)
		}
	case key.Matches(msg, m.keys.Remove):
		if id, ok := m.selected(); ok {
			_, err := m.c.RemoveNode(id)
			m.report(err, "removed %v", id)
			m.move(0)
		}
	case key.Matches(msg, m.keys.Disconnect):
		if id, ok := m.selected(); ok {
			m.unwire(id)
		}
	case key.Matches(msg, m.keys.Connect):
		if id, ok := m.selected(); ok {
			m.src = id
			m.mode = modeTarget
			m.report(nil, "connect %v: select target node and press enter", id)
		}
	}
}

func (m *Model) updateTarget(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		m.report(nil, "cancelled")
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Confirm):
		id, ok := m.selected()
		if !ok {
			return
		}
		n, _ := m.c.Snapshot().Node(id)
		m.dst = id
		if len(n.Inputs) < 2 {
			// no slot to choose, let the controller accept or reject slot 0
			m.connect(0)
			return
		}
		m.mode = modeSlot
		m.report(nil, "connect %v -> %v: slot number (0-%d)?", m.src, id, len(n.Inputs)-1)
	}
}

func (m *Model) updateSlot(msg tea.KeyMsg) {
	if key.Matches(msg, m.keys.Cancel) {
		m.mode = modeNormal
		m.report(nil, "cancelled")
		return
	}
	if slot, err := strconv.Atoi(msg.String()); err == nil {
		m.connect(slot)
	}
}

func (m *Model) connect(slot int) {
	m.mode = modeNormal
	_, err := m.c.Connect(m.src, m.dst, slot)
	m.report(err, "connected %v -> %v[%d]", m.src, m.dst, slot)
}

// unwire removes all wires feeding node id.
//
func (m *Model) unwire(id ls.NodeID) {
	n := 0
	for _, w := range m.c.Snapshot().Wires {
		if w.Target != id {
			continue
		}
		if _, err := m.c.Disconnect(w.Source, w.Target, w.Slot); err != nil {
			m.report(err, "")
			return
		}
		n++
	}
	m.report(nil, "removed %d wires into %v", n, id)
}

func (m *Model) selected() (ls.NodeID, bool) {
	s := m.c.Snapshot()
	if m.cursor < 0 || m.cursor >= s.Len() {
		return 0, false
	}
	return s.Nodes[m.cursor].ID, true
}

func (m *Model) move(d int) {
	n := m.c.Snapshot().Len()
	m.cursor += d
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// report sets the status line and returns true if err is nil.
//
func (m *Model) report(err error, format string, args ...interface{}) bool {
	if err != nil {
		m.status, m.err = err.Error(), true
		return false
	}
	m.status, m.err = fmt.Sprintf(format, args...), false
	return true
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	s := m.c.Snapshot()
	b.WriteString(titleStyle.Render(fmt.Sprintf("logicsim: %d nodes, %d wires (%v)", s.Len(), len(s.Wires), m.c.State())))
	b.WriteString("\n\n")
	if s.Len() == 0 {
		b.WriteString(dimStyle.Render("  empty circuit, press i to add an input"))
		b.WriteByte('\n')
	}
	feeds := feeders(s)
	for i, n := range s.Nodes {
		cur := "  "
		if i == m.cursor {
			cur = cursorStyle.Render("> ")
		}
		id := n.ID.String()
		if m.mode != modeNormal && n.ID == m.src {
			id = markStyle.Render(id)
		}
		fmt.Fprintf(&b, "%s%-5s %-6v %s", cur, id, n.Kind, value(n.Value))
		if m.wires && len(n.Inputs) > 0 {
			b.WriteString(dimStyle.Render("  <- " + strings.Join(feeds[n.ID], " ")))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if m.status != "" {
		if m.err {
			b.WriteString(errStyle.Render(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func feeders(s *ls.Snapshot) map[ls.NodeID][]string {
	f := make(map[ls.NodeID][]string)
	for _, n := range s.Nodes {
		if len(n.Inputs) == 0 {
			continue
		}
		l := make([]string, len(n.Inputs))
		for i := range l {
			l[i] = "-"
		}
		f[n.ID] = l
	}
	for _, w := range s.Wires {
		f[w.Target][w.Slot] = w.Source.String()
	}
	return f
}

func value(v bool) string {
	if v {
		return highStyle.Render("1")
	}
	return lowStyle.Render("0")
}

// Run starts the terminal UI on c and blocks until the user quits.
//
func Run(c *ls.Controller, showWires bool, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(c, showWires), opts...).Run()
	return err
}
