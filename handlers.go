package main

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ============================================================================
// WINDOW RESIZE
// ============================================================================

func (m model) handleWindowSize(msg tea.WindowSizeMsg) model {
	// Reserve 1 line at the bottom for the status bar
	height := msg.Height - 1
	if !m.ready {
		m.viewport = viewport.New(msg.Width, height)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = height
	}
	m.list.SetSize(msg.Width, height)
	return m
}

// ============================================================================
// KEYBOARD INPUT
// ============================================================================

// handleKey processes the browser's own keys. It reports false for keys the
// list or viewport should receive instead.
func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	// While typing a filter every key belongs to the list
	if m.mode == modeList && m.list.FilterState() == list.Filtering {
		return m, nil, false
	}
	m.status = ""

	switch m.mode {
	case modeDetail:
		switch msg.String() {
		case "q":
			return m, tea.Quit, true
		case "esc", "backspace":
			return m.closeDetail(), nil, true
		case "n":
			return m.jumpToFailure(1), nil, true
		case "p":
			return m.jumpToFailure(-1), nil, true
		}

	default:
		switch msg.String() {
		case "q":
			return m, tea.Quit, true
		case "enter":
			return m.showDetail(), nil, true
		case "f":
			m, cmd := m.toggleFailuresOnly()
			return m, cmd, true
		case "n":
			return m.jumpToFailure(1), nil, true
		case "p":
			return m.jumpToFailure(-1), nil, true
		}
	}
	return m, nil, false
}
