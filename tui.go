package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zam-dot/contrastscope/contrast"
)

// ============================================================================
// BUBBLE TEA LIFECYCLE METHODS
// ============================================================================

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next
	}

	// Everything else goes to the active component
	var cmd tea.Cmd
	if m.mode == modeDetail {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	var mainContent string
	if m.mode == modeDetail {
		mainContent = m.viewport.View()
	} else {
		mainContent = m.list.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		mainContent,
		statusStyle.Width(m.viewport.Width).Render(m.statusLine()),
	)
}

func (m model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	below := len(belowLevel(m.snapshot.Results, m.threshold))
	if m.mode == modeDetail {
		return fmt.Sprintf("%d below %s | n/p next/previous failure, esc back, q quit", below, m.threshold)
	}
	return fmt.Sprintf("%d elements, %d below %s | enter details, f failures only, n/p jump, / filter, q quit",
		len(m.snapshot.Results), below, m.threshold)
}

// ============================================================================
// DETAIL VIEW
// ============================================================================

func renderDetail(c contrast.Compliance, threshold contrast.Level) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(c.Label))
	b.WriteString("\n")
	b.WriteString(swatch("Aa  The quick brown fox", c.Foreground, c.Background))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Contrast"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Ratio       %s\n", levelStyle(c.Level).Render(fmt.Sprintf("%.2f:1", c.Ratio)))
	fmt.Fprintf(&b, "Text        %s\n", c.Foreground.Hex())
	fmt.Fprintf(&b, "Background  %s\n", c.Background.Hex())
	fmt.Fprintf(&b, "Size        %s text\n", sizeName(c.Large))

	b.WriteString(headingStyle.Render("Verdicts"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "AA          %s\n", verdict(c.PassesAA))
	fmt.Fprintf(&b, "AAA         %s\n", verdict(c.PassesAAA))

	if !c.Meets(threshold) {
		hint := contrast.SuggestText(c.Background)
		b.WriteString(headingStyle.Render("Suggestion"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s gives %.2f:1 on this background\n",
			swatch(hint.Hex(), hint, c.Background), contrast.Ratio(hint, c.Background))
	}

	return docStyle.Render(b.String())
}

// runBrowser starts the interactive report browser
func runBrowser(s Snapshot, threshold contrast.Level) error {
	p := tea.NewProgram(newModel(s, threshold), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
