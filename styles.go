package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zam-dot/contrastscope/contrast"
)

// ============================================================================
// STYLING SYSTEM
// ============================================================================
// Lip Gloss colors here are 256-color terminal codes, except for swatches,
// which use the exact hex colors under test so the terminal shows the pair.

var (
	// ============================================================================
	// DOCUMENT LAYOUT STYLES
	// ============================================================================

	// docStyle provides overall page margins
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	// ============================================================================
	// TYPOGRAPHY STYLES
	// ============================================================================

	// titleStyle styles the report title
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1)

	// headingStyle styles section headings in the detail view
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203")). // Red-orange
			MarginTop(1)

	// dimStyle is for secondary text such as hex codes and hints
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))

	// ============================================================================
	// VERDICT STYLES
	// ============================================================================

	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))  // Green
	aaStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")) // Amber: AA but not AAA
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")) // Red

	// ============================================================================
	// STATUS BAR
	// ============================================================================

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	// tableBorderStyle colors the table report borders
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// levelStyle picks the verdict color for a level
func levelStyle(l contrast.Level) lipgloss.Style {
	switch l {
	case contrast.LevelAAA:
		return passStyle
	case contrast.LevelAA:
		return aaStyle
	default:
		return failStyle
	}
}

// verdict renders a pass/fail mark
func verdict(ok bool) string {
	if ok {
		return passStyle.Render("pass")
	}
	return failStyle.Render("fail")
}

// swatch paints sample text in the pair's own colors
func swatch(text string, fg, bg contrast.Color) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex())).
		Padding(0, 2).
		Render(text)
}
