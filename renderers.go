package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zam-dot/contrastscope/contrast"
)

// ============================================================================
// MARKDOWN REPORT
// ============================================================================
// The markdown report is plain text first; glamour styles it for the
// terminal. Writing it to a file with --format markdown --style notty gives
// something that pastes cleanly into an issue.

func renderMarkdown(s Snapshot, regressions []Regression, minLevel contrast.Level) string {
	var b strings.Builder

	title := s.Title
	if title == "" {
		title = s.Target
	}
	fmt.Fprintf(&b, "# Contrast report: %s\n\n", title)
	fmt.Fprintf(&b, "Target: `%s`  \nRun: `%s`\n\n", s.Target, s.RunID)

	b.WriteString("| Elements | AA | AAA | Errors |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n\n",
		s.Summary.Total, s.Summary.PassingAA, s.Summary.PassingAAA, s.Summary.Errors)

	below := belowLevel(s.Results, minLevel)
	if len(below) == 0 {
		fmt.Fprintf(&b, "All elements meet %s.\n", minLevel)
	} else {
		fmt.Fprintf(&b, "## Below %s (%d)\n\n", minLevel, len(below))
		for _, c := range below {
			fmt.Fprintf(&b, "- **%s** %s on %s, %.2f:1 (%s, %s text)",
				escapeMarkdown(c.Label), c.Foreground.Hex(), c.Background.Hex(),
				c.Ratio, c.Level, sizeName(c.Large))
			if hint := contrast.SuggestText(c.Background); hint != c.Foreground {
				fmt.Fprintf(&b, ", try %s", hint.Hex())
			}
			b.WriteString("\n")
		}
	}

	if len(s.Errors) > 0 {
		fmt.Fprintf(&b, "\n## Not evaluated (%d)\n\n", len(s.Errors))
		for _, e := range s.Errors {
			fmt.Fprintf(&b, "- **%s** %s\n", escapeMarkdown(e.Label), escapeMarkdown(e.Message))
		}
	}

	if len(regressions) > 0 {
		fmt.Fprintf(&b, "\n## Regressions (%d)\n\n", len(regressions))
		for _, r := range regressions {
			fmt.Fprintf(&b, "- **%s** %s → %s (%.2f:1 → %.2f:1)\n",
				escapeMarkdown(r.Label), r.Was, r.Now, r.WasRatio, r.NowRatio)
		}
	}
	return b.String()
}

// renderWithStyle runs markdown through glamour using the configured style
func renderWithStyle(md string, cfg Config) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if cfg.Style != "" && cfg.Style != "auto" {
		styleOpt = glamour.WithStandardStyle(cfg.Style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(cfg.Width))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// ============================================================================
// TABLE REPORT
// ============================================================================

func renderTable(s Snapshot) string {
	rows := make([][]string, 0, len(s.Results))
	for _, c := range s.Results {
		rows = append(rows, []string{
			truncate(c.Label, 40),
			c.Foreground.Hex(),
			c.Background.Hex(),
			fmt.Sprintf("%.2f", c.Ratio),
			sizeName(c.Large),
			c.Level.String(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("ELEMENT", "FG", "BG", "RATIO", "SIZE", "LEVEL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 5 && row >= 0 && row < len(s.Results) {
				return tableCellStyle.Inherit(levelStyle(s.Results[row].Level))
			}
			return tableCellStyle
		})

	summary := fmt.Sprintf("%d elements, %d pass AA, %d pass AAA, %d errors",
		s.Summary.Total, s.Summary.PassingAA, s.Summary.PassingAAA, s.Summary.Errors)
	return t.Render() + "\n" + dimStyle.Render(summary) + "\n"
}

// ============================================================================
// JSON REPORT
// ============================================================================

type jsonReport struct {
	Snapshot
	Regressions []Regression `json:"regressions,omitempty"`
}

func renderJSON(w io.Writer, s Snapshot, regressions []Regression) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Snapshot: s, Regressions: regressions})
}

// ============================================================================
// PAIR REPORT
// ============================================================================

func renderPair(c contrast.Compliance) string {
	var b strings.Builder

	b.WriteString(swatch("Aa  The quick brown fox", c.Foreground, c.Background))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s on %s\n", c.Foreground.Hex(), c.Background.Hex())
	fmt.Fprintf(&b, "Ratio   %s\n", levelStyle(c.Level).Render(fmt.Sprintf("%.2f:1", c.Ratio)))
	fmt.Fprintf(&b, "Size    %s text\n", sizeName(c.Large))
	fmt.Fprintf(&b, "AA      %s\n", verdict(c.PassesAA))
	fmt.Fprintf(&b, "AAA     %s\n", verdict(c.PassesAAA))

	if !c.PassesAA {
		hint := contrast.SuggestText(c.Background)
		fmt.Fprintf(&b, "\n%s %s\n",
			dimStyle.Render("Suggested text color:"),
			swatch(hint.Hex(), hint, c.Background))
	}
	return b.String()
}

// ============================================================================
// HELPERS
// ============================================================================

func belowLevel(results []contrast.Compliance, l contrast.Level) []contrast.Compliance {
	return contrast.Report{Results: results}.Below(l)
}

func sizeName(large bool) string {
	if large {
		return contrast.Large.String()
	}
	return contrast.Normal.String()
}

// escapeMarkdown keeps labels like `p.intro "*new*"` literal
func escapeMarkdown(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "|", `\|`, "[", `\[`, "]", `\]`, "<", "&lt;")
	return r.Replace(s)
}

// truncate shortens s to max runes
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
