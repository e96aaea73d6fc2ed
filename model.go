package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/zam-dot/contrastscope/contrast"
)

// ============================================================================
// VIEW MODES
// ============================================================================

type viewMode int

const (
	modeList   viewMode = iota // Browsing the result list
	modeDetail                 // Reading one result in the viewport
)

// ============================================================================
// LIST ITEM IMPLEMENTATION FOR RESULTS
// ============================================================================

// resultItem adapts a Compliance to the bubbles list component
type resultItem struct {
	result    contrast.Compliance
	threshold contrast.Level
}

// FilterValue lets "/" search labels and levels ("fail", "AA")
func (i resultItem) FilterValue() string {
	return i.result.Label + " " + i.result.Level.String()
}

func (i resultItem) Title() string {
	mark := "  "
	if i.below() {
		mark = failStyle.Render("✗ ")
	}
	return mark + truncate(i.result.Label, 60)
}

func (i resultItem) Description() string {
	return fmt.Sprintf("%.2f:1  %-4s  %s on %s  %s text",
		i.result.Ratio, i.result.Level, i.result.Foreground.Hex(),
		i.result.Background.Hex(), sizeName(i.result.Large))
}

func (i resultItem) below() bool {
	return !i.result.Meets(i.threshold)
}

// ============================================================================
// MAIN APPLICATION MODEL
// ============================================================================

// model is the report browser state
type model struct {
	snapshot  Snapshot
	threshold contrast.Level // Results under this level count as failures

	list     list.Model     // All results, or only the failing ones
	viewport viewport.Model // Detail view for the selected result

	mode         viewMode
	failuresOnly bool
	status       string // One-off message, cleared on the next key
	ready        bool   // Set once the terminal size is known
}

func newModel(s Snapshot, threshold contrast.Level) model {
	l := list.New(resultItems(s.Results, threshold, false), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Contrast: " + titleOf(s)
	l.SetStatusBarItemName("element", "elements")
	l.SetFilteringEnabled(true)

	return model{
		snapshot:  s,
		threshold: threshold,
		list:      l,
		mode:      modeList,
	}
}

// resultItems converts results into list items, optionally keeping only
// those below the threshold
func resultItems(results []contrast.Compliance, threshold contrast.Level, failuresOnly bool) []list.Item {
	items := make([]list.Item, 0, len(results))
	for _, c := range results {
		item := resultItem{result: c, threshold: threshold}
		if failuresOnly && !item.below() {
			continue
		}
		items = append(items, item)
	}
	return items
}

func titleOf(s Snapshot) string {
	if s.Title != "" {
		return s.Title
	}
	return s.Target
}
