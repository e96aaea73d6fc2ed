package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ============================================================================
// FAILURE NAVIGATION
// ============================================================================

// nextBelow finds the next item under the threshold, starting after from and
// moving by step (+1 or -1). The search wraps around. It returns -1 when no
// item fails.
func nextBelow(items []list.Item, from, step int) int {
	n := len(items)
	if n == 0 {
		return -1
	}
	for k := 1; k <= n; k++ {
		i := ((from+step*k)%n + n) % n
		if item, ok := items[i].(resultItem); ok && item.below() {
			return i
		}
	}
	return -1
}

// jumpToFailure moves the list cursor to the next (step=1) or previous
// (step=-1) failing result
func (m model) jumpToFailure(step int) model {
	idx := nextBelow(m.list.VisibleItems(), m.list.Index(), step)
	if idx < 0 {
		m.status = fmt.Sprintf("No elements below %s", m.threshold)
		return m
	}
	m.list.Select(idx)
	if m.mode == modeDetail {
		m = m.showDetail()
	}
	return m
}

// toggleFailuresOnly switches between all results and failing ones, keeping
// the cursor on the same result when it is still listed
func (m model) toggleFailuresOnly() (model, tea.Cmd) {
	current, hasCurrent := m.list.SelectedItem().(resultItem)

	m.failuresOnly = !m.failuresOnly
	cmd := m.list.SetItems(resultItems(m.snapshot.Results, m.threshold, m.failuresOnly))

	m.list.Select(0)
	if hasCurrent {
		for i, it := range m.list.VisibleItems() {
			if it.(resultItem).result == current.result {
				m.list.Select(i)
				break
			}
		}
	}

	if m.failuresOnly {
		m.status = fmt.Sprintf("Showing %d elements below %s", len(m.list.Items()), m.threshold)
	} else {
		m.status = "Showing all elements"
	}
	return m, cmd
}

// showDetail opens the selected result in the viewport
func (m model) showDetail() model {
	item, ok := m.list.SelectedItem().(resultItem)
	if !ok {
		return m
	}
	m.mode = modeDetail
	m.viewport.SetContent(renderDetail(item.result, m.threshold))
	m.viewport.GotoTop()
	return m
}

// closeDetail returns to the list
func (m model) closeDetail() model {
	m.mode = modeList
	return m
}
