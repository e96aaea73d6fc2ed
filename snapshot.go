package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/zam-dot/contrastscope/contrast"
)

// Snapshot is a saved audit. Saving one and passing it back with --baseline
// on a later run shows which elements got worse.
type Snapshot struct {
	RunID     string                `json:"runId"`
	Target    string                `json:"target"`
	Title     string                `json:"title,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	Summary   contrast.Summary      `json:"summary"`
	Results   []contrast.Compliance `json:"results"`
	Errors    []SnapshotError       `json:"errors,omitempty"`
}

// SnapshotError is an element that could not be evaluated.
type SnapshotError struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Regression is an element whose level dropped since the baseline.
type Regression struct {
	Label    string         `json:"label"`
	Was      contrast.Level `json:"was"`
	Now      contrast.Level `json:"now"`
	WasRatio float64        `json:"wasRatio"`
	NowRatio float64        `json:"nowRatio"`
}

func newSnapshot(target, title string, r contrast.Report) Snapshot {
	s := Snapshot{
		RunID:     uuid.NewString(),
		Target:    target,
		Title:     title,
		CreatedAt: time.Now().UTC(),
		Summary:   r.Summary,
		Results:   r.Results,
	}
	for _, f := range r.Failures {
		s.Errors = append(s.Errors, SnapshotError{Label: f.Label, Message: f.Err.Error()})
	}
	return s
}

func saveSnapshot(filename string, s Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func loadSnapshot(filename string) (Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Snapshot{}, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parsing snapshot %s: %w", filename, err)
	}
	return s, nil
}

// findRegressions pairs results by label. Repeated labels are paired by
// occurrence, so the second `p "Read more"` is compared with the second one
// in the baseline.
func findRegressions(baseline, current Snapshot) []Regression {
	before := occurrenceKeys(baseline.Results)

	var out []Regression
	for _, kc := range orderedOccurrences(current.Results) {
		was, ok := before[kc.key]
		if !ok || kc.c.Level >= was.Level {
			continue
		}
		out = append(out, Regression{
			Label:    kc.c.Label,
			Was:      was.Level,
			Now:      kc.c.Level,
			WasRatio: was.Ratio,
			NowRatio: kc.c.Ratio,
		})
	}
	return out
}

type keyedResult struct {
	key string
	c   contrast.Compliance
}

func orderedOccurrences(results []contrast.Compliance) []keyedResult {
	seen := make(map[string]int, len(results))
	out := make([]keyedResult, 0, len(results))
	for _, c := range results {
		n := seen[c.Label]
		seen[c.Label] = n + 1
		out = append(out, keyedResult{key: c.Label + "\x00" + strconv.Itoa(n), c: c})
	}
	return out
}

func occurrenceKeys(results []contrast.Compliance) map[string]contrast.Compliance {
	m := make(map[string]contrast.Compliance, len(results))
	for _, kc := range orderedOccurrences(results) {
		m[kc.key] = kc.c
	}
	return m
}
