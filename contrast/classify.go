package contrast

import (
	"fmt"
	"strings"
)

// WCAG 2.1 minimum ratios.
const (
	MinAANormal  = 4.5
	MinAAANormal = 7.0
	MinAALarge   = 3.0
	MinAAALarge  = 4.5
)

// Large text starts at 18px, or 14px when bold.
const (
	LargeTextPx     = 18.0
	LargeBoldTextPx = 14.0
)

type TextSize int

const (
	Normal TextSize = iota
	Large
)

func (s TextSize) String() string {
	if s == Large {
		return "large"
	}
	return "normal"
}

// TextSizeFor classifies a computed font size.
func TextSizeFor(px float64, bold bool) TextSize {
	if px >= LargeTextPx || (bold && px >= LargeBoldTextPx) {
		return Large
	}
	return Normal
}

// Level is the highest conformance level a ratio reaches.
type Level int

const (
	LevelFail Level = iota
	LevelAA
	LevelAAA
)

func (l Level) String() string {
	switch l {
	case LevelAA:
		return "AA"
	case LevelAAA:
		return "AAA"
	default:
		return "fail"
	}
}

// ParseLevel accepts "AA" or "AAA", case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AA":
		return LevelAA, nil
	case "AAA":
		return LevelAAA, nil
	}
	return LevelFail, fmt.Errorf("unknown conformance level %q (want AA or AAA)", s)
}

// Compliance is the classification of one ratio. Label names the element it
// was measured on and is empty for bare color pairs.
type Compliance struct {
	Ratio      float64 `json:"ratio"`
	PassesAA   bool    `json:"passesAA"`
	PassesAAA  bool    `json:"passesAAA"`
	Large      bool    `json:"isLarge"`
	Level      Level   `json:"level"`
	Label      string  `json:"label,omitempty"`
	Foreground Color   `json:"foreground"`
	Background Color   `json:"background"`
}

// Meets reports whether the result reaches at least level l.
func (c Compliance) Meets(l Level) bool {
	return c.Level >= l
}

// Classify checks ratio against the AA and AAA thresholds for the text size.
func Classify(ratio float64, large bool) Compliance {
	minAA, minAAA := MinAANormal, MinAAANormal
	if large {
		minAA, minAAA = MinAALarge, MinAAALarge
	}

	c := Compliance{
		Ratio:     ratio,
		PassesAA:  ratio >= minAA,
		PassesAAA: ratio >= minAAA,
		Large:     large,
	}
	switch {
	case c.PassesAAA:
		c.Level = LevelAAA
	case c.PassesAA:
		c.Level = LevelAA
	}
	return c
}

// Check classifies a bare foreground/background pair.
func Check(fg, bg Color, size TextSize) Compliance {
	c := Classify(Ratio(fg, bg), size == Large)
	c.Foreground = fg.clamped()
	c.Background = bg.clamped()
	return c
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	if strings.EqualFold(string(b), "fail") {
		*l = LevelFail
		return nil
	}
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
