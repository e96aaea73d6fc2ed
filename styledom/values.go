package styledom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/zam-dot/contrastscope/contrast"
)

const (
	defaultFontPx = 16.0
	defaultColor  = "#000000"
)

// extraNamedColors holds CSS keywords newer than the SVG table.
var extraNamedColors = map[string]string{
	"rebeccapurple": "#663399",
}

// namedColor expands a CSS color keyword to hex.
func namedColor(name string) (string, bool) {
	name = strings.ToLower(name)
	if c, ok := colornames.Map[name]; ok {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), true
	}
	hex, ok := extraNamedColors[name]
	return hex, ok
}

// normalizeColor lowers case, trims and expands named colors.
func normalizeColor(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if hex, ok := namedColor(v); ok {
		return hex
	}
	return v
}

var (
	// gradients and images paint background-image, not background-color
	imageFunc  = regexp.MustCompile(`(?i)(?:repeating-)?(?:linear|radial|conic)-gradient\((?:[^()]|\([^()]*\))*\)|url\([^)]*\)`)
	// color functions the engine rejects are kept so they fail loudly
	colorToken = regexp.MustCompile(`(?i)#(?:[0-9a-f]{6}|[0-9a-f]{3})\b|\b(?:rgba?|hsla?|hwb|lab|lch|oklab|oklch|color)\([^)]*\)|\btransparent\b`)
	wordToken  = regexp.MustCompile(`[a-zA-Z]+`)
)

// backgroundColorFromShorthand finds the color layer of a background
// shorthand. It returns "" when the shorthand sets no color.
func backgroundColorFromShorthand(v string) string {
	rest := imageFunc.ReplaceAllString(v, " ")
	if m := colorToken.FindString(rest); m != "" {
		return m
	}
	for _, w := range wordToken.FindAllString(rest, -1) {
		if hex, ok := namedColor(w); ok {
			return hex
		}
	}
	return ""
}

var fontSizeKeywords = map[string]float64{
	"xx-small":  9,
	"x-small":   10,
	"small":     13,
	"medium":    16,
	"large":     18,
	"x-large":   24,
	"xx-large":  32,
	"xxx-large": 48,
}

// parseFontSize resolves a font-size value against the parent's size, and
// rem against the root element's size. ok is false for values it cannot
// resolve, such as calc() or clamp().
func parseFontSize(v string, parentPx, rootPx float64) (float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if px, ok := fontSizeKeywords[v]; ok {
		return px, true
	}
	switch v {
	case "smaller":
		return parentPx / 1.2, true
	case "larger":
		return parentPx * 1.2, true
	}

	units := []struct {
		suffix string
		scale  func(float64) float64
	}{
		{"rem", func(n float64) float64 { return n * rootPx }},
		{"em", func(n float64) float64 { return n * parentPx }},
		{"px", func(n float64) float64 { return n }},
		{"pt", func(n float64) float64 { return n * 4 / 3 }},
		{"%", func(n float64) float64 { return n / 100 * parentPx }},
	}
	for _, u := range units {
		num, found := strings.CutSuffix(v, u.suffix)
		if !found {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil || n < 0 {
			return 0, false
		}
		return u.scale(n), true
	}
	return 0, false
}

// parseFontWeight reports whether a font-weight renders bold.
func parseFontWeight(v string, parentBold bool) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "bold", "bolder":
		return true
	case "normal", "lighter":
		return false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n >= 600
	}
	return parentBold
}

func isInheritKeyword(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "inherit", "unset":
		return true
	}
	return false
}

// parseBackground turns a computed background-color value into the
// StyledNode contract.
func parseBackground(v string) (contrast.Color, bool, error) {
	v = normalizeColor(v)
	switch v {
	case "", "initial", "none":
		return contrast.Color{}, false, nil
	}
	return contrast.ParseCSSColor(v)
}
