package contrast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrColorParse is matched by every *ColorParseError.
var ErrColorParse = errors.New("unrecognized color")

// ColorParseError reports a color string that is not rgb(), rgba(), #rgb or #rrggbb.
type ColorParseError struct {
	Input  string
	Reason string
}

func (e *ColorParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unrecognized color %q", e.Input)
	}
	return fmt.Sprintf("unrecognized color %q: %s", e.Input, e.Reason)
}

func (e *ColorParseError) Is(target error) bool {
	return target == ErrColorParse
}

// Color is an opaque sRGB color. Channels outside [0,255] are clamped
// wherever the color is measured or formatted.
type Color struct {
	R, G, B int
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}

	// DefaultBackground is used when no ancestor paints a background.
	DefaultBackground = White
)

// RGB returns a Color from raw channel values.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b}
}

func (c Color) clamped() Color {
	return Color{clampChannel(c.R), clampChannel(c.G), clampChannel(c.B)}
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	c = c.clamped()
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	c = c.clamped()
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Colorful converts the color to a go-colorful value for rendering or blending.
func (c Color) Colorful() colorful.Color {
	c = c.clamped()
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// FromColorful converts a go-colorful value, rounding each channel.
func FromColorful(cc colorful.Color) Color {
	r, g, b := cc.Clamped().RGB255()
	return Color{int(r), int(g), int(b)}
}

// ParseColor parses rgb(r, g, b), rgba(r, g, b, a), #rgb or #rrggbb.
// Alpha is accepted but ignored; use ParseCSSColor to detect transparency.
func ParseColor(s string) (Color, error) {
	c, _, err := parse(s)
	return c, err
}

// ParseCSSColor is ParseColor plus the transparent outcome: "transparent",
// an empty value and rgba() with zero alpha report ok=false without error.
func ParseCSSColor(s string) (c Color, ok bool, err error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "transparent" {
		return Color{}, false, nil
	}
	c, alpha, err := parse(s)
	if err != nil {
		return Color{}, false, err
	}
	if alpha <= 0 {
		return Color{}, false, nil
	}
	return c, true, nil
}

func parse(s string) (Color, float64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(v, "#"):
		return parseHex(s, v)
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		return parseFunctional(s, v)
	case strings.HasPrefix(v, "hsl"), strings.HasPrefix(v, "hwb("), strings.HasPrefix(v, "lab("),
		strings.HasPrefix(v, "lch("), strings.HasPrefix(v, "oklab("), strings.HasPrefix(v, "oklch("),
		strings.HasPrefix(v, "color("):
		return Color{}, 0, &ColorParseError{Input: s, Reason: "only rgb(), rgba() and hex are supported"}
	}
	return Color{}, 0, &ColorParseError{Input: s}
}

func parseHex(raw, v string) (Color, float64, error) {
	if len(v) != 4 && len(v) != 7 {
		return Color{}, 0, &ColorParseError{Input: raw, Reason: "hex colors need 3 or 6 digits"}
	}
	// colorful.Hex scans with Sscanf, which would skip embedded spaces
	for _, r := range v[1:] {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return Color{}, 0, &ColorParseError{Input: raw, Reason: "invalid hex digits"}
		}
	}
	cc, err := colorful.Hex(v)
	if err != nil {
		return Color{}, 0, &ColorParseError{Input: raw, Reason: "invalid hex digits"}
	}
	return FromColorful(cc), 1, nil
}

func parseFunctional(raw, v string) (Color, float64, error) {
	open := strings.IndexByte(v, '(')
	if !strings.HasSuffix(v, ")") {
		return Color{}, 0, &ColorParseError{Input: raw, Reason: "missing closing parenthesis"}
	}
	name := v[:open]
	inner := strings.TrimSpace(v[open+1 : len(v)-1])
	if !strings.Contains(inner, ",") && strings.ContainsAny(inner, " /") {
		return Color{}, 0, &ColorParseError{Input: raw, Reason: "space-separated " + name + "() is not supported, use commas"}
	}
	args := strings.Split(inner, ",")
	want := 3
	if name == "rgba" {
		want = 4
	}
	if len(args) != want {
		return Color{}, 0, &ColorParseError{
			Input:  raw,
			Reason: fmt.Sprintf("%s() takes %d arguments, got %d", name, want, len(args)),
		}
	}

	var ch [3]int
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(args[i]))
		if err != nil {
			return Color{}, 0, &ColorParseError{Input: raw, Reason: fmt.Sprintf("channel %d is not an integer", i+1)}
		}
		ch[i] = clampChannel(n)
	}

	alpha := 1.0
	if want == 4 {
		a, err := parseAlpha(strings.TrimSpace(args[3]))
		if err != nil {
			return Color{}, 0, &ColorParseError{Input: raw, Reason: "invalid alpha"}
		}
		alpha = a
	}
	return Color{ch[0], ch[1], ch[2]}, alpha, nil
}

func parseAlpha(s string) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, err
		}
		return f / 100, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
