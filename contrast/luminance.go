package contrast

import "math"

// red, green and blue weights (ITU-R BT.709)
const (
	weightR = 0.2126
	weightG = 0.7152
	weightB = 0.0722
)

// ratioPrecision keeps black on white at exactly 21 and keeps
// threshold comparisons stable across platforms.
const ratioPrecision = 1e9

func linearize(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance returns the WCAG relative luminance of c, in [0,1].
func Luminance(c Color) float64 {
	c = c.clamped()
	r := linearize(float64(c.R) / 255.0)
	g := linearize(float64(c.G) / 255.0)
	b := linearize(float64(c.B) / 255.0)
	l := weightR*r + weightG*g + weightB*b
	return math.Min(1, math.Max(0, l))
}

// Ratio returns the contrast ratio between a and b. It is symmetric and lies in [1, 21].
func Ratio(a, b Color) float64 {
	return RatioFromLuminance(Luminance(a), Luminance(b))
}

// RatioFromLuminance applies the WCAG ratio formula to two luminances.
func RatioFromLuminance(l1, l2 float64) float64 {
	lighter := math.Max(l1, l2)
	darker := math.Min(l1, l2)
	r := (lighter + 0.05) / (darker + 0.05)
	return math.Round(r*ratioPrecision) / ratioPrecision
}

// SuggestText returns black or white, whichever contrasts more with bg.
func SuggestText(bg Color) Color {
	if Ratio(Black, bg) >= Ratio(White, bg) {
		return Black
	}
	return White
}
