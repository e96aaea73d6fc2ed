package styledom

import (
	"math"
	"testing"
)

func TestParseFontSize(t *testing.T) {
	tests := []struct {
		in     string
		parent float64
		root   float64
		want   float64
		wantOK bool
	}{
		{"18px", 16, 16, 18, true},
		{"1.5rem", 10, 16, 24, true},
		{"1.6rem", 24, 10, 16, true},
		{"2em", 12, 10, 24, true},
		{"150%", 16, 16, 24, true},
		{"62.5%", 16, 16, 10, true},
		{"12pt", 16, 16, 16, true},
		{"large", 10, 16, 18, true},
		{"x-large", 10, 16, 24, true},
		{"smaller", 24, 16, 20, true},
		{" 20PX ", 16, 16, 20, true},
		{"calc(1rem + 2px)", 16, 16, 0, false},
		{"clamp(1rem, 2vw, 2rem)", 16, 16, 0, false},
		{"-2px", 16, 16, 0, false},
		{"big", 16, 16, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseFontSize(tt.in, tt.parent, tt.root)
			if ok != tt.wantOK {
				t.Fatalf("parseFontSize(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("parseFontSize(%q, %v, %v) = %v, want %v", tt.in, tt.parent, tt.root, got, tt.want)
			}
		})
	}
}

func TestParseFontWeight(t *testing.T) {
	tests := []struct {
		in     string
		parent bool
		want   bool
	}{
		{"bold", false, true},
		{"bolder", false, true},
		{"700", false, true},
		{"600", false, true},
		{"500", true, false},
		{"normal", true, false},
		{"lighter", true, false},
		{"inherit", true, true},
		{"var-ish", false, false},
	}
	for _, tt := range tests {
		if got := parseFontWeight(tt.in, tt.parent); got != tt.want {
			t.Errorf("parseFontWeight(%q, %v) = %v, want %v", tt.in, tt.parent, got, tt.want)
		}
	}
}

func TestBackgroundColorFromShorthand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hex", "#1a1b26", "#1a1b26"},
		{"hex with image", "url(bg.png) no-repeat #fff", "#fff"},
		{"rgba", "rgba(255, 255, 255, 0.1) padding-box", "rgba(255, 255, 255, 0.1)"},
		{"gradient only", "linear-gradient(135deg, #667eea 0%, #764ba2 100%)", ""},
		{"gradient then color", "linear-gradient(to right, rgba(0,0,0,.5), rgb(1,2,3)) , #222222", "#222222"},
		{"named", "white", "#ffffff"},
		{"extended named", "url(tile.png) repeat-x darkslategray", "#2f4f4f"},
		{"hsl kept for the parser", "hsl(10, 50%, 50%) no-repeat", "hsl(10, 50%, 50%)"},
		{"transparent", "transparent none", "transparent"},
		{"none", "none", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := backgroundColorFromShorthand(tt.in); got != tt.want {
				t.Errorf("backgroundColorFromShorthand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveVars(t *testing.T) {
	vars := map[string]string{
		"--brand":   "#667eea",
		"--text":    "var(--brand)",
		"--empty":   "",
		"--loop":    "var(--loop)",
		"--surface": "rgba(255, 255, 255, 0.8)",
	}
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"#000", "#000", true},
		{"var(--brand)", "#667eea", true},
		{"var(--text)", "#667eea", true},
		{"var(--missing, #fff)", "#fff", true},
		{"var(--missing, var(--brand))", "#667eea", true},
		{"var(--empty, black)", "black", true},
		{"1px solid var(--brand)", "1px solid #667eea", true},
		{"var(--surface)", "rgba(255, 255, 255, 0.8)", true},
		{"var(--missing)", "", false},
		{"var(--loop)", "", false},
		{"var(--brand", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := resolveVars(tt.in, vars, 0)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("resolveVars(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMediaApplies(t *testing.T) {
	tests := []struct {
		prelude string
		scheme  string
		want    bool
	}{
		{"(prefers-color-scheme: dark)", "dark", true},
		{"(prefers-color-scheme: dark)", "", false},
		{"(prefers-color-scheme: light)", "", true},
		{"screen", "", true},
		{"print", "", false},
		{"(max-width: 768px)", "", false},
	}
	for _, tt := range tests {
		if got := mediaApplies(tt.prelude, Options{ColorScheme: tt.scheme}); got != tt.want {
			t.Errorf("mediaApplies(%q, %q) = %v, want %v", tt.prelude, tt.scheme, got, tt.want)
		}
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"LightBlue", "#add8e6"},
		{" darkslategray ", "#2f4f4f"},
		{"rebeccapurple", "#663399"},
		{"navy", "#000080"},
		{"#ABCDEF", "#abcdef"},
		{"transparent", "transparent"},
		{"notacolor", "notacolor"},
	}
	for _, tt := range tests {
		if got := normalizeColor(tt.in); got != tt.want {
			t.Errorf("normalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
