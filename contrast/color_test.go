package contrast

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Color
	}{
		{"rgb", "rgb(102, 126, 234)", Color{102, 126, 234}},
		{"rgb no spaces", "rgb(0,0,0)", Color{0, 0, 0}},
		{"rgb upper", "RGB(255, 255, 255)", Color{255, 255, 255}},
		{"rgb clamps high", "rgb(300, 12, 256)", Color{255, 12, 255}},
		{"rgb clamps low", "rgb(-4, 0, 9)", Color{0, 0, 9}},
		{"rgba ignores alpha", "rgba(10, 20, 30, 0.5)", Color{10, 20, 30}},
		{"hex6", "#667eea", Color{102, 126, 234}},
		{"hex6 upper", "#667EEA", Color{102, 126, 234}},
		{"hex3", "#fff", Color{255, 255, 255}},
		{"hex3 mixed", "#f80", Color{255, 136, 0}},
		{"padded", "  #000000 ", Color{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColor_Errors(t *testing.T) {
	inputs := []string{
		"",
		"red",
		"transparent",
		"#ff",
		"#ffff",
		"#gggggg",
		"#1 2345",
		"#f f",
		"rgb(1, 2)",
		"rgb(1, 2, 3",
		"rgb(1.5, 2, 3)",
		"rgba(1, 2, 3)",
		"rgba(1, 2, 3, x)",
		"hsl(120, 50%, 50%)",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseColor(in)
			if err == nil {
				t.Fatalf("ParseColor(%q) expected error", in)
			}
			if !errors.Is(err, ErrColorParse) {
				t.Errorf("ParseColor(%q) error %v does not match ErrColorParse", in, err)
			}
			var perr *ColorParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseColor(%q) error is %T, want *ColorParseError", in, err)
			}
			if perr.Input != in {
				t.Errorf("Input = %q, want %q", perr.Input, in)
			}
		})
	}
}

func TestParseCSSColor(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   Color
		wantOK bool
	}{
		{"empty", "", Color{}, false},
		{"transparent", "transparent", Color{}, false},
		{"transparent upper", " Transparent ", Color{}, false},
		{"zero alpha", "rgba(0, 0, 0, 0)", Color{}, false},
		{"zero percent alpha", "rgba(0, 0, 0, 0%)", Color{}, false},
		{"translucent is opaque", "rgba(255, 255, 255, 0.1)", Color{255, 255, 255}, true},
		{"hex", "#1a1b26", Color{26, 27, 38}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseCSSColor(tt.in)
			if err != nil {
				t.Fatalf("ParseCSSColor(%q) error: %v", tt.in, err)
			}
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseCSSColor(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if _, _, err := ParseCSSColor("not-a-color"); !errors.Is(err, ErrColorParse) {
		t.Errorf("expected ErrColorParse, got %v", err)
	}
}

func TestParseColor_UnsupportedSyntax(t *testing.T) {
	tests := []struct {
		in     string
		reason string
	}{
		{"rgb(0 0 0)", "space-separated"},
		{"rgb(0 0 0 / 50%)", "space-separated"},
		{"rgba(10 20 30 / 0.5)", "space-separated"},
		{"hsl(120, 50%, 50%)", "only rgb(), rgba() and hex"},
		{"hsla(120 50% 50% / 1)", "only rgb(), rgba() and hex"},
		{"oklch(0.7 0.1 200)", "only rgb(), rgba() and hex"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseColor(tt.in)
			if !errors.Is(err, ErrColorParse) {
				t.Fatalf("ParseColor(%q) error = %v, want ErrColorParse", tt.in, err)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("error %q does not mention %q", err, tt.reason)
			}
		})
	}
}

func TestColorFormatting(t *testing.T) {
	c := Color{102, 126, 234}
	if got := c.Hex(); got != "#667eea" {
		t.Errorf("Hex() = %q, want #667eea", got)
	}
	if got := c.String(); got != "rgb(102, 126, 234)" {
		t.Errorf("String() = %q", got)
	}
	if got := (Color{-1, 300, 5}).Hex(); got != "#00ff05" {
		t.Errorf("clamped Hex() = %q, want #00ff05", got)
	}
	if got := FromColorful(c.Colorful()); got != c {
		t.Errorf("colorful round trip = %v, want %v", got, c)
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(struct{ C Color }{Color{255, 0, 17}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"C":"#ff0011"}` {
		t.Errorf("json = %s", data)
	}

	var back struct{ C Color }
	if err := json.Unmarshal([]byte(`{"C":"rgb(1, 2, 3)"}`), &back); err != nil {
		t.Fatal(err)
	}
	if back.C != (Color{1, 2, 3}) {
		t.Errorf("unmarshalled %v", back.C)
	}
}
