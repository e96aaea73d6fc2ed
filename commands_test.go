package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zam-dot/contrastscope/contrast"
)

const fixturePage = `<!DOCTYPE html>
<html>
<head>
<title>Fixture</title>
<style>
body { background: #ffffff; color: #1a1b26; }
.muted { color: #999999; }
.cta { background-color: #667eea; color: #ffffff; font-weight: bold; font-size: 14px; }
.dark body { background: #1a1b26; }
</style>
</head>
<body>
<h1>Welcome</h1>
<p>Readable copy</p>
<p class="muted">Muted copy</p>
<button class="cta">Go</button>
</body>
</html>`

// runCLI executes the command tree with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, page string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPairCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantLevel contrast.Level
		wantLarge bool
	}{
		{"brand on white", []string{"#667eea", "#ffffff"}, contrast.LevelFail, false},
		{"brand on white, bold 14px", []string{"#667eea", "#ffffff", "--size", "14", "--bold"}, contrast.LevelAA, true},
		{"brand on white, large", []string{"#667eea", "#fff", "--large"}, contrast.LevelAA, true},
		{"black on white", []string{"rgb(0, 0, 0)", "#FFFFFF"}, contrast.LevelAAA, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, append([]string{"pair", "--format", "json"}, tt.args...)...)
			if err != nil {
				t.Fatalf("pair: %v", err)
			}
			var c contrast.Compliance
			if err := json.Unmarshal([]byte(out), &c); err != nil {
				t.Fatalf("decoding %q: %v", out, err)
			}
			if c.Level != tt.wantLevel || c.Large != tt.wantLarge {
				t.Errorf("pair %v = level %s large %v, want %s %v", tt.args, c.Level, c.Large, tt.wantLevel, tt.wantLarge)
			}
		})
	}
}

func TestPairCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "pair", "#12", "#fff")
	if !errors.Is(err, contrast.ErrColorParse) {
		t.Errorf("bad foreground error = %v, want ErrColorParse", err)
	}
	if err == nil || !strings.HasPrefix(err.Error(), "foreground:") {
		t.Errorf("error should name the foreground, got %v", err)
	}

	if _, err := runCLI(t, "pair", "#667eea", "#fff", "--min-level", "AA"); err == nil {
		t.Error("expected non-zero exit below AA")
	}
	if _, err := runCLI(t, "pair", "#000", "#fff", "--min-level", "AAA"); err != nil {
		t.Errorf("black on white should meet AAA: %v", err)
	}
	if _, err := runCLI(t, "pair", "#000"); err == nil {
		t.Error("expected argument count error")
	}
}

func TestPairCommand_Text(t *testing.T) {
	out, err := runCLI(t, "pair", "#999999", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"2.85:1", "#999999 on #ffffff", "Suggested text color"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAuditCommand(t *testing.T) {
	page := writeFixture(t, fixturePage)
	snapPath := filepath.Join(t.TempDir(), "snap.json")

	out, err := runCLI(t, "audit", page, "--format", "json", "--out", snapPath)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}

	var got jsonReport
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	want := contrast.Summary{Total: 4, PassingAA: 3, PassingAAA: 2}
	if got.Summary != want {
		t.Errorf("Summary = %+v, want %+v", got.Summary, want)
	}
	if got.Title != "Fixture" || got.RunID == "" {
		t.Errorf("Title = %q, RunID = %q", got.Title, got.RunID)
	}

	saved, err := loadSnapshot(snapPath)
	if err != nil {
		t.Fatalf("loadSnapshot: %v", err)
	}
	if saved.RunID != got.RunID || len(saved.Results) != 4 {
		t.Errorf("saved snapshot = %s with %d results", saved.RunID, len(saved.Results))
	}

	// Same page against its own baseline: no regressions
	out, err = runCLI(t, "audit", page, "--format", "json", "--baseline", snapPath)
	if err != nil {
		t.Fatalf("audit with baseline: %v", err)
	}
	got = jsonReport{}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Regressions) != 0 {
		t.Errorf("Regressions = %+v, want none", got.Regressions)
	}
}

func TestAuditCommand_MinLevel(t *testing.T) {
	page := writeFixture(t, fixturePage)

	_, err := runCLI(t, "audit", page, "--format", "table", "--min-level", "AA")
	if err == nil || !strings.Contains(err.Error(), "1 of 4 elements below AA") {
		t.Errorf("audit --min-level AA error = %v", err)
	}

	_, err = runCLI(t, "audit", page, "--format", "table", "--selector", "h1, button", "--min-level", "AA")
	if err != nil {
		t.Errorf("h1 and button meet AA: %v", err)
	}
}

func TestAuditCommand_Regressions(t *testing.T) {
	before := writeFixture(t, strings.Replace(fixturePage, "#999999", "#555555", 1))
	after := writeFixture(t, fixturePage)
	snapPath := filepath.Join(t.TempDir(), "before.json")

	if _, err := runCLI(t, "audit", before, "--format", "json", "--out", snapPath); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "audit", after, "--format", "json", "--baseline", snapPath)
	if err != nil {
		t.Fatal(err)
	}

	var got jsonReport
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Regressions) != 1 {
		t.Fatalf("Regressions = %+v, want one", got.Regressions)
	}
	r := got.Regressions[0]
	if !strings.HasPrefix(r.Label, "p.muted") || r.Was != contrast.LevelAAA || r.Now != contrast.LevelFail {
		t.Errorf("regression = %+v", r)
	}
}

func TestAuditCommand_ConfigLayering(t *testing.T) {
	page := writeFixture(t, fixturePage)
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(cfgPath, []byte(`{"format": "table", "selector": "h1"}`), 0644); err != nil {
		t.Fatal(err)
	}

	// The file picks the table format, the environment overrides it and a flag
	// would override both.
	t.Setenv("CONTRASTSCOPE_FORMAT", "json")
	out, err := runCLI(t, "audit", page, "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	var got jsonReport
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("environment should select json: %v\n%s", err, out)
	}
	if got.Summary.Total != 1 {
		t.Errorf("selector from config file not applied: %+v", got.Summary)
	}

	out, err = runCLI(t, "audit", page, "--config", cfgPath, "--format", "table")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ELEMENT") {
		t.Errorf("flag should select the table format:\n%s", out)
	}

	if _, err := runCLI(t, "audit", page, "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestAuditCommand_ThemeClass(t *testing.T) {
	page := writeFixture(t, fixturePage)

	out, err := runCLI(t, "audit", page, "--format", "json", "--selector", "p", "--theme-class", "dark")
	if err != nil {
		t.Fatal(err)
	}
	var got jsonReport
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	for _, c := range got.Results {
		if c.Background != contrast.RGB(0x1a, 0x1b, 0x26) {
			t.Errorf("%s background = %s, want the dark surface", c.Label, c.Background.Hex())
		}
	}
}
