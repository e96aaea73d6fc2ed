package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zam-dot/contrastscope/contrast"
	"github.com/zam-dot/contrastscope/telemetry"
)

// cliFlags holds raw flag values. They are layered over the file and
// environment config only when set on the command line.
type cliFlags struct {
	configFile string
	format     string
	style      string
	width      int
	timeout    int
	userAgent  string
	minLevel   string

	selector    string
	themeClass  string
	themeAttr   string
	colorScheme string
	tui         bool
	out         string
	baseline    string

	large bool
	bold  bool
	size  float64
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "contrastscope",
		Short: "Check text contrast against WCAG AA and AAA",
		Long: `contrastscope measures the contrast between text and the background it
actually sits on, walking up the page to find the first opaque background.

Check a single pair of colors, or audit every text element of a page.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "JSON config file")
	pf.StringVarP(&f.format, "format", "f", "", "output format: markdown, table or json")
	pf.StringVar(&f.style, "style", "", "glamour style for markdown output (auto, dark, light, notty)")
	pf.IntVar(&f.width, "width", 0, "word wrap width for markdown output")
	pf.StringVar(&f.minLevel, "min-level", "", "exit non-zero when anything is below this level (AA or AAA)")

	rootCmd.AddCommand(newPairCmd(f))
	rootCmd.AddCommand(newAuditCmd(f))
	return rootCmd
}

// config layers defaults, the config file, the environment and flags
func (f *cliFlags) config(cmd *cobra.Command) (Config, error) {
	cfg := DefaultConfig()
	if f.configFile != "" {
		var err error
		if cfg, err = loadConfigFromFile(f.configFile); err != nil {
			return cfg, err
		}
	}

	cfg, err := applyEnvOverrides(cfg)
	if err != nil {
		return cfg, err
	}

	fs := cmd.Flags()
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("style") {
		cfg.Style = f.style
	}
	if fs.Changed("width") {
		cfg.Width = f.width
	}
	if fs.Changed("min-level") {
		cfg.MinLevel = f.minLevel
	}
	if fs.Changed("timeout") {
		cfg.TimeoutSeconds = f.timeout
	}
	if fs.Changed("user-agent") {
		cfg.UserAgent = f.userAgent
	}
	if fs.Changed("selector") {
		cfg.Selector = f.selector
	}
	if fs.Changed("theme-class") {
		cfg.ThemeClass = f.themeClass
	}
	if fs.Changed("theme-attr") {
		cfg.ThemeAttr = f.themeAttr
	}
	if fs.Changed("color-scheme") {
		cfg.ColorScheme = f.colorScheme
	}
	return cfg, cfg.validate()
}

// threshold is the level results are judged against in reports
func (c Config) threshold() contrast.Level {
	if c.MinLevel == "" {
		return contrast.LevelAA
	}
	l, err := contrast.ParseLevel(c.MinLevel)
	if err != nil {
		return contrast.LevelAA
	}
	return l
}

// ============================================================================
// PAIR
// ============================================================================

func newPairCmd(f *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair <foreground> <background>",
		Short: "Check one text/background color pair",
		Example: `  contrastscope pair '#667eea' '#ffffff'
  contrastscope pair 'rgb(153, 153, 153)' '#fff' --size 14 --bold`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			return runPair(cmd.OutOrStdout(), args[0], args[1], f, cfg)
		},
	}

	cmd.Flags().BoolVar(&f.large, "large", false, "treat the text as large")
	cmd.Flags().Float64Var(&f.size, "size", 16, "font size in px")
	cmd.Flags().BoolVar(&f.bold, "bold", false, "the text is bold")
	return cmd
}

func runPair(w io.Writer, fgArg, bgArg string, f *cliFlags, cfg Config) error {
	fg, err := contrast.ParseColor(fgArg)
	if err != nil {
		return fmt.Errorf("foreground: %w", err)
	}
	bg, err := contrast.ParseColor(bgArg)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	size := contrast.TextSizeFor(f.size, f.bold)
	if f.large {
		size = contrast.Large
	}
	c := contrast.Check(fg, bg, size)

	if cfg.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return err
		}
	} else {
		fmt.Fprint(w, renderPair(c))
	}

	if cfg.MinLevel != "" && !c.Meets(cfg.threshold()) {
		return fmt.Errorf("%.2f:1 is below %s", c.Ratio, cfg.threshold())
	}
	return nil
}

// ============================================================================
// AUDIT
// ============================================================================

func newAuditCmd(f *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <url|file|->",
		Short: "Audit every text element of a page",
		Example: `  contrastscope audit example.com
  contrastscope audit index.html --theme-class dark --min-level AA
  curl -s https://example.com | contrastscope audit - --format table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			return runAudit(cmd.Context(), cmd.OutOrStdout(), args[0], f, cfg)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.selector, "selector", "", "CSS selector for the text elements to audit")
	fl.StringVar(&f.themeClass, "theme-class", "", "class added to <html> before styles are resolved, e.g. dark")
	fl.StringVar(&f.themeAttr, "theme-attr", "", "attribute set on <html>, e.g. data-theme=dark")
	fl.StringVar(&f.colorScheme, "color-scheme", "", "prefers-color-scheme to emulate: light or dark")
	fl.IntVar(&f.timeout, "timeout", 0, "fetch timeout in seconds")
	fl.StringVar(&f.userAgent, "user-agent", "", "User-Agent header for fetches")
	fl.BoolVar(&f.tui, "tui", false, "browse the results interactively")
	fl.StringVarP(&f.out, "out", "o", "", "save the report snapshot as JSON")
	fl.StringVar(&f.baseline, "baseline", "", "snapshot to compare against for regressions")
	return cmd
}

func runAudit(ctx context.Context, w io.Writer, target string, f *cliFlags, cfg Config) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	doc, resolved, err := loadDocument(ctx, target, cfg)
	if err != nil {
		return err
	}

	report := contrast.Audit(doc.TextNodes(cfg.Selector))
	for _, failure := range report.Failures {
		log.Printf("not evaluated: %v", failure)
	}

	recorder := newRecorder(ctx, cfg.telemetryConfig())
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.Close(closeCtx); err != nil {
			log.Printf("flushing telemetry: %v", err)
		}
	}()
	if err := recorder.RecordAudit(ctx, resolved, report); err != nil {
		log.Printf("recording audit: %v", err)
	}

	snap := newSnapshot(resolved, doc.Title(), report)

	var regressions []Regression
	if f.baseline != "" {
		base, err := loadSnapshot(f.baseline)
		if err != nil {
			return fmt.Errorf("baseline: %w", err)
		}
		regressions = findRegressions(base, snap)
	}

	if f.out != "" {
		if err := saveSnapshot(f.out, snap); err != nil {
			return err
		}
		log.Printf("saved run %s to %s", snap.RunID, f.out)
	}

	threshold := cfg.threshold()
	if f.tui {
		if err := runBrowser(snap, threshold); err != nil {
			return err
		}
	} else if err := writeReport(w, snap, regressions, threshold, cfg); err != nil {
		return err
	}

	if cfg.MinLevel != "" {
		if below := belowLevel(snap.Results, threshold); len(below) > 0 {
			return fmt.Errorf("%d of %d elements below %s", len(below), len(snap.Results), threshold)
		}
	}
	return nil
}

func writeReport(w io.Writer, s Snapshot, regressions []Regression, threshold contrast.Level, cfg Config) error {
	switch cfg.Format {
	case "json":
		return renderJSON(w, s, regressions)
	case "table":
		_, err := fmt.Fprint(w, renderTable(s))
		return err
	default:
		md := renderMarkdown(s, regressions, threshold)
		styled, err := renderWithStyle(md, cfg)
		if err != nil {
			// Fall back to raw markdown, it is still readable
			log.Printf("styling report: %v", err)
			styled = md
		}
		_, err = fmt.Fprint(w, styled)
		return err
	}
}

// newRecorder builds the OTLP recorder, or a no-op one when telemetry is off
// or the exporter cannot be built
func newRecorder(ctx context.Context, cfg telemetry.Config) telemetry.Recorder {
	if !cfg.Enabled {
		return telemetry.NewNoOpRecorder()
	}
	r, err := telemetry.NewExporter(ctx, cfg)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
		return telemetry.NewNoOpRecorder()
	}
	return r
}
