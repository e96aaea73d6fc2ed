package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"

	"github.com/zam-dot/contrastscope/contrast"
	"github.com/zam-dot/contrastscope/styledom"
	"github.com/zam-dot/contrastscope/telemetry"
)

// envPrefix namespaces environment overrides, e.g. CONTRASTSCOPE_FORMAT.
const envPrefix = "CONTRASTSCOPE"

// Config holds everything the commands can be tuned with. Values are
// layered: defaults, then the JSON config file, then the environment,
// then flags.
type Config struct {
	UserAgent      string `json:"userAgent" envconfig:"USER_AGENT"`
	TimeoutSeconds int    `json:"timeoutSeconds" envconfig:"TIMEOUT"`

	Format string `json:"format" envconfig:"FORMAT"` // markdown, table or json
	Style  string `json:"style" envconfig:"STYLE"`   // glamour style: auto, dark, light, notty
	Width  int    `json:"width" envconfig:"WIDTH"`

	MinLevel    string `json:"minLevel" envconfig:"MIN_LEVEL"`
	Selector    string `json:"selector" envconfig:"SELECTOR"`
	ThemeClass  string `json:"themeClass" envconfig:"THEME_CLASS"`
	ThemeAttr   string `json:"themeAttr" envconfig:"THEME_ATTR"`
	ColorScheme string `json:"colorScheme" envconfig:"COLOR_SCHEME"`

	Telemetry TelemetryConfig `json:"telemetry" envconfig:"OTEL"`
}

// TelemetryConfig is read from CONTRASTSCOPE_OTEL_*.
type TelemetryConfig struct {
	Enabled  bool   `json:"enabled" envconfig:"ENABLED"`
	Endpoint string `json:"endpoint" envconfig:"ENDPOINT"`
	Insecure bool   `json:"insecure" envconfig:"INSECURE"`
}

func DefaultConfig() Config {
	return Config{
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		TimeoutSeconds: 30,
		Format:         "markdown",
		Style:          "auto",
		Width:          100,
		MinLevel:       "",
		Selector:       styledom.DefaultTextSelector,
	}
}

func loadConfigFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return DefaultConfig(), err
	}

	// Start from defaults so a partial file only overrides what it names
	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", filename, err)
	}
	return config, nil
}

func applyEnvOverrides(config Config) (Config, error) {
	if err := envconfig.Process(envPrefix, &config); err != nil {
		return config, fmt.Errorf("reading environment: %w", err)
	}
	return config, nil
}

// validate rejects values the commands cannot act on.
func (c Config) validate() error {
	switch c.Format {
	case "markdown", "table", "json":
	default:
		return fmt.Errorf("unknown format %q (want markdown, table or json)", c.Format)
	}
	if c.MinLevel != "" {
		if _, err := contrast.ParseLevel(c.MinLevel); err != nil {
			return err
		}
	}
	switch c.ColorScheme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("unknown color scheme %q (want light or dark)", c.ColorScheme)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

func (c Config) documentOptions() styledom.Options {
	return styledom.Options{
		ThemeClass:  c.ThemeClass,
		ThemeAttr:   c.ThemeAttr,
		ColorScheme: c.ColorScheme,
	}
}

func (c Config) telemetryConfig() telemetry.Config {
	return telemetry.Config{
		Enabled:  c.Telemetry.Enabled,
		Endpoint: c.Telemetry.Endpoint,
		Insecure: c.Telemetry.Insecure,
	}
}
