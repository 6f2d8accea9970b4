// Package config loads the starmatch binary's settings from an HCL file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "starmatch.hcl"

// Config represents the complete starmatch configuration
type Config struct {
	Log  LogSettings
	UI   UISettings
	Game GameSettings
}

// fileConfig mirrors Config with every block optional
type fileConfig struct {
	Log  *LogSettings  `hcl:"log,block"`
	UI   *UISettings   `hcl:"ui,block"`
	Game *GameSettings `hcl:"game,block"`
}

// LogSettings controls where and how much the binary logs
type LogSettings struct {
	Level string `hcl:"level,optional" env:"STARMATCH_LOG_LEVEL"`
	File  string `hcl:"file,optional" env:"STARMATCH_LOG_FILE"`
}

// UISettings contains terminal interface settings
type UISettings struct {
	RefreshMs int    `hcl:"refresh_ms,optional" env:"STARMATCH_REFRESH_MS"`
	Theme     *Theme `hcl:"theme,block"`
}

// Theme maps each number status to a colour
type Theme struct {
	Available string `hcl:"available,optional"`
	Used      string `hcl:"used,optional"`
	Wrong     string `hcl:"wrong,optional"`
	Candidate string `hcl:"candidate,optional"`
}

// GameSettings holds the few knobs a round has outside its fixed rules
type GameSettings struct {
	Seed int64 `hcl:"seed,optional" env:"STARMATCH_SEED"`
}

// DefaultTheme is the classic palette: light gray, light green, light coral
// and deep sky blue.
func DefaultTheme() Theme {
	return Theme{
		Available: "#D3D3D3",
		Used:      "#90EE90",
		Wrong:     "#F08080",
		Candidate: "#00BFFF",
	}
}

// Default returns the default configuration
func Default() *Config {
	theme := DefaultTheme()
	return &Config{
		Log: LogSettings{
			Level: "info",
			File:  "starmatch.log",
		},
		UI: UISettings{
			RefreshMs: 100,
			Theme:     &theme,
		},
	}
}

// Load reads filename, fills in defaults and applies environment overrides.
// A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(filename); err == nil {
		parsed, err := parseFile(filename)
		if err != nil {
			return nil, err
		}
		cfg = parsed
		cfg.applyDefaults()
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseFile(filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := &Config{}
	if fc.Log != nil {
		cfg.Log = *fc.Log
	}
	if fc.UI != nil {
		cfg.UI = *fc.UI
	}
	if fc.Game != nil {
		cfg.Game = *fc.Game
	}
	return cfg, nil
}

// applyDefaults fills in values the file left unset
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
	if c.UI.RefreshMs == 0 {
		c.UI.RefreshMs = defaults.UI.RefreshMs
	}

	if c.UI.Theme == nil {
		c.UI.Theme = defaults.UI.Theme
		return
	}
	theme := c.UI.Theme
	if theme.Available == "" {
		theme.Available = defaults.UI.Theme.Available
	}
	if theme.Used == "" {
		theme.Used = defaults.UI.Theme.Used
	}
	if theme.Wrong == "" {
		theme.Wrong = defaults.UI.Theme.Wrong
	}
	if theme.Candidate == "" {
		theme.Candidate = defaults.UI.Theme.Candidate
	}
}

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}
	if c.UI.RefreshMs <= 0 {
		return fmt.Errorf("ui: refresh_ms must be positive, got %d", c.UI.RefreshMs)
	}
	if c.UI.Theme == nil {
		return fmt.Errorf("ui: theme is required")
	}

	colours := map[string]string{
		"available": c.UI.Theme.Available,
		"used":      c.UI.Theme.Used,
		"wrong":     c.UI.Theme.Wrong,
		"candidate": c.UI.Theme.Candidate,
	}
	for name, colour := range colours {
		if !hexColour.MatchString(colour) {
			return fmt.Errorf("ui.theme: %s colour %q is not a hex colour", name, colour)
		}
	}
	return nil
}

// RefreshInterval is how often the interface redraws the clock
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.UI.RefreshMs) * time.Millisecond
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
