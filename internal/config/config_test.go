package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "starmatch.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100*time.Millisecond, cfg.RefreshInterval())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.Equal(t, DefaultTheme(), *cfg.UI.Theme)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log {
  level = "debug"
}

ui {
  refresh_ms = 250
  theme {
    candidate = "#0000FF"
  }
}

game {
  seed = 42
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "starmatch.log", cfg.Log.File, "unset values fall back to defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.RefreshInterval())
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "#0000FF", cfg.UI.Theme.Candidate)
	assert.Equal(t, DefaultTheme().Used, cfg.UI.Theme.Used)
}

func TestLoadPartialFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `game { seed = 9 }`))
	require.NoError(t, err)

	assert.Equal(t, int64(9), cfg.Game.Seed)
	assert.Equal(t, DefaultTheme(), *cfg.UI.Theme)
	assert.Equal(t, 100, cfg.UI.RefreshMs)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("STARMATCH_LOG_LEVEL", "warn")
	t.Setenv("STARMATCH_SEED", "1234")
	t.Setenv("STARMATCH_REFRESH_MS", "50")

	cfg, err := Load(writeConfig(t, `log { level = "debug" }`))
	require.NoError(t, err)

	assert.Equal(t, log.WarnLevel, cfg.LogLevel())
	assert.Equal(t, int64(1234), cfg.Game.Seed)
	assert.Equal(t, 50*time.Millisecond, cfg.RefreshInterval())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax error", `log { level = `},
		{"unknown attribute", `log { colour = "red" }`},
		{"bad level", `log { level = "chatty" }`},
		{"bad refresh", `ui { refresh_ms = -5 }`},
		{"bad colour", "ui {\n  theme {\n    wrong = \"red\"\n  }\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadBadEnvironment(t *testing.T) {
	t.Setenv("STARMATCH_SEED", "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}
