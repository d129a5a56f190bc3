package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "shtepper", cfg.Engine.Executable)
	assert.Equal(t, 30*time.Second, cfg.Engine.Timeout)
	assert.Equal(t, FormatText, cfg.Render.Format)
	assert.Equal(t, ColorAuto, cfg.Render.Color)
	assert.False(t, cfg.Debug)
	require.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
engine:
  executable: /opt/smoosh/shtepper
  timeout: 5s
  env:
    HOME: /home/user
  users:
    user: /home/user
render:
  format: html
`))
	require.NoError(t, err)

	assert.Equal(t, "/opt/smoosh/shtepper", cfg.Engine.Executable)
	assert.Equal(t, 5*time.Second, cfg.Engine.Timeout)
	assert.Equal(t, map[string]string{"HOME": "/home/user"}, cfg.Engine.Env)
	assert.Equal(t, map[string]string{"user": "/home/user"}, cfg.Engine.Users)
	assert.Equal(t, FormatHTML, cfg.Render.Format)
	assert.Equal(t, ColorAuto, cfg.Render.Color, "unset keys keep their defaults")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("engine:\n  exectuable: sh\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exectuable")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shtepper.yml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\n"), 0o644))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)

	missing := filepath.Join(dir, "missing.yml")
	cfg, err = Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)

	_, err = Load(missing, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	err := cfg.ApplyEnv(env(map[string]string{
		EnvEngine:  "/usr/local/bin/shtepper",
		EnvTimeout: "2m",
		EnvDebug:   "1",
		EnvNoColor: "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/shtepper", cfg.Engine.Executable)
	assert.Equal(t, 2*time.Minute, cfg.Engine.Timeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ColorNever, cfg.Render.Color)
}

func TestApplyEnvIgnoresEmpty(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{EnvEngine: "", EnvNoColor: ""})))
	assert.Equal(t, New(), cfg)
}

func TestApplyEnvErrors(t *testing.T) {
	assert.ErrorContains(t, New().ApplyEnv(env(map[string]string{EnvTimeout: "soon"})), EnvTimeout)
	assert.ErrorContains(t, New().ApplyEnv(env(map[string]string{EnvDebug: "maybe"})), EnvDebug)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"format", func(c *Config) { c.Render.Format = "pdf" }, `unknown format "pdf"`},
		{"color", func(c *Config) { c.Render.Color = "sometimes" }, `unknown mode "sometimes"`},
		{"timeout", func(c *Config) { c.Engine.Timeout = -time.Second }, "must not be negative"},
		{"executable", func(c *Config) { c.Engine.Executable = "" }, "engine.executable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
