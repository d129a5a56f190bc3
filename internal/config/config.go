// Package config holds the driver settings: where the engine lives, how long
// it may run, and how traces are rendered.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatANSI = "ansi"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvEngine  = "SHTEPPER_ENGINE"
	EnvTimeout = "SHTEPPER_TIMEOUT"
	EnvDebug   = "SHTEPPER_DEBUG"
	EnvNoColor = "NO_COLOR"
)

type Config struct {
	Engine Engine `yaml:"engine"`
	Render Render `yaml:"render"`
	Debug  bool   `yaml:"debug"`
}

// Engine describes the external stepping shell.
type Engine struct {
	Executable string        `yaml:"executable"`
	Timeout    time.Duration `yaml:"timeout"`
	// Env and Users are written one "key=value" line each to the files
	// passed as -env-file and -user-file.
	Env   map[string]string `yaml:"env"`
	Users map[string]string `yaml:"users"`
	// Workdir is the parent of each run's temporary directory. Empty means
	// the system default.
	Workdir string `yaml:"workdir"`
	// Keep leaves the run directory in place for inspection.
	Keep bool `yaml:"keep"`
}

type Render struct {
	Format string `yaml:"format"`
	Color  string `yaml:"color"`
}

func New() *Config {
	return &Config{
		Engine: Engine{
			Executable: "shtepper",
			Timeout:    30 * time.Second,
			Env:        map[string]string{},
			Users:      map[string]string{},
		},
		Render: Render{
			Format: FormatText,
			Color:  ColorAuto,
		},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error
// when optional is set.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment through lookup, which is
// normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvEngine); ok && v != "" {
		c.Engine.Executable = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Engine.Timeout = d
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = debug
	}
	if v, ok := lookup(EnvNoColor); ok && v != "" {
		c.Render.Color = ColorNever
	}
	return nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	switch c.Render.Format {
	case FormatText, FormatHTML, FormatANSI:
	default:
		errs = append(errs, fmt.Errorf("render.format: unknown format %q (want text, html or ansi)", c.Render.Format))
	}
	switch c.Render.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("render.color: unknown mode %q (want auto, always or never)", c.Render.Color))
	}
	if c.Engine.Executable == "" {
		errs = append(errs, errors.New("engine.executable: must not be empty"))
	}
	if c.Engine.Timeout < 0 {
		errs = append(errs, fmt.Errorf("engine.timeout: must not be negative, got %s", c.Engine.Timeout))
	}
	return errors.Join(errs...)
}
