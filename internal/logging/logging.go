// Package logging builds the zerolog logger shared by the command and the
// pipeline stages. Diagnostics never go to stdout, which carries the result.
package logging

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	FieldComponent = "component"
	FieldRunID     = "run_id"
)

// Config contains logging configuration.
type Config struct {
	Level   string `yaml:"level" mapstructure:"level"`
	Format  string `yaml:"format" mapstructure:"format"`
	NoColor bool   `yaml:"no_color" mapstructure:"no_color"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	c.Level = strings.ToLower(c.Level)
	c.Format = strings.ToLower(c.Format)
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "disabled"}
	if !slices.Contains(validLevels, c.Level) {
		return fmt.Errorf("log.level must be one of %v (got: %s)", validLevels, c.Level)
	}
	validFormats := []string{FormatConsole, FormatJSON}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("log.format must be one of %v (got: %s)", validFormats, c.Format)
	}
	return nil
}

// New creates a logger writing to w. An unparsable level falls back to info.
// The level is set on the logger only; zerolog's global level, which gates
// every logger, is left to the program.
func New(cfg Config, w io.Writer) zerolog.Logger {
	cfg.ApplyDefaults()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if cfg.Format == FormatConsole {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    cfg.NoColor,
			TimeFormat: time.TimeOnly,
		})
	} else {
		zl = zerolog.New(w)
	}

	return zl.Level(level).With().Timestamp().Logger()
}

// Component returns a child logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(FieldComponent, name).Logger()
}
