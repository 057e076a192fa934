package config

import (
	"fmt"
	"log/slog"
	"slices"
)

// Validate checks that every value is one the CLI understands.
func (c *Config) Validate() error {
	if !slices.Contains([]string{OutputAuto, OutputText, OutputJSON, OutputYAML}, c.Output) {
		return fmt.Errorf("invalid output %q: must be one of auto, text, json, yaml", c.Output)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}
	return nil
}

// Level returns the configured log level. Verbose forces debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	return level, nil
}
