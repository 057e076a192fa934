package config

import "github.com/soveckyFonarik/just-db/pkg/parser"

// Default configuration values.
const (
	DefaultOutput    = OutputAuto
	DefaultLogLevel  = "warn"
	DefaultLogFormat = LogFormatText
	DefaultHistory   = ".justdb_history"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "justdb.yaml"
	ConfigFileNameAlt = "justdb.yml"
)

func defaults() map[string]any {
	return map[string]any{
		"output":       DefaultOutput,
		"max_depth":    parser.DefaultMaxDepth,
		"log_level":    DefaultLogLevel,
		"log_format":   DefaultLogFormat,
		"verbose":      false,
		"history_file": "",
		"pretty":       false,
	}
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Output:    DefaultOutput,
		MaxDepth:  parser.DefaultMaxDepth,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}
