// Package config loads justdb CLI configuration.
//
// Values are layered, lowest to highest priority: built-in defaults, a
// justdb.yaml (or justdb.yml) file, JUSTDB_ environment variables and
// explicitly set command-line flags.
package config

// Output modes accepted by the output key.
const (
	OutputAuto = "auto"
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Log formats accepted by the log_format key.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all CLI configuration options.
type Config struct {
	Output      string `koanf:"output"`
	MaxDepth    int    `koanf:"max_depth"`
	LogLevel    string `koanf:"log_level"`
	LogFormat   string `koanf:"log_format"`
	Verbose     bool   `koanf:"verbose"`
	HistoryFile string `koanf:"history_file"`
	Pretty      bool   `koanf:"pretty"`
}
