package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables read as configuration.
// JUSTDB_MAX_DEPTH sets max_depth.
const EnvPrefix = "JUSTDB_"

// searchDepth bounds the upward search for a config file.
const searchDepth = 10

type (
	configKey struct{}
	loggerKey struct{}
)

var (
	k              = koanf.New(".")
	configFileUsed string
)

// source is one configuration layer. Later sources override earlier ones.
type source struct {
	name string
	load func(*koanf.Koanf) error
}

// ResetConfig forgets the last loaded configuration. Used by tests.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// LoadConfig merges defaults, the config file, JUSTDB_ environment variables
// and the flags that were set on the command line, in that order.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = locateConfigFile(cfgFile)

	for _, src := range sources(configFileUsed, flags) {
		if err := src.load(k); err != nil {
			return nil, fmt.Errorf("loading %s: %w", src.name, err)
		}
	}

	cfg := new(Config)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sources(path string, flags *pflag.FlagSet) []source {
	srcs := []source{{
		name: "defaults",
		load: func(ko *koanf.Koanf) error {
			return ko.Load(confmap.Provider(defaults(), "."), nil)
		},
	}}
	if path != "" {
		srcs = append(srcs, source{
			name: "config file " + path,
			load: func(ko *koanf.Koanf) error {
				return ko.Load(file.Provider(path), yaml.Parser())
			},
		})
	}
	srcs = append(srcs, source{
		name: "environment",
		load: func(ko *koanf.Koanf) error {
			return ko.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		},
	})
	if flags != nil {
		srcs = append(srcs, source{
			name: "flags",
			load: func(ko *koanf.Koanf) error {
				return ko.Load(posflag.ProviderWithFlag(flags, ".", ko, func(f *pflag.Flag) (string, any) {
					if !f.Changed {
						return "", nil
					}
					return flagKey(f.Name), posflag.FlagVal(flags, f)
				}), nil)
			},
		})
	}
	return srcs
}

func envKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
}

// flagKey maps --max-depth to max_depth.
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// locateConfigFile returns explicit if set, otherwise the nearest
// justdb.yaml or justdb.yml in the working directory or its parents.
func locateConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for range searchDepth {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// GetConfigFileUsed returns the config file read by the last LoadConfig.
func GetConfigFileUsed() string {
	return configFileUsed
}

// ConfigKey is the context key of the loaded *Config.
func ConfigKey() any {
	return configKey{}
}

// GetConfig returns the config stored in ctx, or the defaults.
func GetConfig(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return Default()
}

// LoggerKey is the context key of the command logger.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger returns the logger stored in ctx, or one that discards.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}
