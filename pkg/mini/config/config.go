// Package config loads the interpreter's optional YAML configuration file:
// where the prelude lives, a validated logging section, and whether the
// prelude should be watched and reloaded on change.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is mini's full runtime configuration. Every field has a sane
// default, so running with no config file at all is the common case.
type Config struct {
	BaseDir string `yaml:"-"` // directory containing the config file, for resolving relative paths

	Prelude PreludeConfig `yaml:"prelude"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// PreludeConfig controls where predefineds.mini is found.
type PreludeConfig struct {
	Path string `yaml:"path"` // default: predefineds.mini beside the executable
}

// LoggingConfig holds the logging section of mini.yaml. Load validates
// Level and Format; nothing else in the interpreter reads these fields, so
// they do not change where diagnostics are written.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
	Output string `yaml:"output"` // stderr, stdout, or a file path
}

// WatchConfig controls hot-reloading of the prelude during REPL sessions.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Defaults returns a Config with the values used when no config file is
// present or a field is left unset.
func Defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads configuration from path, applying ${VAR} environment
// interpolation, and returns Defaults() unchanged if path is empty and no
// default location has a file.
func Load(path string, getenv func(string) string) (*Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		if path == "" {
			return Defaults(), nil
		}
		return nil, err
	}

	absPath, err := filepath.Abs(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.BaseDir = filepath.Dir(absPath)

	if cfg.Prelude.Path != "" && !filepath.IsAbs(cfg.Prelude.Path) {
		cfg.Prelude.Path = filepath.Join(cfg.BaseDir, cfg.Prelude.Path)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}
	if _, err := os.Stat("mini.yaml"); err == nil {
		return "mini.yaml", nil
	}
	return "", fmt.Errorf("no config file found")
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv expands ${VAR} and ${VAR:-default} references in a config
// file's raw bytes before YAML parsing, mini.yaml's only three sections
// never need anything fancier than this one pass.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	locs := envPattern.FindAllSubmatchIndex(data, -1)
	if locs == nil {
		return data
	}
	out := make([]byte, 0, len(data))
	pos := 0
	for _, loc := range locs {
		out = append(out, data[pos:loc[0]]...)
		value := getenv(string(data[loc[2]:loc[3]]))
		if value == "" && loc[4] >= 0 {
			value = string(data[loc[4]:loc[5]])
		}
		out = append(out, value...)
		pos = loc[1]
	}
	return append(out, data[pos:]...)
}

func validate(cfg *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", cfg.Logging.Format)
	}
	return nil
}
