package internal

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings an embedder or the golox driver can tune.
type Config struct {
	// MaxCallDepth bounds nested calls; going deeper is the runtime
	// error "Stack overflow." rather than a crash of the host.
	MaxCallDepth int    `yaml:"max_call_depth"`
	LogLevel     string `yaml:"log_level"`
	Color        bool   `yaml:"color"`
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		MaxCallDepth: 1024,
		LogLevel:     "warning",
		Color:        true,
		Prompt:       "> ",
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. An empty path or a
// missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MaxCallDepth <= 0 {
		return fmt.Errorf("max_call_depth must be positive, got %d", c.MaxCallDepth)
	}
	return nil
}
