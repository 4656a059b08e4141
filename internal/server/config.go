package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the daemon configuration.
type Config struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string `yaml:"listen_addr"`

	// DatasetPath points at a starmap bundle. Empty means run on the
	// built-in demo dataset.
	DatasetPath string `yaml:"dataset_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a working local configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
	}
}

// LoadConfig reads a yaml config file and applies environment overrides
// (STARMAP_ADDR, STARMAP_DATASET). An empty path yields the defaults plus
// overrides, so the daemon runs without any config file at all.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if addr := os.Getenv("STARMAP_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if ds := os.Getenv("STARMAP_DATASET"); ds != "" {
		cfg.DatasetPath = ds
	}

	if cfg.ListenAddr == "" {
		return Config{}, fmt.Errorf("listen_addr must not be empty")
	}
	return cfg, nil
}
