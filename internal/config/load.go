// internal/config/load.go
package config

import (
	"os"

	"github.com/ansel1/merry"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file is parsed.
const (
	EnvLogLevel = "EXCITATIOND_LOG_LEVEL"
	EnvLogFile  = "EXCITATIOND_LOG_FILE"
)

// Load reads and parses a YAML config file.
// Unknown keys are rejected. It does not validate.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, merry.Prependf(err, "config: open %s", path)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, merry.Prependf(err, "config: parse %s", path)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if file := os.Getenv(EnvLogFile); file != "" {
		cfg.Logging.File = file
	}
}
