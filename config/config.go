package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"portprowler/services"
)

// Config is the optional YAML configuration file. Every field has a default
// and command-line flags override whatever the file sets.
type Config struct {
	Workers      int               `yaml:"workers"`
	Timeout      time.Duration     `yaml:"timeout"`
	ServicesFile string            `yaml:"services_file"`
	Services     map[uint16]string `yaml:"services"`
	Output       string            `yaml:"output"`
	Verbose      bool              `yaml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Workers:      100,
		Timeout:      time.Second,
		ServicesFile: services.DefaultFile,
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the scanner cannot run with.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", c.Timeout)
	}
	for p, name := range c.Services {
		if p == 0 {
			return fmt.Errorf("services: port 0 is not scannable (%q)", name)
		}
	}
	return nil
}

// ServiceTable builds the service-name table: the built-in names, then the
// services file if it can be read, then the explicit overrides.
func (c Config) ServiceTable() (*services.Table, error) {
	tbl := services.Builtin()
	if c.ServicesFile != "" {
		names, err := services.LoadFile(c.ServicesFile)
		if err != nil && !os.IsNotExist(err) {
			return tbl, err
		}
		tbl.Merge(names)
	}
	tbl.Merge(c.Services)
	return tbl, nil
}
