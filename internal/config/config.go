package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string  `yaml:"version" json:"version"`
	Server  Server  `yaml:"server" json:"server"`
	Storage Storage `yaml:"storage" json:"storage"`
	Stats   Stats   `yaml:"stats" json:"stats"`
	History History `yaml:"history" json:"history"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Storage struct {
	// Backend is "file" or "sqlite".
	Backend string `yaml:"backend" json:"backend"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type Stats struct {
	WindowDays int `yaml:"window_days" json:"window_days"`
}

type History struct {
	DisplayLimit int `yaml:"display_limit" json:"display_limit"`
}

func Default() *Config {
	return &Config{
		Version: "1",
		Server:  Server{Addr: ":8422"},
		Storage: Storage{Backend: "file", DataDir: "data"},
		Stats:   Stats{WindowDays: 14},
		History: History{DisplayLimit: 20},
	}
}

// Load reads a YAML config file. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = d.Storage.DataDir
	}
	if c.Stats.WindowDays <= 0 {
		c.Stats.WindowDays = d.Stats.WindowDays
	}
	if c.History.DisplayLimit <= 0 {
		c.History.DisplayLimit = d.History.DisplayLimit
	}
}
