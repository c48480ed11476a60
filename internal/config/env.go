package config

import "github.com/ilyakaznacheev/cleanenv"

// Env carries the deployment-level overrides; everything else lives in
// the YAML file.
type Env struct {
	Addr     string `env:"DAYTRACK_ADDR"`
	DataDir  string `env:"DAYTRACK_DATA_DIR"`
	Backend  string `env:"DAYTRACK_STORAGE_BACKEND"`
	LogLevel string `env:"DAYTRACK_LOG_LEVEL" env-default:"info"`
}

func ReadEnv() (Env, error) {
	var e Env
	if err := cleanenv.ReadEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// ApplyEnv layers env overrides on top of the file config.
func (c *Config) ApplyEnv(e Env) {
	if e.Addr != "" {
		c.Server.Addr = e.Addr
	}
	if e.DataDir != "" {
		c.Storage.DataDir = e.DataDir
	}
	if e.Backend != "" {
		c.Storage.Backend = e.Backend
	}
}
