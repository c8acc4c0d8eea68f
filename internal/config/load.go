package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TASKER_"

// Backends lists the accepted values for Config.Backend.
var Backends = []string{"memory", "file", "redis", "postgres", "mysql", "drive"}

// Load builds a Config from, in increasing priority:
// 1. Defaults
// 2. <dir>/config.toml
// 3. <dir>/.env
// 4. Process environment (TASKER_*)
//
// Flags are applied by the caller afterwards. Missing files are not errors.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cfg, cfg.ConfigPath()); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", cfg.ConfigPath(), err)
	}

	dotenv, err := readEnvFile(cfg.EnvPath())
	if err != nil {
		return nil, fmt.Errorf("loading env file %s: %w", cfg.EnvPath(), err)
	}

	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[name]
		return v, ok
	}
	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be deferred to the backend.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	for _, b := range Backends {
		if c.Backend == b {
			if strings.TrimSpace(c.Key) == "" {
				return errors.New("key must not be empty")
			}
			return nil
		}
	}
	return fmt.Errorf("unknown backend: %s", c.Backend)
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return godotenv.Read(path)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	str("BACKEND", &cfg.Backend)
	str("KEY", &cfg.Key)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("DATA_DIR", &cfg.DataDir)
	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	str("REDIS_PREFIX", &cfg.Redis.Prefix)
	str("POSTGRES_DSN", &cfg.Postgres.DSN)
	str("POSTGRES_TABLE", &cfg.Postgres.Table)
	str("MYSQL_DSN", &cfg.MySQL.DSN)
	str("MYSQL_TABLE", &cfg.MySQL.Table)

	if v, ok := lookup(EnvPrefix + "REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %sREDIS_DB: %s", EnvPrefix, v)
		}
		cfg.Redis.DB = n
	}
	return nil
}
