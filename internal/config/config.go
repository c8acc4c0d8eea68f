// Package config handles the XDG configuration directory, file paths and
// backend settings.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "tasker"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// EnvFile is the optional dotenv filename read from the config directory.
	EnvFile = ".env"

	// OAuthClientFile is the OAuth client credentials filename (drive backend).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename (drive backend).
	TokenFile = "token.json"

	// DefaultKey is the blob store key the task collection is stored under.
	DefaultKey = "todoTasks"

	// DefaultBackend is used when no backend is configured.
	DefaultBackend = "file"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Yes answers confirmation prompts affirmatively.
	Yes bool `toml:"-"`

	// Backend selects the blob store: memory, file, redis, postgres, mysql or drive.
	Backend string `toml:"backend"`

	// Key is the blob store key holding the task collection.
	Key string `toml:"key"`

	// LogLevel is the level used when Debug is off.
	LogLevel string `toml:"log_level"`

	// DataDir is where the file backend keeps its blobs.
	// Defaults to <Dir>/data.
	DataDir string `toml:"data_dir"`

	Redis    RedisConfig    `toml:"redis"`
	Postgres PostgresConfig `toml:"postgres"`
	MySQL    MySQLConfig    `toml:"mysql"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// PostgresConfig configures the postgres backend.
type PostgresConfig struct {
	DSN   string `toml:"dsn"`
	Table string `toml:"table"`
}

// MySQLConfig configures the mysql backend.
type MySQLConfig struct {
	DSN   string `toml:"dsn"`
	Table string `toml:"table"`
}

// New creates a new Config with defaults and the default or specified
// config directory. It does not read any file or the environment; see Load.
// If configDir is empty, uses XDG_CONFIG_HOME/tasker or $HOME/.config/tasker.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	setDefaults(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Backend = DefaultBackend
	cfg.Key = DefaultKey
	cfg.LogLevel = "warn"
	cfg.Redis.Addr = "127.0.0.1:6379"
	cfg.Redis.Prefix = AppName + ":"
	cfg.Postgres.Table = "tasker_blobs"
	cfg.MySQL.Table = "tasker_blobs"
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the TOML settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnvPath returns the path to the dotenv file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// DataPath returns the directory used by the file backend.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(c.Dir, "data")
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
