// Package config resolves builder settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	CacheSQLite = "sqlite"
	CacheFiles  = "files"
)

// Cache key modes.
const (
	KeyByPageID   = "page_id"
	KeyByPageType = "page_type"
)

type Config struct {
	DataDir string `yaml:"data_dir" env:"STOREFRONT_DATA_DIR"`
	DBPath  string `yaml:"db_path" env:"STOREFRONT_DB_PATH"`

	Log     LogConfig     `yaml:"log"`
	Remote  RemoteConfig  `yaml:"remote"`
	Cache   CacheConfig   `yaml:"cache"`
	Editor  EditorConfig  `yaml:"editor"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"STOREFRONT_LOG_LEVEL"`
	Format string `yaml:"format" env:"STOREFRONT_LOG_FORMAT"`
}

type RemoteConfig struct {
	BaseURL string        `yaml:"base_url" env:"STOREFRONT_API_URL"`
	Timeout time.Duration `yaml:"timeout" env:"STOREFRONT_API_TIMEOUT"`
	// TokenKey names the secret holding the bearer token.
	TokenKey string `yaml:"token_key" env:"STOREFRONT_TOKEN_KEY"`
	// Token, when set, is used if the secret store has nothing.
	Token string `yaml:"-" env:"STOREFRONT_API_TOKEN"`
}

type CacheConfig struct {
	Backend string `yaml:"backend" env:"STOREFRONT_CACHE_BACKEND"`
	Dir     string `yaml:"dir" env:"STOREFRONT_CACHE_DIR"`
	KeyMode string `yaml:"key_mode" env:"STOREFRONT_CACHE_KEY_MODE"`
}

type EditorConfig struct {
	HistoryLimit     int    `yaml:"history_limit" env:"STOREFRONT_HISTORY_LIMIT"`
	AutosaveSchedule string `yaml:"autosave_schedule" env:"STOREFRONT_AUTOSAVE_SCHEDULE"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" env:"STOREFRONT_METRICS_ADDR"`
}

// Default returns the built-in configuration rooted at the user's data
// directory.
func Default() Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "storefront-builder")
	return Config{
		DataDir: dataDir,
		Log:     LogConfig{Level: "info", Format: "text"},
		Remote:  RemoteConfig{TokenKey: "storefront_api_token"},
		Cache:   CacheConfig{Backend: CacheSQLite, KeyMode: KeyByPageID},
		Editor:  EditorConfig{HistoryLimit: 50},
	}
}

// Options controls where Load looks.
type Options struct {
	// File is a YAML config path. Empty means $STOREFRONT_CONFIG, then
	// <data dir>/config.yaml when it exists.
	File string
	// EnvFile is a dotenv path. Empty means ".env" when it exists.
	EnvFile string
}

// Load builds the configuration. Missing optional files are not errors.
func Load(opts Options) (Config, error) {
	cfg := Default()

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && (opts.EnvFile != "" || !errors.Is(err, os.ErrNotExist)) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	file := opts.File
	explicit := file != ""
	if file == "" {
		file = os.Getenv("STOREFRONT_CONFIG")
		explicit = file != ""
	}
	if file == "" {
		dir := cfg.DataDir
		if d := os.Getenv("STOREFRONT_DATA_DIR"); d != "" {
			dir = d
		}
		file = filepath.Join(dir, "config.yaml")
	}
	if err := loadYAML(file, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}

	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// fill derives paths left empty.
func (c *Config) fill() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "builder.db")
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = filepath.Join(c.DataDir, "previews")
	}
	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	c.Cache.KeyMode = strings.ToLower(c.Cache.KeyMode)
}

// Validate rejects settings no component can work with.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	switch c.Cache.Backend {
	case CacheSQLite, CacheFiles:
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Cache.KeyMode {
	case KeyByPageID, KeyByPageType:
	default:
		return fmt.Errorf("config: unknown cache key mode %q", c.Cache.KeyMode)
	}
	if c.Editor.HistoryLimit < 1 {
		return fmt.Errorf("config: history_limit must be positive")
	}
	if c.Remote.Timeout < 0 {
		return fmt.Errorf("config: remote timeout must not be negative")
	}
	return nil
}
