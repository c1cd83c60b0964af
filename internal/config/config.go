// Package config loads the worker's static configuration from YAML, a .env
// file and BATTLEBOTS_* environment variables, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backend names
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

const envPrefix = "BATTLEBOTS_"

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the worker configuration
type Config struct {
	BotPath               string        `yaml:"bot-path"`
	NumGamesPerTournament int           `yaml:"num-games-per-tournament"`
	MoveTimeout           time.Duration `yaml:"move-timeout"`
	Seed                  uint64        `yaml:"seed"` // 0 picks a random seed
	LogLevel              string        `yaml:"log-level"`

	Storage StorageConfig `yaml:"storage"`
	HTTP    HTTPConfig    `yaml:"http"`
}

// StorageConfig selects the job queue and result store backends
type StorageConfig struct {
	Queue      string `yaml:"queue"`
	Results    string `yaml:"results"`
	RedisURL   string `yaml:"redis-url"`
	SQLitePath string `yaml:"sqlite-path"`
}

// HTTPConfig configures the submission API. Port 0 disables it.
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		BotPath:               "bots",
		NumGamesPerTournament: 100,
		MoveTimeout:           10 * time.Second,
		LogLevel:              "info",
		Storage: StorageConfig{
			Queue:      StorageMemory,
			Results:    StorageMemory,
			SQLitePath: "battlebots.db",
		},
		HTTP: HTTPConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and the environment, then validates it. A .env file in
// the working directory is loaded into the environment first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decodeYAML(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overrides fields from BATTLEBOTS_* variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"BOT_PATH":    &c.BotPath,
		"LOG_LEVEL":   &c.LogLevel,
		"QUEUE":       &c.Storage.Queue,
		"RESULTS":     &c.Storage.Results,
		"REDIS_URL":   &c.Storage.RedisURL,
		"SQLITE_PATH": &c.Storage.SQLitePath,
		"HTTP_HOST":   &c.HTTP.Host,
	}
	for key, field := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*field = v
		}
	}

	ints := map[string]*int{
		"NUM_GAMES": &c.NumGamesPerTournament,
		"HTTP_PORT": &c.HTTP.Port,
	}
	for key, field := range ints {
		if v, ok := lookup(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*field = n
		}
	}

	if v, ok := lookup(envPrefix + "MOVE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sMOVE_TIMEOUT: %w", envPrefix, err)
		}
		c.MoveTimeout = d
	}

	if v, ok := lookup(envPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", envPrefix, err)
		}
		c.Seed = seed
	}

	return nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	if c.BotPath == "" {
		return fmt.Errorf("%w: bot-path is required", ErrInvalidConfig)
	}
	if c.NumGamesPerTournament < 1 {
		return fmt.Errorf("%w: num-games-per-tournament must be at least 1, got %d", ErrInvalidConfig, c.NumGamesPerTournament)
	}
	if c.MoveTimeout <= 0 {
		return fmt.Errorf("%w: move-timeout must be positive, got %s", ErrInvalidConfig, c.MoveTimeout)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch c.Storage.Queue {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("%w: unknown queue storage %q", ErrInvalidConfig, c.Storage.Queue)
	}
	switch c.Storage.Results {
	case StorageMemory, StorageRedis:
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite-path is required for sqlite results", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown results storage %q", ErrInvalidConfig, c.Storage.Results)
	}
	if c.UsesRedis() && c.Storage.RedisURL == "" {
		return fmt.Errorf("%w: redis-url is required for redis storage", ErrInvalidConfig)
	}

	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http port %d out of range", ErrInvalidConfig, c.HTTP.Port)
	}
	return nil
}

// UsesRedis reports whether either backend is Redis
func (c *Config) UsesRedis() bool {
	return c.Storage.Queue == StorageRedis || c.Storage.Results == StorageRedis
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error")
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, err
	}
	return level, nil
}
