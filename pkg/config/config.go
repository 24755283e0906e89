// Package config loads glsgraph settings. Values are layered: built-in
// defaults, then an optional YAML file, then environment variables (a .env
// file in the working directory is read first when present). Command line
// flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dd0wney/glsgraph/pkg/validation"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load
const (
	EnvDB           = "GLS_DB"
	EnvNetlistBatch = "GLS_NETLIST_BATCH"
	EnvDelayBatch   = "GLS_DELAY_BATCH"
	EnvMaxDepth     = "GLS_MAX_DEPTH"
	EnvServerAddr   = "GLS_SERVER_ADDR"
	EnvLogLevel     = "LOG_LEVEL"
)

// DotEnvFile is the optional env file read by Load
const DotEnvFile = ".env"

// Config is the full glsgraph configuration. Load layers the YAML file and
// environment over Default.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Query    QueryConfig    `yaml:"query"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig locates the SQLite graph file
type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// ImportConfig sizes the write batches of the netlist and delay imports
type ImportConfig struct {
	NetlistBatchSize int  `yaml:"netlist_batch_size" validate:"min=1,max=10000000"`
	DelayBatchSize   int  `yaml:"delay_batch_size" validate:"min=1,max=10000000"`
	Progress         bool `yaml:"progress"`
}

// QueryConfig bounds critical path searches
type QueryConfig struct {
	MaxDepth int `yaml:"max_depth" validate:"min=1,max=10000"`
}

// ServerConfig holds the HTTP listen address and its timeouts
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"min=0"`
}

// LogConfig sets the minimum level of the JSON log on stderr
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "gls.db"},
		Import: ImportConfig{
			NetlistBatchSize: 10000,
			DelayBatchSize:   100000,
			Progress:         true,
		},
		Query: QueryConfig{MaxDepth: 100},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// loadDotEnv reads file into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(file string) error {
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", file, err)
	}
	return nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Database.Path = getEnv(EnvDB, c.Database.Path)
	c.Server.Addr = getEnv(EnvServerAddr, c.Server.Addr)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)

	var err error
	if c.Import.NetlistBatchSize, err = getEnvAsInt(EnvNetlistBatch, c.Import.NetlistBatchSize); err != nil {
		return err
	}
	if c.Import.DelayBatchSize, err = getEnvAsInt(EnvDelayBatch, c.Import.DelayBatchSize); err != nil {
		return err
	}
	if c.Query.MaxDepth, err = getEnvAsInt(EnvMaxDepth, c.Query.MaxDepth); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, value)
	}
	return n, nil
}
