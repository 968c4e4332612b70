// Package config loads the command configuration from defaults, an optional
// YAML file, an optional .env file, TREBUCHET_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ib-77/trebuchet/internal/logging"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "TREBUCHET"

// Keys of the configuration tree, as used in YAML files and flag bindings.
const (
	KeyInput     = "input"
	KeyRed       = "limits.red"
	KeyGreen     = "limits.green"
	KeyBlue      = "limits.blue"
	KeyChunkSize = "pipeline.chunk_size"
	KeyQueueSize = "pipeline.queue_size"
	KeyWorkers   = "pipeline.workers"
	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"
	KeyNoColor   = "log.no_color"
)

const defaultEnvFile = ".env"

var defaults = map[string]any{
	KeyInput:     "input",
	KeyRed:       12,
	KeyGreen:     13,
	KeyBlue:      14,
	KeyChunkSize: 16,
	KeyQueueSize: 64,
	KeyWorkers:   0,
	KeyLogLevel:  "warn",
	KeyLogFormat: logging.FormatConsole,
	KeyNoColor:   false,
}

// Limits is the number of cubes of each colour in the bag.
type Limits struct {
	Red   uint64 `yaml:"red" mapstructure:"red"`
	Green uint64 `yaml:"green" mapstructure:"green"`
	Blue  uint64 `yaml:"blue" mapstructure:"blue"`
}

// Pipeline sizes the stages of a run.
type Pipeline struct {
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`
	QueueSize int `yaml:"queue_size" mapstructure:"queue_size"`
	Workers   int `yaml:"workers" mapstructure:"workers"`
}

type Config struct {
	Input    string         `yaml:"input" mapstructure:"input"`
	Limits   Limits         `yaml:"limits" mapstructure:"limits"`
	Pipeline Pipeline       `yaml:"pipeline" mapstructure:"pipeline"`
	Log      logging.Config `yaml:"log" mapstructure:"log"`
}

// Validate validates the whole configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.New("input is required")
	}
	if c.Pipeline.ChunkSize <= 0 {
		return fmt.Errorf("pipeline.chunk_size must be positive (got: %d)", c.Pipeline.ChunkSize)
	}
	if c.Pipeline.QueueSize <= 0 {
		return fmt.Errorf("pipeline.queue_size must be positive (got: %d)", c.Pipeline.QueueSize)
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("pipeline.workers must not be negative (got: %d)", c.Pipeline.Workers)
	}
	c.Log.ApplyDefaults()
	return c.Log.Validate()
}

// LoaderConfig holds optional file overrides and flag bindings.
type LoaderConfig struct {
	ConfigFile string
	EnvFile    string
	Flags      map[string]*pflag.Flag
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit YAML config file. A file that cannot be
// read is an error.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file. Without one, ./.env is loaded when
// it exists.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithFlag binds a command-line flag to a configuration key. The flag wins
// over every other source once it is set on the command line.
func WithFlag(key string, flag *pflag.Flag) LoaderOption {
	return func(lc *LoaderConfig) {
		if flag == nil {
			return
		}
		if lc.Flags == nil {
			lc.Flags = make(map[string]*pflag.Flag)
		}
		lc.Flags[key] = flag
	}
}

// Load builds and validates the configuration.
func Load(opts ...LoaderOption) (Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", lc.ConfigFile, err)
		}
	}

	if err := loadEnvFile(lc.EnvFile); err != nil {
		return Config{}, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range lc.Flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return Config{}, fmt.Errorf("failed to bind flag --%s to %s: %w", flag.Name, key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadEnvFile exports the variables of a .env file into the process
// environment. Variables already set are left untouched.
func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
