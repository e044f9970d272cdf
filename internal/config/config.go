// Package config loads buildopt settings from YAML with environment
// overrides
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/utility"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "BUILDOPT_"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`

	// Address is the server the client commands dial
	Address string `yaml:"address"`
}

type RedisConfig struct {
	// Empty runs with in-memory storage
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	ResultTTL time.Duration `yaml:"result_ttl"`
}

type CatalogConfig struct {
	ItemsPath string `yaml:"items_path"`
	IDsPath   string `yaml:"ids_path"`
}

type OptimizerConfig struct {
	Preset string `yaml:"preset"`
	Level  int    `yaml:"level"`
	Class  string `yaml:"class"`
	Strict bool   `yaml:"strict"`

	Restarts int `yaml:"restarts"`
	Workers  int `yaml:"workers"`

	// Seed 0 draws a fresh seed per run
	Seed uint64 `yaml:"seed"`

	// Zero keeps the preset's value
	MaxIterations      int     `yaml:"max_iterations"`
	InitialTemperature float64 `yaml:"initial_temperature"`

	MaxInvalidRetry  int `yaml:"max_invalid_retry"`
	ProgressInterval int `yaml:"progress_interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        50051,
			MetricsPort: 9102,
			Address:     "localhost:50051",
		},
		Redis: RedisConfig{
			ResultTTL: 24 * time.Hour,
		},
		Catalog: CatalogConfig{
			ItemsPath: "data/items.json",
		},
		Optimizer: OptimizerConfig{
			Preset:           utility.PresetEHP,
			Level:            106,
			Strict:           true,
			Restarts:         1,
			MaxInvalidRetry:  100,
			ProgressInterval: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeNotFound, "failed to read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse config %s", path)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.port", c.Server.Port, 1, 65535, vb)
	errors.ValidateRange("server.metrics_port", c.Server.MetricsPort, 0, 65535, vb)
	if c.Redis.ResultTTL < 0 {
		vb.InvalidField("redis.result_ttl", "must not be negative")
	}

	errors.ValidateEnum("optimizer.preset", c.Optimizer.Preset, utility.PresetNames(), vb)
	errors.ValidatePositive("optimizer.level", c.Optimizer.Level, vb)
	if c.Optimizer.Class != "" {
		if _, ok := equipment.ClassFromString(c.Optimizer.Class); !ok {
			vb.InvalidField("optimizer.class", "unknown class "+c.Optimizer.Class)
		}
	}
	errors.ValidatePositive("optimizer.restarts", c.Optimizer.Restarts, vb)
	if c.Optimizer.Workers < 0 {
		vb.InvalidField("optimizer.workers", "must not be negative")
	}
	if c.Optimizer.MaxIterations < 0 {
		vb.InvalidField("optimizer.max_iterations", "must not be negative")
	}
	errors.ValidateNonNegative("optimizer.initial_temperature", c.Optimizer.InitialTemperature, vb)
	if c.Optimizer.MaxInvalidRetry < -1 {
		vb.InvalidField("optimizer.max_invalid_retry", "must be -1 (no retries) or more")
	}
	if c.Optimizer.ProgressInterval < 0 {
		vb.InvalidField("optimizer.progress_interval", "must not be negative")
	}

	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"json", "text"}, vb)

	return vb.Build()
}

func applyEnv(cfg *Config) error {
	vb := errors.NewValidationBuilder()

	envInt := func(name string, dst *int) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				vb.InvalidField(EnvPrefix+name, "must be an integer")
				return
			}
			*dst = n
		}
	}
	envString := func(name string, dst *string) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}

	envInt("PORT", &cfg.Server.Port)
	envInt("METRICS_PORT", &cfg.Server.MetricsPort)
	envString("SERVER_ADDRESS", &cfg.Server.Address)

	envString("REDIS_ADDRESS", &cfg.Redis.Address)
	envString("REDIS_PASSWORD", &cfg.Redis.Password)
	envInt("REDIS_DB", &cfg.Redis.DB)
	if v := os.Getenv(EnvPrefix + "RESULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			vb.InvalidField(EnvPrefix+"RESULT_TTL", "must be a duration")
		} else {
			cfg.Redis.ResultTTL = d
		}
	}

	envString("ITEMS_PATH", &cfg.Catalog.ItemsPath)
	envString("IDS_PATH", &cfg.Catalog.IDsPath)

	envString("PRESET", &cfg.Optimizer.Preset)
	envInt("LEVEL", &cfg.Optimizer.Level)
	envString("CLASS", &cfg.Optimizer.Class)
	if v := os.Getenv(EnvPrefix + "STRICT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			vb.InvalidField(EnvPrefix+"STRICT", "must be a boolean")
		} else {
			cfg.Optimizer.Strict = b
		}
	}
	envInt("RESTARTS", &cfg.Optimizer.Restarts)
	envInt("WORKERS", &cfg.Optimizer.Workers)
	if v := os.Getenv(EnvPrefix + "SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			vb.InvalidField(EnvPrefix+"SEED", "must be an unsigned integer")
		} else {
			cfg.Optimizer.Seed = n
		}
	}
	envInt("MAX_INVALID_RETRY", &cfg.Optimizer.MaxInvalidRetry)

	envString("LOG_LEVEL", &cfg.Logging.Level)
	envString("LOG_FORMAT", &cfg.Logging.Format)

	return vb.Build()
}
