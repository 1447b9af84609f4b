package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"turnovercli/internal/errors"
)

// envPrefix is the prefix for all configuration environment variables.
const envPrefix = "TURNOVER"

// Config represents the complete application configuration
type Config struct {
	Source   SourceConfig   `yaml:"source" envconfig:"SOURCE"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Metrics  MetricsConfig  `yaml:"metrics" envconfig:"METRICS"`
	Tracing  TracingConfig  `yaml:"tracing" envconfig:"TRACING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// SourceConfig describes where source files are fetched from
type SourceConfig struct {
	Mode              string        `yaml:"mode" envconfig:"MODE" default:"dir" validate:"oneof=dir http"`
	Dir               string        `yaml:"dir" envconfig:"DIR" default:"data/turnover"`
	BaseURL           string        `yaml:"base_url" envconfig:"BASE_URL" validate:"omitempty,url"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND" default:"4"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"60s"`
}

// OutputConfig describes where master tables are written
type OutputConfig struct {
	Dir    string `yaml:"dir" envconfig:"DIR" default:"data/master"`
	Prefix string `yaml:"prefix" envconfig:"PREFIX"`
	BOM    bool   `yaml:"bom" envconfig:"BOM"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/turnover-master.log"`
}

// MetricsConfig controls the optional ops listener exposed while a run is
// in flight
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" envconfig:"ENABLED"`
	Addr    string `yaml:"addr" envconfig:"ADDR" default:":9090"`
}

// TracingConfig controls OpenTelemetry tracing
type TracingConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED"`
}

// PipelineConfig tunes the streaming reduction
type PipelineConfig struct {
	// Prefetch overlaps the next file's download with the current fold.
	Prefetch bool `yaml:"prefetch" envconfig:"PREFETCH"`
}

// Load loads configuration from environment variables layered over an
// optional YAML file (env takes precedence). An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}
	return &cfg, nil
}

// mergeConfigs merges file config into env config; env wins wherever it
// differs from the envconfig defaults' zero-equivalent slots.
func mergeConfigs(fileCfg, envCfg Config) Config {
	if !isEnvSet("SOURCE_MODE") && fileCfg.Source.Mode != "" {
		envCfg.Source.Mode = fileCfg.Source.Mode
	}
	if !isEnvSet("SOURCE_DIR") && fileCfg.Source.Dir != "" {
		envCfg.Source.Dir = fileCfg.Source.Dir
	}
	if !isEnvSet("SOURCE_BASE_URL") && fileCfg.Source.BaseURL != "" {
		envCfg.Source.BaseURL = fileCfg.Source.BaseURL
	}
	if !isEnvSet("SOURCE_REQUESTS_PER_SECOND") && fileCfg.Source.RequestsPerSecond != 0 {
		envCfg.Source.RequestsPerSecond = fileCfg.Source.RequestsPerSecond
	}
	if !isEnvSet("SOURCE_TIMEOUT") && fileCfg.Source.Timeout != 0 {
		envCfg.Source.Timeout = fileCfg.Source.Timeout
	}
	if !isEnvSet("OUTPUT_DIR") && fileCfg.Output.Dir != "" {
		envCfg.Output.Dir = fileCfg.Output.Dir
	}
	if !isEnvSet("OUTPUT_PREFIX") && fileCfg.Output.Prefix != "" {
		envCfg.Output.Prefix = fileCfg.Output.Prefix
	}
	if !isEnvSet("OUTPUT_BOM") && fileCfg.Output.BOM {
		envCfg.Output.BOM = true
	}
	if !isEnvSet("LOGGING_LEVEL") && fileCfg.Logging.Level != "" {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	if !isEnvSet("LOGGING_OUTPUT") && fileCfg.Logging.Output != "" {
		envCfg.Logging.Output = fileCfg.Logging.Output
	}
	if !isEnvSet("LOGGING_FILE_PATH") && fileCfg.Logging.FilePath != "" {
		envCfg.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if !isEnvSet("METRICS_ENABLED") && fileCfg.Metrics.Enabled {
		envCfg.Metrics.Enabled = true
	}
	if !isEnvSet("METRICS_ADDR") && fileCfg.Metrics.Addr != "" {
		envCfg.Metrics.Addr = fileCfg.Metrics.Addr
	}
	if !isEnvSet("TRACING_ENABLED") && fileCfg.Tracing.Enabled {
		envCfg.Tracing.Enabled = true
	}
	if !isEnvSet("PIPELINE_PREFETCH") && fileCfg.Pipeline.Prefetch {
		envCfg.Pipeline.Prefetch = true
	}
	return envCfg
}

func isEnvSet(name string) bool {
	_, ok := os.LookupEnv(envPrefix + "_" + name)
	return ok
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.NewConfigError("config validation failed", err)
	}
	if c.Source.Mode == "http" && c.Source.BaseURL == "" {
		return errors.NewConfigError("source.base_url is required when source.mode is http", nil)
	}
	return nil
}
