package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ResultsDir string `yaml:"results_dir" envconfig:"RESULTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// AnalysisConfig contains the business constants for the KPI computations.
// Price thresholds and the RFM band count are fixed configuration, never
// inferred from data, so results stay comparable across runs.
type AnalysisConfig struct {
	PriceLowMax    float64 `yaml:"price_low_max" envconfig:"PRICE_LOW_MAX" validate:"gt=0"`
	PriceMediumMax float64 `yaml:"price_medium_max" envconfig:"PRICE_MEDIUM_MAX" validate:"gt=0,gtfield=PriceLowMax"`
	PriceHighMax   float64 `yaml:"price_high_max" envconfig:"PRICE_HIGH_MAX" validate:"gt=0,gtfield=PriceMediumMax"`
	RFMBands       int     `yaml:"rfm_bands" envconfig:"RFM_BANDS" validate:"gte=2,lte=10"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// ServerConfig contains HTTP server configuration for the result server
type ServerConfig struct {
	Port         int           `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
}

// defaultConfig is the baseline every load starts from
func defaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			DataDir:    "data",
			ResultsDir: "data/results",
			LogsDir:    "logs",
		},
		Analysis: AnalysisConfig{
			PriceLowMax:    2.0,
			PriceMediumMax: 5.0,
			PriceHighMax:   10.0,
			RFMBands:       4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// Load loads configuration from an optional YAML file and the environment.
// Precedence: environment variables (prefix RETAIL) over file values over
// built-in defaults.
func Load(configFile string) (*Config, error) {
	cfg := defaultConfig()

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file not found: %s", configFile)
		}
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("RETAIL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration populated with defaults only.
func Default() (*Config, error) {
	return Load("")
}

// loadFromFile unmarshals the YAML file over cfg; fields absent from the
// file keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// GetResultsDir returns the resolved results directory path
func (c *Config) GetResultsDir() string {
	if filepath.IsAbs(c.Paths.ResultsDir) {
		return c.Paths.ResultsDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return c.Paths.ResultsDir
	}
	return filepath.Join(wd, c.Paths.ResultsDir)
}

// EnsureDirectories creates the configured directories if they do not exist
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.ResultsDir}
	if c.Paths.LogsDir != "" {
		dirs = append(dirs, c.Paths.LogsDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
