package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
// It replaces the ambient globals of earlier payroll tooling (fixed
// database path, module-level logging setup) with an explicit object
// whose lifecycle is owned by the process driver.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Export   ExportConfig   `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/payroll.log"`
}

// DatabaseConfig contains the persistence store configuration
type DatabaseConfig struct {
	// Path is the SQLite database file, resolved against the executable
	// directory when relative.
	Path string `yaml:"path" envconfig:"PATH" default:"payroll_data.db" validate:"required"`
}

// ExportConfig contains spreadsheet/report export configuration
type ExportConfig struct {
	// Dir is the root directory for xlsx exports and timestamped report
	// folders, resolved against the executable directory when relative.
	Dir string `yaml:"dir" envconfig:"DIR" default:"exports" validate:"required"`
}

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables take precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("PAYROLL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Database.Path == "" {
		envConfig.Database.Path = fileConfig.Database.Path
	}
	if envConfig.Export.Dir == "" {
		envConfig.Export.Dir = fileConfig.Export.Dir
	}
	return envConfig
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file, or "" when no
// file is present and env vars alone apply.
func getConfigFilePath() string {
	locations := []string{
		"payroll.yaml",
		"configs/payroll.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/payroll.log",
		},
		Database: DatabaseConfig{
			Path: "payroll_data.db",
		},
		Export: ExportConfig{
			Dir: "exports",
		},
	}
}
