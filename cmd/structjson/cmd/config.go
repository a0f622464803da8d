package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quickwritereader/structjson"
)

// Config is the CLI configuration file.
type Config struct {
	Iterations   int    `yaml:"iterations"`
	Codec        string `yaml:"codec"`
	Strict       bool   `yaml:"strict"`
	AbsentAsNull bool   `yaml:"absent_as_null"`
	LogLevel     string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Iterations: 1000,
		Codec:      "structjson",
		LogLevel:   "info",
	}
}

// LoadConfig reads a yaml file on top of the defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Iterations <= 0 {
		return nil, fmt.Errorf("invalid config: iterations must be positive, got %d", config.Iterations)
	}
	return config, nil
}

// SaveConfig writes config as yaml, creating the directory if needed.
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Options(log structjson.Logger) structjson.Options {
	return structjson.Options{
		Strict:       c.Strict,
		AbsentAsNull: c.AbsentAsNull,
		Logger:       log,
	}
}
