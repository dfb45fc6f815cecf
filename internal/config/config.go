package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the saved defaults at ~/.cirrus/config.yaml. Every
// field is optional; flags and environment variables win over it.
type Config struct {
	AWSProfile   string `yaml:"aws_profile,omitempty"`
	AWSRegion    string `yaml:"aws_region,omitempty"`
	CacheControl string `yaml:"cache_control,omitempty"`
	MaxWorkers   int    `yaml:"max_workers,omitempty"`
	BackupDir    string `yaml:"backup_dir,omitempty"`
}

// GetConfigDir returns the config directory path (~/.cirrus)
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cirrus"
	}
	return filepath.Join(home, ".cirrus")
}

// GetConfigPath returns the config file path (~/.cirrus/config.yaml)
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// LoadConfig loads the configuration from ~/.cirrus/config.yaml
func LoadConfig() (*Config, error) {
	return loadFrom(GetConfigPath())
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to ~/.cirrus/config.yaml
func SaveConfig(cfg *Config) error {
	return saveTo(GetConfigPath(), cfg)
}

func saveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
