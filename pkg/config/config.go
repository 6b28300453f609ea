// Package config loads the ihex CLI defaults from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hexforge/ihex/pkg/record"
)

// Config holds the CLI defaults for reading and writing hex files.
type Config struct {
	Format     string `yaml:"format"`      // i8hex, i16hex or i32hex
	LineLength int    `yaml:"line_length"` // payload bytes per data record, 1-255
	Mark       string `yaml:"mark"`        // record start code, one character
	Padding    string `yaml:"padding"`     // gap fill byte for binary export, e.g. "0xFF"
}

// DefaultConfig returns the defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Format:     "i32hex",
		LineLength: 16,
		Mark:       ":",
		Padding:    "0xFF",
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveConfig writes the configuration to the specified path, creating the
// directory if needed.
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

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./ihex.yaml"
	}
	return filepath.Join(homeDir, ".config", "ihex", "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

// ParseFormat resolves the configured format name.
func (c *Config) ParseFormat() (record.Format, error) {
	return record.ParseFormat(c.Format)
}

// ParsePadding resolves the configured padding byte. Plain and 0x-prefixed
// hex values are accepted.
func (c *Config) ParsePadding() (byte, error) {
	s := strings.TrimPrefix(strings.ToLower(c.Padding), "0x")
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid padding byte %q: %w", c.Padding, err)
	}
	return byte(v), nil
}
