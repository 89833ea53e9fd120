package strtok

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultDelimiters = " "
const DefaultFormat = "TEXT"

// Config holds the settings that can be supplied from a YAML file.
type Config struct {
	Delimiters        string `yaml:"delimiters,omitempty"`
	Format            string `yaml:"option-format,omitempty"`
	TrimTokenOnOutput int    `yaml:"option-trim-token-on-output,omitempty"`
	Echo              bool   `yaml:"option-echo,omitempty"`
	Limit             int    `yaml:"option-limit,omitempty"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Delimiters: DefaultDelimiters,
		Format:     DefaultFormat,
	}
}

// LoadConfigFile reads a YAML config file on top of the defaults.
func LoadConfigFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename) // #nosec G304 - CLI tool reads user-specified config files
	if err != nil {
		return nil, err
	}
	return LoadConfigFromString(string(data))
}

// LoadConfigFromString parses YAML config text on top of the defaults.
func LoadConfigFromString(text string) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(text), config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Delimiters == "" {
		return fmt.Errorf("config: delimiters must not be empty")
	}
	if c.Limit < 0 {
		return fmt.Errorf("config: option-limit must not be negative, got %d", c.Limit)
	}
	if c.TrimTokenOnOutput < 0 {
		return fmt.Errorf("config: option-trim-token-on-output must not be negative, got %d", c.TrimTokenOnOutput)
	}
	if _, err := PickPrintFunc(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SessionOptions converts the config into options for New.
func (c *Config) SessionOptions() []Option {
	return []Option{WithLimit(c.Limit)}
}

// PrintOptions converts the config into options for the print functions.
func (c *Config) PrintOptions() *PrintOptions {
	return &PrintOptions{TrimTokenOnOutput: c.TrimTokenOnOutput}
}
