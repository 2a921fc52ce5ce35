package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itohio/gobend/pkg/midi"
)

// Config represents the application configuration. It covers the host
// side only: the modulation engine itself has fixed compile-time
// constants.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Scope  ScopeConfig  `yaml:"scope"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"` // Classic MIDI runs at 31250, USB adapters may differ
}

// ScopeConfig contains display parameters for the emission trace.
type ScopeConfig struct {
	WindowSeconds float64 `yaml:"window_seconds"`
	MaxPoints     int     `yaml:"max_points"` // Points drawn after downsampling
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			Baud: midi.Baud,
		},
		Scope: ScopeConfig{
			WindowSeconds: 10,
			MaxPoints:     1000,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}

	if c.Scope.WindowSeconds == 0 {
		c.Scope.WindowSeconds = def.Scope.WindowSeconds
	}
	if c.Scope.MaxPoints == 0 {
		c.Scope.MaxPoints = def.Scope.MaxPoints
	}
}
