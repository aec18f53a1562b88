package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/arcanaland/patience/internal/deck"
)

// Config represents the application configuration
type Config struct {
	Layout   []int     `toml:"layout" env:"PATIENCE_LAYOUT" envSeparator:","`
	AutoSome int       `toml:"auto_some" env:"PATIENCE_AUTO_SOME"`
	Color    string    `toml:"color" env:"PATIENCE_COLOR"`
	Seed     uint64    `toml:"seed" env:"PATIENCE_SEED"`
	Log      LogConfig `toml:"log"`
}

// LogConfig controls the zerolog output of the CLI
type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`
	Pretty bool   `toml:"pretty" env:"LOG_PRETTY"`
}

// Colour modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Layout:   append([]int(nil), deck.Triangle...),
		AutoSome: 5,
		Color:    ColorAuto,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DeckLayout returns the configured deal shape
func (c *Config) DeckLayout() deck.Layout {
	return deck.Layout(c.Layout)
}

// Validate checks the values a session depends on
func (c *Config) Validate() error {
	if err := c.DeckLayout().Validate(); err != nil {
		return err
	}
	if c.AutoSome < 1 {
		return fmt.Errorf("auto_some must be at least 1, got %d", c.AutoSome)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never; got %q", c.Color)
	}
	return nil
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "patience", "config.toml")
}

// LoadConfig loads the config file from its XDG location
func LoadConfig() (*Config, error) {
	return LoadFrom(GetConfigFilePath())
}

// LoadFrom loads the config file at path, creating it with defaults if it
// doesn't exist, then applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	var config *Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		config, err = createDefaultConfig(path)
		if err != nil {
			return nil, err
		}
	} else {
		config = Default()
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("error decoding config file: %v", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("error reading environment: %v", err)
	}
	config.Color = strings.ToLower(strings.TrimSpace(config.Color))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", path, err)
	}
	return config, nil
}

// createDefaultConfig writes the default config to path
func createDefaultConfig(path string) (*Config, error) {
	config := Default()
	if err := Save(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the config to path as TOML
func Save(path string, config *Config) error {
	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}

// SetLayout stores a new deal shape in the config file at path
func SetLayout(path string, layout deck.Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	}

	config := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return fmt.Errorf("error decoding config file: %v", err)
		}
	}

	// Update the layout
	config.Layout = append([]int(nil), layout...)

	return Save(path, config)
}
