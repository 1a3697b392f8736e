// Package config loads the dreamvoid YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dreamvoid/internal/world"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root of the configuration file.
type Config struct {
	World   world.Config  `yaml:"world"`
	Flight  FlightConfig  `yaml:"flight"`
	Oracle  OracleConfig  `yaml:"oracle"`
	Logging LoggingConfig `yaml:"logging"`
	Display DisplayConfig `yaml:"display"`
}

// FlightConfig selects the camera flight.
type FlightConfig struct {
	Name   string            `yaml:"name"`
	Seed   int64             `yaml:"seed"`
	TPS    int               `yaml:"tps"`
	Params map[string]string `yaml:"params,omitempty"`
}

// OracleConfig configures the generative collaborator.
type OracleConfig struct {
	APIKey     string   `yaml:"api_key,omitempty"`
	TextModel  string   `yaml:"text_model"`
	ImageModel string   `yaml:"image_model"`
	Timeout    string   `yaml:"timeout"`
	PoolSize   int      `yaml:"pool_size"`
	Seeds      []string `yaml:"seeds,omitempty"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	File  string `yaml:"file,omitempty"`
}

// DisplayConfig configures the hosts.
type DisplayConfig struct {
	Scale    int  `yaml:"scale"`
	Width    int  `yaml:"width"`
	Height   int  `yaml:"height"`
	HUDWidth int  `yaml:"hud_width"`
	Sound    bool `yaml:"sound"`
}

// DefaultConfig returns a configuration with every section filled in.
func DefaultConfig() *Config {
	return &Config{
		World: world.DefaultConfig(),
		Flight: FlightConfig{
			Name: "cruise",
			Seed: 42,
			TPS:  60,
		},
		Oracle: OracleConfig{
			TextModel:  "gemini-2.5-flash",
			ImageModel: "gemini-2.5-flash-image",
			Timeout:    "30s",
			PoolSize:   12,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Display: DisplayConfig{
			Scale:    1,
			Width:    960,
			Height:   640,
			HUDWidth: 260,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("API_KEY"); key != "" {
		c.Oracle.APIKey = key
	}
	// GEMINI_API_KEY wins over the generic name.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Oracle.APIKey = key
	}
	if level := os.Getenv("DREAM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Apply layers "--set" style overrides. Keys are prefixed by section:
// "world.step_max", "world.rarity.NEBULA.PORTAL", "flight.speed" (routed into
// the flight's params), "flight.name", "flight.seed" and "flight.tps".
func (c *Config) Apply(sets map[string]string) error {
	worldSets := map[string]string{}
	for key, value := range sets {
		section, rest, ok := strings.Cut(key, ".")
		if !ok {
			return fmt.Errorf("%w: override %q has no section", ErrInvalid, key)
		}
		switch section {
		case "world":
			worldSets[rest] = value
		case "flight":
			switch rest {
			case "name":
				c.Flight.Name = value
			case "seed":
				seed, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return fmt.Errorf("%w: flight.seed: %v", ErrInvalid, err)
				}
				c.Flight.Seed = seed
			case "tps":
				tps, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("%w: flight.tps: %v", ErrInvalid, err)
				}
				c.Flight.TPS = tps
			default:
				if c.Flight.Params == nil {
					c.Flight.Params = map[string]string{}
				}
				c.Flight.Params[rest] = value
			}
		default:
			return fmt.Errorf("%w: unknown section %q in override %q", ErrInvalid, section, key)
		}
	}
	if len(worldSets) > 0 {
		c.World = c.World.Apply(worldSets)
	}
	return nil
}

// OracleTimeout returns the oracle timeout as a duration.
func (c *Config) OracleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Oracle.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Flight.Name == "" {
		return fmt.Errorf("%w: flight.name is empty", ErrInvalid)
	}
	if c.Flight.TPS <= 0 {
		return fmt.Errorf("%w: flight.tps must be positive, got %d", ErrInvalid, c.Flight.TPS)
	}
	if c.Oracle.PoolSize < 0 {
		return fmt.Errorf("%w: oracle.pool_size must not be negative", ErrInvalid)
	}
	if c.Oracle.Timeout != "" {
		if _, err := time.ParseDuration(c.Oracle.Timeout); err != nil {
			return fmt.Errorf("%w: oracle.timeout: %v", ErrInvalid, err)
		}
	}
	if _, err := zapcore.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalid, err)
	}
	if c.Display.Scale < 1 || c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display dimensions must be positive", ErrInvalid)
	}
	return nil
}
