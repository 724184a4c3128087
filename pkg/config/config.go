// Package config loads runtime configuration for the flowkit CLI from a
// YAML file. Command line flags and environment variables override whatever
// the file sets.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the flowkit runtime configuration.
type Config struct {
	// Definition is the path to the workflow definition JSON file.
	Definition string `yaml:"definition"`

	// LogLevel controls the verbosity of structured logging.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Tracing enables OpenTelemetry trace export for runs.
	Tracing bool `yaml:"tracing"`

	// Events selects where run telemetry is published.
	Events EventsConfig `yaml:"events"`
}

// EventsConfig selects the event channel backing run telemetry. The default
// in-memory channel needs no broker; kafka requires at least one broker
// address.
type EventsConfig struct {
	Channel string   `yaml:"channel" validate:"omitempty,oneof=gochannel kafka"`
	Brokers []string `yaml:"brokers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Events:   EventsConfig{Channel: "gochannel"},
	}
}

// Load reads and validates a configuration file. Fields absent from the file
// keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Events.Channel == "" {
		cfg.Events.Channel = "gochannel"
	}

	if cfg.Events.Channel == "kafka" && len(cfg.Events.Brokers) == 0 {
		return cfg, fmt.Errorf("invalid config file %s: kafka events require at least one broker", path)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}
