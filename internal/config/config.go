package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/andywolf/lightbulb/internal/catalogue"
)

// EnvPrefix is the prefix of environment variable overrides, e.g.
// LIGHTBULB_EXPERIMENT_TRIALS.
const EnvPrefix = "LIGHTBULB"

// Config represents the full lightbulb configuration
type Config struct {
	Experiment ExperimentConfig  `mapstructure:"experiment" yaml:"experiment"`
	Log        LogConfig         `mapstructure:"log" yaml:"log"`
	Events     EventsConfig      `mapstructure:"events" yaml:"events"`
	Catalogue  []catalogue.Entry `mapstructure:"catalogue" yaml:"catalogue,omitempty"`
}

// ExperimentConfig contains the trial settings shared by every configuration
type ExperimentConfig struct {
	Trials  int    `mapstructure:"trials" yaml:"trials"`
	Seed    uint64 `mapstructure:"seed" yaml:"seed"`       // 0 picks one from the clock
	Workers int    `mapstructure:"workers" yaml:"workers"` // 0 uses GOMAXPROCS
	Agents  int    `mapstructure:"agents" yaml:"agents"`   // for entries that leave it unset
	Only    string `mapstructure:"only" yaml:"only"`       // catalogue positions, e.g. "1-3,7"
}

// LogConfig contains logger settings
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// EventsConfig contains trial record settings
type EventsConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"` // empty disables trial records
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Experiment: ExperimentConfig{
			Trials: 1000,
			Agents: 100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Configure registers defaults and environment overrides on v so that every
// key can be set from a file, a flag or the environment.
func Configure(v *viper.Viper) {
	d := Default()
	v.SetDefault("experiment.trials", d.Experiment.Trials)
	v.SetDefault("experiment.seed", d.Experiment.Seed)
	v.SetDefault("experiment.workers", d.Experiment.Workers)
	v.SetDefault("experiment.agents", d.Experiment.Agents)
	v.SetDefault("experiment.only", d.Experiment.Only)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("events.dir", d.Events.Dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration from v
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	d := Default()

	if cfg.Experiment.Trials == 0 {
		cfg.Experiment.Trials = d.Experiment.Trials
	}

	if cfg.Experiment.Agents == 0 {
		cfg.Experiment.Agents = d.Experiment.Agents
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = d.Log.Format
	}
}

// Entries returns the configured catalogue, or the built-in one when the
// configuration does not override it.
func (c *Config) Entries() []catalogue.Entry {
	if len(c.Catalogue) > 0 {
		return c.Catalogue
	}
	return catalogue.Default()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Experiment.Trials < 1 {
		return fmt.Errorf("experiment trials must be at least 1, got %d", c.Experiment.Trials)
	}

	if c.Experiment.Workers < 0 {
		return fmt.Errorf("experiment workers must not be negative, got %d", c.Experiment.Workers)
	}

	if c.Experiment.Agents < 1 {
		return fmt.Errorf("experiment agents must be at least 1, got %d", c.Experiment.Agents)
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be trace, debug, info, warn, or error)", c.Log.Level)
	}

	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be console or json)", c.Log.Format)
	}

	return nil
}
