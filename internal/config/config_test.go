package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/andywolf/lightbulb/internal/catalogue"
	"github.com/andywolf/lightbulb/internal/protocol/phased"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "json format",
			mutate:  func(c *Config) { c.Log.Format = "json" },
			wantErr: false,
		},
		{
			name:    "upper case level",
			mutate:  func(c *Config) { c.Log.Level = "DEBUG" },
			wantErr: false,
		},
		{
			name:    "zero trials",
			mutate:  func(c *Config) { c.Experiment.Trials = 0 },
			wantErr: true,
			errMsg:  "trials must be at least 1",
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Experiment.Workers = -2 },
			wantErr: true,
			errMsg:  "workers must not be negative",
		},
		{
			name:    "zero agents",
			mutate:  func(c *Config) { c.Experiment.Agents = 0 },
			wantErr: true,
			errMsg:  "agents must be at least 1",
		},
		{
			name:    "invalid level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "invalid log level",
		},
		{
			name:    "invalid format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.errMsg)
					return
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Validate() error = %q, want error containing %q", err.Error(), tt.errMsg)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Experiment: ExperimentConfig{Seed: 7, Workers: 3}}
	applyDefaults(cfg)

	if cfg.Experiment.Trials != 1000 {
		t.Errorf("Experiment.Trials = %d, want 1000", cfg.Experiment.Trials)
	}
	if cfg.Experiment.Agents != 100 {
		t.Errorf("Experiment.Agents = %d, want 100", cfg.Experiment.Agents)
	}
	if cfg.Experiment.Seed != 7 || cfg.Experiment.Workers != 3 {
		t.Errorf("applyDefaults() overwrote set fields: %+v", cfg.Experiment)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want info/console", cfg.Log)
	}
}

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	Configure(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	return v
}

func TestLoadFrom_Empty(t *testing.T) {
	cfg, err := LoadFrom(newViper(t, ""))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Experiment.Trials != 1000 {
		t.Errorf("Experiment.Trials = %d, want 1000", cfg.Experiment.Trials)
	}
	if len(cfg.Catalogue) != 0 {
		t.Errorf("Catalogue = %v, want empty", cfg.Catalogue)
	}
	if got := len(cfg.Entries()); got != len(catalogue.Default()) {
		t.Errorf("len(Entries()) = %d, want built-in %d", got, len(catalogue.Default()))
	}
}

func TestLoadFrom_File(t *testing.T) {
	cfg, err := LoadFrom(newViper(t, `
experiment:
  trials: 50
  seed: 12345
  workers: 2
  only: "1-3"
log:
  level: debug
  format: json
events:
  dir: out
catalogue:
  - name: boosted
    protocol: double-or-nothing-boost
    agents: 64
    phase_lengths: [40, 30]
    steady_length: 20
    boost_days: 12
`))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Experiment.Trials != 50 || cfg.Experiment.Seed != 12345 || cfg.Experiment.Workers != 2 {
		t.Errorf("Experiment = %+v", cfg.Experiment)
	}
	if cfg.Experiment.Only != "1-3" {
		t.Errorf("Experiment.Only = %q, want 1-3", cfg.Experiment.Only)
	}
	if cfg.Experiment.Agents != 100 {
		t.Errorf("Experiment.Agents = %d, want default 100", cfg.Experiment.Agents)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Events.Dir != "out" {
		t.Errorf("Events.Dir = %q, want out", cfg.Events.Dir)
	}

	entries := cfg.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Name != "boosted" || e.Protocol != phased.BoostName || e.Agents != 64 {
		t.Errorf("entry = %+v", e)
	}
	if len(e.PhaseLengths) != 2 || e.PhaseLengths[0] != 40 || e.PhaseLengths[1] != 30 {
		t.Errorf("PhaseLengths = %v, want [40 30]", e.PhaseLengths)
	}
	if e.SteadyLength != 20 || e.BoostDays != 12 {
		t.Errorf("entry = %+v", e)
	}
}

func TestLoadFrom_Env(t *testing.T) {
	t.Setenv("LIGHTBULB_EXPERIMENT_TRIALS", "25")
	t.Setenv("LIGHTBULB_EXPERIMENT_SEED", "99")
	t.Setenv("LIGHTBULB_LOG_LEVEL", "warn")

	cfg, err := LoadFrom(newViper(t, "experiment:\n  trials: 10\n"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Experiment.Trials != 25 {
		t.Errorf("Experiment.Trials = %d, want 25 from env", cfg.Experiment.Trials)
	}
	if cfg.Experiment.Seed != 99 {
		t.Errorf("Experiment.Seed = %d, want 99 from env", cfg.Experiment.Seed)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn from env", cfg.Log.Level)
	}
}
