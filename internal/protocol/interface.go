// Package protocol defines the contract shared by every light-bulb strategy
// and a registry the strategies add themselves to.
package protocol

import (
	"github.com/andywolf/lightbulb/internal/light"
)

// Agent is one participant of a trial. Its only channel to the other agents
// is the Light it was created with.
type Agent interface {
	// Init assigns the agent's identity and resets its private state.
	// It must not use randomness and may be called again before any Visit.
	Init(id int)

	// Visit is called when the scheduler picks this agent for the given day.
	// It reports whether the agent is now certain that every agent has
	// visited at least once.
	Visit(day int) bool
}

// Protocol builds the agents of one strategy for a fixed configuration.
type Protocol interface {
	// Name returns the registered protocol identifier
	Name() string

	// Agents returns the number of agents a trial of this protocol runs with
	Agents() int

	// NewAgent creates an uninitialised agent bound to the given light
	NewAgent(l *light.Light) Agent

	// Validate checks that the configuration is usable by this protocol
	Validate() error
}

// Config holds the parameters agreed on by all agents before a trial starts.
// A zero field means the parameter is not used by the protocol.
type Config struct {
	Protocol string `mapstructure:"protocol" yaml:"protocol"`
	Agents   int    `mapstructure:"agents" yaml:"agents"`

	// Window is the window length in days for the windowed torch protocols.
	Window int `mapstructure:"window" yaml:"window,omitempty"`

	// PhaseLengths is the tuned prefix of phase lengths for double-or-nothing;
	// SteadyLength is the length of every phase after the prefix.
	PhaseLengths []int `mapstructure:"phase_lengths" yaml:"phase_lengths,omitempty,flow"`
	SteadyLength int   `mapstructure:"steady_length" yaml:"steady_length,omitempty"`
	BoostDays    int   `mapstructure:"boost_days" yaml:"boost_days,omitempty"`

	// Two-stage counting.
	Assistants     int `mapstructure:"assistants" yaml:"assistants,omitempty"`
	FirstStageDays int `mapstructure:"first_stage_days" yaml:"first_stage_days,omitempty"`
	StageOneDays   int `mapstructure:"stage_one_days" yaml:"stage_one_days,omitempty"`
	StageTwoDays   int `mapstructure:"stage_two_days" yaml:"stage_two_days,omitempty"`
}
