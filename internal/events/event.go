// Package events records finished simulation trials as JSON lines so that a
// run can be analysed after the fact.
package events

import (
	"time"
)

// TrialRecord is one finished trial.
type TrialRecord struct {
	// Timestamp is when the trial finished.
	Timestamp time.Time `json:"timestamp"`

	// RunID identifies the experiment run.
	RunID string `json:"run_id"`

	// Index is the position of the configuration in the catalogue (1-indexed).
	Index int `json:"index"`

	// Configuration is the catalogue entry name.
	Configuration string `json:"configuration"`

	// Protocol is the registered protocol name.
	Protocol string `json:"protocol"`

	// Agents is the number of agents in the trial.
	Agents int `json:"agents"`

	// Trial is the trial number within the configuration (0-indexed).
	Trial int `json:"trial"`

	// Day is the day on which the declaration was made.
	Day int `json:"day"`

	// Days is the elapsed day count (Day + 1).
	Days int `json:"days"`

	// Sound reports whether every agent had visited before the declaration.
	Sound bool `json:"sound"`

	// Missing is the number of agents that had not visited (unsound trials only).
	Missing int `json:"missing,omitempty"`

	// Declarer is the id of the declaring agent.
	Declarer int `json:"declarer"`

	// Flips is the number of light transitions during the trial.
	Flips int `json:"flips"`
}
