package torch

import (
	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/protocol"
)

// SequentialName is the registered name of the sequential torch pass.
const SequentialName = "sequential-pass"

// Sequential pairs every day with one identity: day d belongs to d mod N.
// The torch can only move from an identity to its successor on two
// consecutive days, so it is slow but needs no parameters.
type Sequential struct {
	agents int
}

// NewSequential creates the sequential torch pass for cfg.Agents agents.
func NewSequential(cfg protocol.Config) *Sequential {
	return &Sequential{agents: cfg.Agents}
}

// Name returns the protocol identifier
func (p *Sequential) Name() string { return SequentialName }

// Agents returns the number of agents per trial
func (p *Sequential) Agents() int { return p.agents }

// NewAgent creates an agent bound to l
func (p *Sequential) NewAgent(l *light.Light) protocol.Agent {
	return &sequentialAgent{light: l, n: p.agents}
}

// Validate checks the agent count
func (p *Sequential) Validate() error {
	return protocol.ValidateAgents(p.agents)
}

type sequentialAgent struct {
	light   *light.Light
	n       int
	id      int
	holding bool
}

func (a *sequentialAgent) Init(id int) {
	a.id = id
	a.holding = false
}

func (a *sequentialAgent) Visit(day int) bool {
	if day%a.n != a.id {
		a.light.Set(false)
		return false
	}

	// Only yesterday's owner, our predecessor, can have lit the light.
	if a.id == 0 || a.light.On() {
		a.holding = true
	}
	if !a.holding {
		a.light.Set(false)
		return false
	}
	if a.id == a.n-1 {
		return true
	}

	// Offer the torch to tomorrow's owner.
	a.light.Set(true)
	return false
}
