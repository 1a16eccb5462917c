package counting

import (
	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/protocol"
)

// Registered protocol names.
const (
	SimpleName      = "simple-count"
	DayOneName      = "simple-count-day-one"
	LamplighterName = "lamplighter"
	InformationName = "information-snowball"
)

// Counting is a parameterless protocol: every variant here only needs the
// agent count.
type Counting struct {
	name   string
	agents int
	build  func(n int, l *light.Light) protocol.Agent
}

func newCounting(name string, cfg protocol.Config, build func(n int, l *light.Light) protocol.Agent) *Counting {
	return &Counting{name: name, agents: cfg.Agents, build: build}
}

// Name returns the protocol identifier
func (p *Counting) Name() string { return p.name }

// Agents returns the number of agents per trial
func (p *Counting) Agents() int { return p.agents }

// NewAgent creates an agent bound to l
func (p *Counting) NewAgent(l *light.Light) protocol.Agent {
	return p.build(p.agents, l)
}

// Validate checks the agent count
func (p *Counting) Validate() error {
	return protocol.ValidateAgents(p.agents)
}
