package torch

import (
	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/protocol"
)

// SnowballName is the registered name of the windowed pass with snowball.
const SnowballName = "windowed-pass-snowball"

// Snowball runs the windowed pass, but a lit light in the window of slot s is
// a broadcast: "identities 0..s have all visited". Anyone who knows that much
// may light it, anyone who sees it learns it, and anyone whose own coverage
// becomes complete declares.
type Snowball struct {
	agents int
	window int
}

// NewSnowball creates the snowball variant of the windowed pass.
func NewSnowball(cfg protocol.Config) *Snowball {
	return &Snowball{agents: cfg.Agents, window: cfg.Window}
}

// Name returns the protocol identifier
func (p *Snowball) Name() string { return SnowballName }

// Agents returns the number of agents per trial
func (p *Snowball) Agents() int { return p.agents }

// NewAgent creates an agent bound to l
func (p *Snowball) NewAgent(l *light.Light) protocol.Agent {
	return &snowballAgent{light: l, clock: windowClock{n: p.agents, length: p.window}}
}

// Validate checks the agent count and window length
func (p *Snowball) Validate() error {
	if err := protocol.ValidateAgents(p.agents); err != nil {
		return err
	}
	return validateWindow(p.window)
}

type snowballAgent struct {
	light    *light.Light
	clock    windowClock
	id       int
	coverage []bool
	covered  int
	prefix   int // identities 0..prefix-1 are all covered
}

func (a *snowballAgent) Init(id int) {
	a.id = id
	a.coverage = make([]bool, a.clock.n)
	a.covered = 0
	a.prefix = 0
}

func (a *snowballAgent) mark(id int) {
	if a.coverage[id] {
		return
	}
	a.coverage[id] = true
	a.covered++
	for a.prefix < len(a.coverage) && a.coverage[a.prefix] {
		a.prefix++
	}
}

func (a *snowballAgent) Visit(day int) bool {
	a.mark(a.id)

	if a.clock.resetDay(day) {
		a.light.Set(false)
		return a.covered == a.clock.n
	}

	s := a.clock.slot(day)
	if a.light.On() {
		for i := a.prefix; i <= s; i++ {
			a.mark(i)
		}
	} else if a.prefix > s {
		a.light.Set(true)
	}
	return a.covered == a.clock.n
}
