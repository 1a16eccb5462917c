package phased

import (
	"fmt"
	"math/bits"

	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/protocol"
)

const (
	// DoublingName is the registered name of double-or-nothing.
	DoublingName = "double-or-nothing"
	// BoostName is the registered name of double-or-nothing with a boost chain.
	BoostName = "double-or-nothing-boost"

	// DefaultBoostDays is the length of the boost chain when none is configured.
	DefaultBoostDays = 12
)

// Doubling binds phase k to bit k mod B of the running total, where B is the
// number of bits needed to write N. A lit light in that phase is a token
// worth 2^bit. An agent holding that bit lights the light when it is off and
// takes a lit token when it is on, which doubles the token into the next bit
// up. Agents without the bit leave a lit token for the collector.
//
// With boost enabled the first BoostDays days run a chain instead: a lit
// light on day d is worth d units.
type Doubling struct {
	agents   int
	boost    int
	bitCount int
	schedule *Schedule
	err      error
}

// NewDoubling creates double-or-nothing, with the boost chain when boost is
// true.
func NewDoubling(cfg protocol.Config, boost bool) *Doubling {
	p := &Doubling{agents: cfg.Agents}
	if boost {
		p.boost = cfg.BoostDays
		if p.boost == 0 {
			p.boost = DefaultBoostDays
		}
	}
	if cfg.Agents > 0 {
		p.bitCount = bits.Len(uint(cfg.Agents))
	}
	p.schedule, p.err = NewSchedule(p.boost, cfg.PhaseLengths, []int{cfg.SteadyLength})
	return p
}

// Name returns the protocol identifier
func (p *Doubling) Name() string {
	if p.boost > 0 {
		return BoostName
	}
	return DoublingName
}

// Agents returns the number of agents per trial
func (p *Doubling) Agents() int { return p.agents }

// NewAgent creates an agent bound to l
func (p *Doubling) NewAgent(l *light.Light) protocol.Agent {
	return &doublingAgent{p: p, light: l}
}

// Validate checks the agent count and the phase schedule
func (p *Doubling) Validate() error {
	if err := protocol.ValidateAgents(p.agents); err != nil {
		return err
	}
	if p.err != nil {
		return fmt.Errorf("invalid phase schedule: %w", p.err)
	}
	return nil
}

// weight returns the value of a token in phase index; index -1 is the boost
// chain, whose value is the day the chain was cut off at.
func (p *Doubling) weight(index int) int {
	if index < 0 {
		return p.boost
	}
	return 1 << (index % p.bitCount)
}

type doublingAgent struct {
	p       *Doubling
	light   *light.Light
	id      int
	count   int // master total for the collector
	visited bool
}

func (a *doublingAgent) Init(id int) {
	a.id = id
	a.count = 1
	a.visited = false
}

func (a *doublingAgent) done() bool {
	return a.id == 0 && a.count == a.p.agents
}

func (a *doublingAgent) Visit(day int) bool {
	first := !a.visited
	a.visited = true

	ph := a.p.schedule.At(day)
	if ph.Index < 0 {
		a.chain(day, first)
		return a.done()
	}

	if day == ph.Start && a.light.On() {
		a.count += a.p.weight(ph.Index - 1)
		a.light.Set(false)
		return a.done()
	}

	w := a.p.weight(ph.Index)
	holds := a.id != 0 && a.count&w != 0
	switch {
	case a.light.On() && (a.id == 0 || holds):
		a.count += w
		a.light.Set(false)
	case !a.light.On() && holds:
		a.count -= w
		a.light.Set(true)
	}
	return a.done()
}

// chain runs one visit of the boost period. The light, when on at the start
// of day d, carries the units of the d distinct agents that visited on days
// 0..d-1.
func (a *doublingAgent) chain(day int, first bool) {
	if day == 0 {
		a.count--
		a.light.Set(true)
		return
	}
	if !a.light.On() {
		return
	}
	if first && a.id != 0 {
		a.count--
		return
	}
	a.count += day
	a.light.Set(false)
}
