package torch

import (
	"fmt"

	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/protocol"
)

// WindowedName is the registered name of the windowed torch pass.
const WindowedName = "windowed-pass"

// Windowed groups days into windows of a fixed length. Window w belongs to
// slot s = w mod N: during it the holder s may light the light and s+1 may
// take the torch. The last day of each window resets the light.
type Windowed struct {
	agents int
	window int
}

// NewWindowed creates the windowed torch pass.
func NewWindowed(cfg protocol.Config) *Windowed {
	return &Windowed{agents: cfg.Agents, window: cfg.Window}
}

// Name returns the protocol identifier
func (p *Windowed) Name() string { return WindowedName }

// Agents returns the number of agents per trial
func (p *Windowed) Agents() int { return p.agents }

// NewAgent creates an agent bound to l
func (p *Windowed) NewAgent(l *light.Light) protocol.Agent {
	return &windowedAgent{light: l, clock: windowClock{n: p.agents, length: p.window}}
}

// Validate checks the agent count and window length
func (p *Windowed) Validate() error {
	if err := protocol.ValidateAgents(p.agents); err != nil {
		return err
	}
	return validateWindow(p.window)
}

// validateWindow requires two usable days in front of the reset day: one to
// make the offer and a later one to take it.
func validateWindow(window int) error {
	if window < 3 {
		return fmt.Errorf("window must be at least 3 days, got %d", window)
	}
	return nil
}

// windowClock maps a day onto its window slot. Every agent derives the same
// answer from the day number alone.
type windowClock struct {
	n      int
	length int
}

// slot returns the identity owning the window containing day.
func (c windowClock) slot(day int) int {
	return (day / c.length) % c.n
}

// resetDay reports whether day is the last day of its window.
func (c windowClock) resetDay(day int) bool {
	return day%c.length == c.length-1
}

type windowedAgent struct {
	light   *light.Light
	clock   windowClock
	id      int
	holding bool
}

func (a *windowedAgent) Init(id int) {
	a.id = id
	a.holding = false
}

func (a *windowedAgent) Visit(day int) bool {
	if a.id == 0 {
		a.holding = true
	}
	if a.holding && a.id == a.clock.n-1 {
		return true
	}

	if a.clock.resetDay(day) {
		a.light.Set(false)
		return false
	}

	s := a.clock.slot(day)
	switch {
	case a.id == s && a.holding && !a.light.On():
		a.light.Set(true)
	case a.id == s+1 && a.light.On():
		a.light.Set(false)
		a.holding = true
		return a.id == a.clock.n-1
	}
	return false
}
