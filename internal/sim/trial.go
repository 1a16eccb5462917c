// Package sim runs trials of a protocol against a visit scheduler and checks
// every declaration for soundness.
package sim

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/protocol"
)

// ErrUnsound marks a declaration made before every agent had visited.
var ErrUnsound = errors.New("unsound declaration")

// ErrAgentOutOfRange is returned when a scheduler names an agent that does
// not exist.
var ErrAgentOutOfRange = errors.New("scheduled agent out of range")

// Result is the outcome of one finished trial.
type Result struct {
	Protocol string
	Agents   int

	// Day is the day on which the declaration was made; Days is the number
	// of elapsed days including that one.
	Day  int
	Days int

	Sound    bool
	Missing  int
	Declarer int
	Flips    int
}

// Check returns an error wrapping ErrUnsound if the trial was not sound.
func (r Result) Check() error {
	if r.Sound {
		return nil
	}
	return fmt.Errorf("%w: %s agent %d declared on day %d with %d of %d agents unvisited",
		ErrUnsound, r.Protocol, r.Declarer, r.Day, r.Missing, r.Agents)
}

// Trial is a single run of a protocol: one light, one set of agents and a
// day counter, all constructed fresh.
type Trial struct {
	protocol protocol.Protocol
	light    *light.Light
	agents   []protocol.Agent
	visited  []bool
	missing  int
	day      int
	declarer int
	interp   *statekit.Interpreter[lifecycleContext]
}

// NewTrial creates the agents of p bound to a fresh light. The trial is in
// the not_started state until Start is called.
func NewTrial(p protocol.Protocol) (*Trial, error) {
	machine, err := lifecycle()
	if err != nil {
		return nil, fmt.Errorf("failed to build trial lifecycle: %w", err)
	}

	n := p.Agents()
	t := &Trial{
		protocol: p,
		light:    light.New(),
		agents:   make([]protocol.Agent, n),
		visited:  make([]bool, n),
		missing:  n,
		declarer: -1,
		interp:   statekit.NewInterpreter(machine),
	}
	for id := range t.agents {
		a := p.NewAgent(t.light)
		a.Init(id)
		t.agents[id] = a
	}
	t.interp.Start()
	return t, nil
}

// Start moves the trial to running. Day is 0.
func (t *Trial) Start() {
	if t.interp.Matches(StateNotStarted) {
		t.interp.Send(statekit.Event{Type: eventStart})
	}
}

// State returns the current lifecycle state.
func (t *Trial) State() statekit.StateID {
	return t.interp.State().Value
}

// Day returns the current day, which is the next day to be played.
func (t *Trial) Day() int {
	return t.day
}

// Step lets agent id visit on the current day and advances the day. It
// reports whether that agent declared, which terminates the trial.
func (t *Trial) Step(id int) (bool, error) {
	if !t.interp.Matches(StateRunning) {
		return false, fmt.Errorf("trial is %s, not %s", t.State(), StateRunning)
	}
	if id < 0 || id >= len(t.agents) {
		return false, fmt.Errorf("%w: %d not in [0, %d) on day %d", ErrAgentOutOfRange, id, len(t.agents), t.day)
	}

	if !t.visited[id] {
		t.visited[id] = true
		t.missing--
	}

	day := t.day
	declared := t.agents[id].Visit(day)
	t.day++
	if declared {
		t.declarer = id
		t.interp.Send(statekit.Event{Type: eventDeclare})
	}
	return declared, nil
}

// Result returns the outcome of a terminated trial.
func (t *Trial) Result() (Result, error) {
	if !t.interp.Done() {
		return Result{}, fmt.Errorf("trial is %s, not %s", t.State(), StateTerminated)
	}
	return Result{
		Protocol: t.protocol.Name(),
		Agents:   len(t.agents),
		Day:      t.day - 1,
		Days:     t.day,
		Sound:    t.missing == 0,
		Missing:  t.missing,
		Declarer: t.declarer,
		Flips:    t.light.Flips(),
	}, nil
}

// RunTrial plays p against sched until an agent declares. There is no day
// limit: a protocol that never declares never returns unless the scheduler
// fails.
func RunTrial(p protocol.Protocol, sched Scheduler) (Result, error) {
	t, err := NewTrial(p)
	if err != nil {
		return Result{}, err
	}
	t.Start()

	for {
		id, err := sched.Next(t.day)
		if err != nil {
			return Result{}, fmt.Errorf("day %d: %w", t.day, err)
		}
		declared, err := t.Step(id)
		if err != nil {
			return Result{}, err
		}
		if declared {
			return t.Result()
		}
	}
}
