package sim

import (
	"sync"

	"github.com/felixgeelhaar/statekit"
)

// Trial lifecycle states.
const (
	StateNotStarted statekit.StateID = "not_started"
	StateRunning    statekit.StateID = "running"
	StateTerminated statekit.StateID = "terminated"
)

// Trial lifecycle events.
const (
	eventStart   statekit.EventType = "START"
	eventDeclare statekit.EventType = "DECLARE"
)

// lifecycleContext is empty: everything a trial needs lives on Trial itself.
type lifecycleContext struct{}

// newLifecycleMachine creates the trial statechart:
// not_started -START-> running -DECLARE-> terminated.
func newLifecycleMachine() (*statekit.MachineConfig[lifecycleContext], error) {
	return statekit.NewMachine[lifecycleContext]("trial").
		WithInitial(StateNotStarted).
		WithContext(lifecycleContext{}).
		State(StateNotStarted).
			On(eventStart).Target(StateRunning).
			Done().
		State(StateRunning).
			On(eventDeclare).Target(StateTerminated).
			Done().
		State(StateTerminated).
			Final().
			Done().
		Build()
}

// lifecycle is built once and shared by every trial interpreter.
var lifecycle = sync.OnceValues(newLifecycleMachine)
