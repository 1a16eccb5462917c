// Package light provides the single shared bit that agents of one trial
// communicate through.
package light

// Light is the shared signal. Each trial owns exactly one Light and hands it
// to every agent it creates; the scheduler guarantees only one agent touches
// it on any given day.
type Light struct {
	on    bool
	flips int
}

// New returns a Light that is switched off.
func New() *Light {
	return &Light{}
}

// On reports whether the light is currently on.
func (l *Light) On() bool {
	return l.on
}

// Set switches the light to the given state. Setting the state it already
// has is not counted as a flip.
func (l *Light) Set(on bool) {
	if l.on != on {
		l.flips++
	}
	l.on = on
}

// Flips returns how many times the light changed state.
func (l *Light) Flips() int {
	return l.flips
}
