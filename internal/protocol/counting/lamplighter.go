package counting

import (
	"github.com/andywolf/lightbulb/internal/light"
)

// lamplighterAgent makes no assumption about how the light starts out.
//
// Nobody but the collector touches the light until they have seen it both on
// and off, and the light cannot change before the collector's first visit,
// so whatever the collector finds then is the unknown initial state and is
// not counted. From then on the collector toggles: a lit light it did not
// light itself is a contribution and is counted, an unlit one it lights so
// that everybody keeps seeing both states.
type lamplighterAgent struct {
	light *light.Light
	n     int
	id    int

	sawOn       bool
	sawOff      bool
	contributed bool

	started bool
	own     bool // collector: the light is on because the collector lit it
	count   int
}

func (a *lamplighterAgent) Init(id int) {
	*a = lamplighterAgent{light: a.light, n: a.n, id: id}
}

func (a *lamplighterAgent) Visit(day int) bool {
	if a.id == 0 {
		return a.collect()
	}

	on := a.light.On()
	if on {
		a.sawOn = true
	} else {
		a.sawOff = true
	}
	if !a.contributed && a.sawOn && a.sawOff && !on {
		a.light.Set(true)
		a.contributed = true
	}
	return false
}

func (a *lamplighterAgent) collect() bool {
	switch {
	case !a.started:
		a.started = true
		a.count = 1
		a.light.Set(true)
		a.own = true
	case a.light.On():
		a.light.Set(false)
		if !a.own {
			a.count++
		}
		a.own = false
	default:
		a.light.Set(true)
		a.own = true
	}
	return a.count >= a.n
}
