package counting

import (
	"github.com/andywolf/lightbulb/internal/light"
)

// simpleAgent is the textbook strategy. Identity 0 collects: it counts
// itself once and then every light it switches off. Everybody else switches
// the light on the first time they find it off, and never again.
type simpleAgent struct {
	light *light.Light
	n     int
	id    int

	contributed bool
	started     bool
	count       int
}

func (a *simpleAgent) Init(id int) {
	a.id = id
	a.contributed = false
	a.started = false
	a.count = 0
}

func (a *simpleAgent) Visit(day int) bool {
	if a.id != 0 {
		if !a.contributed && !a.light.On() {
			a.light.Set(true)
			a.contributed = true
		}
		return false
	}

	if !a.started {
		a.started = true
		a.count = 1
	}
	if a.light.On() {
		a.light.Set(false)
		a.count++
	}
	return a.count >= a.n
}

// dayOneAgent picks the collector by schedule instead of by identity: the
// agent visiting on day 1 collects. It always finds the light lit by the
// day-0 visitor, and if that visitor was itself it does not count it twice.
type dayOneAgent struct {
	light *light.Light
	n     int
	id    int

	contributed bool
	collector   bool
	count       int
}

func (a *dayOneAgent) Init(id int) {
	a.id = id
	a.contributed = false
	a.collector = false
	a.count = 0
}

func (a *dayOneAgent) Visit(day int) bool {
	if day == 1 {
		a.collector = true
		a.count = 1
		if a.light.On() {
			a.light.Set(false)
			if !a.contributed {
				a.count++
			}
		}
		return a.count >= a.n
	}

	if a.collector {
		if a.light.On() {
			a.light.Set(false)
			a.count++
		}
		return a.count >= a.n
	}

	if !a.contributed && !a.light.On() {
		a.light.Set(true)
		a.contributed = true
	}
	return false
}
