package counting

import (
	"github.com/andywolf/lightbulb/internal/light"
)

// informationAgent treats the light written on day d as a statement about
// identity d mod N: "that agent is known to have visited". Every visitor
// reads what yesterday's visitor said about yesterday's identity, then says
// what it knows about today's. Knowledge spreads one identity per day, so
// every agent can finish on its own, but slowly.
type informationAgent struct {
	light *light.Light
	n     int
	id    int

	known []bool
	count int
}

func (a *informationAgent) Init(id int) {
	a.id = id
	a.known = make([]bool, a.n)
	a.count = 0
}

func (a *informationAgent) learn(id int) {
	if !a.known[id] {
		a.known[id] = true
		a.count++
	}
}

func (a *informationAgent) Visit(day int) bool {
	a.learn(a.id)
	if day > 0 && a.light.On() {
		a.learn((day - 1) % a.n)
	}
	a.light.Set(a.known[day%a.n])
	return a.count == a.n
}
