// Package counting implements the strategies built around a single collector
// that is the only agent allowed to switch the light off, and the
// information snowball, in which every agent keeps its own tally.
package counting

import (
	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/protocol"
)

func init() {
	protocol.Register(SimpleName, func(cfg protocol.Config) protocol.Protocol {
		return newCounting(SimpleName, cfg, func(n int, l *light.Light) protocol.Agent { return &simpleAgent{light: l, n: n} })
	})
	protocol.Register(DayOneName, func(cfg protocol.Config) protocol.Protocol {
		return newCounting(DayOneName, cfg, func(n int, l *light.Light) protocol.Agent { return &dayOneAgent{light: l, n: n} })
	})
	protocol.Register(LamplighterName, func(cfg protocol.Config) protocol.Protocol {
		return newCounting(LamplighterName, cfg, func(n int, l *light.Light) protocol.Agent { return &lamplighterAgent{light: l, n: n} })
	})
	protocol.Register(InformationName, func(cfg protocol.Config) protocol.Protocol {
		return newCounting(InformationName, cfg, func(n int, l *light.Light) protocol.Agent { return &informationAgent{light: l, n: n} })
	})
}
