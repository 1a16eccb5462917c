// Package phased implements the phase-encoded counting strategies.
//
// Identity 0 is the collector and keeps the master total; everybody else
// starts out holding one unit, themselves. Time is cut into phases by a
// Schedule and the light means something different in every phase. A light
// left on when a phase ends belongs to the old meaning, so the visitor on the
// first day of the next phase takes it at its old value and switches it off
// before anything else happens.
//
// Units only ever leave an agent during that agent's own visit, so a
// collector whose total reaches N has proof that all N agents visited.
package phased

import (
	"github.com/andywolf/lightbulb/internal/protocol"
)

func init() {
	protocol.Register(DoublingName, func(cfg protocol.Config) protocol.Protocol {
		return NewDoubling(cfg, false)
	})
	protocol.Register(BoostName, func(cfg protocol.Config) protocol.Protocol {
		return NewDoubling(cfg, true)
	})
	protocol.Register(TwoStageName, func(cfg protocol.Config) protocol.Protocol {
		return NewTwoStage(cfg, false)
	})
	protocol.Register(TwoStageImprovedName, func(cfg protocol.Config) protocol.Protocol {
		return NewTwoStage(cfg, true)
	})
}
