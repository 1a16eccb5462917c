// Package torch implements the torch-passing strategies.
//
// Knowledge moves along the identities in a fixed order: holding the torch
// means "every identity up to mine has visited". The order is tied to the day
// number, which all agents can compute on their own, so an agent seeing the
// light on during a slot it is entitled to act in knows exactly who lit it.
// Agents that are not entitled to the light in the current slot switch it
// off so that a stale offer never leaks into a later slot.
package torch

import (
	"github.com/andywolf/lightbulb/internal/protocol"
)

func init() {
	protocol.Register(SequentialName, func(cfg protocol.Config) protocol.Protocol {
		return NewSequential(cfg)
	})
	protocol.Register(WindowedName, func(cfg protocol.Config) protocol.Protocol {
		return NewWindowed(cfg)
	})
	protocol.Register(SnowballName, func(cfg protocol.Config) protocol.Protocol {
		return NewSnowball(cfg)
	})
}
