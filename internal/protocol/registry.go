package protocol

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknown is returned by Get for a protocol name nobody registered.
var ErrUnknown = errors.New("unknown protocol")

// Factory builds a Protocol from its configuration.
type Factory func(cfg Config) Protocol

var (
	registry     = make(map[string]Factory)
	registryLock sync.RWMutex
)

// Register adds a protocol factory to the registry
func Register(name string, factory Factory) {
	registryLock.Lock()
	defer registryLock.Unlock()
	registry[name] = factory
}

// Get builds the protocol named by cfg.Protocol
func Get(cfg Config) (Protocol, error) {
	registryLock.RLock()
	defer registryLock.RUnlock()

	factory, ok := registry[cfg.Protocol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, cfg.Protocol)
	}

	return factory(cfg), nil
}

// List returns all registered protocol names in sorted order
func List() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateAgents is the check every protocol shares: a trial needs at least
// one agent.
func ValidateAgents(n int) error {
	if n < 1 {
		return fmt.Errorf("agents must be at least 1, got %d", n)
	}
	return nil
}
