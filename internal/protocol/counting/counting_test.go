package counting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/protocol"
	"github.com/andywolf/lightbulb/internal/sim"
)

func get(t *testing.T, name string, agents int) protocol.Protocol {
	t.Helper()
	p, err := protocol.Get(protocol.Config{Protocol: name, Agents: agents})
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	return p
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{SimpleName, DayOneName, LamplighterName, InformationName} {
		assert.Contains(t, protocol.List(), name)
		assert.Equal(t, name, get(t, name, 3).Name())
	}
}

func TestValidate_RejectsNoAgents(t *testing.T) {
	p, err := protocol.Get(protocol.Config{Protocol: SimpleName})
	require.NoError(t, err)
	assert.Error(t, p.Validate())
}

func TestSimple_Example(t *testing.T) {
	res, err := sim.RunTrial(get(t, SimpleName, 3), sim.NewScripted(1, 2, 0, 1, 2, 0))
	require.NoError(t, err)

	assert.Equal(t, 5, res.Day)
	assert.Equal(t, 0, res.Declarer)
	assert.True(t, res.Sound)
}

func TestSimple_SingleAgent(t *testing.T) {
	res, err := sim.RunTrial(get(t, SimpleName, 1), sim.NewScripted(0))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Day)
	assert.True(t, res.Sound)
}

func TestDayOne_CollectorCountsDayZeroVisitor(t *testing.T) {
	// Agent 2 lights on day 0, agent 1 becomes the collector on day 1 and
	// counts both itself and agent 2.
	res, err := sim.RunTrial(get(t, DayOneName, 3), sim.NewScripted(2, 1, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Day)
	assert.Equal(t, 1, res.Declarer)
	assert.True(t, res.Sound)
}

func TestDayOne_SameVisitorNotCountedTwice(t *testing.T) {
	// Agent 1 visits on days 0 and 1: its own light must not count again.
	res, err := sim.RunTrial(get(t, DayOneName, 3), sim.NewScripted(1, 1, 2, 1, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 5, res.Day)
	assert.True(t, res.Sound)
}

func TestLamplighter_Example(t *testing.T) {
	res, err := sim.RunTrial(get(t, LamplighterName, 3), sim.NewScripted(1, 0, 1, 2, 0, 1, 0, 2, 0))
	require.NoError(t, err)

	assert.Equal(t, 8, res.Day)
	assert.Equal(t, 0, res.Declarer)
	assert.True(t, res.Sound)
}

func TestLamplighter_NoTouchBeforeCollector(t *testing.T) {
	l := light.New()
	p := get(t, LamplighterName, 4)
	agents := make([]protocol.Agent, 4)
	for id := range agents {
		agents[id] = p.NewAgent(l)
		agents[id].Init(id)
	}

	for day, id := range []int{1, 2, 3, 1, 2, 3} {
		assert.False(t, agents[id].Visit(day))
	}
	assert.Equal(t, 0, l.Flips(), "nobody may touch the light before the collector")

	agents[0].Visit(6)
	assert.True(t, l.On(), "collector lights on its first visit")
	assert.Equal(t, 1, l.Flips())
}

func TestInformation_SpreadsKnowledge(t *testing.T) {
	res, err := sim.RunTrial(get(t, InformationName, 2), sim.NewScripted(0, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Day)
	assert.Equal(t, 1, res.Declarer)
	assert.True(t, res.Sound)
}

func TestInformation_InitResets(t *testing.T) {
	l := light.New()
	a := get(t, InformationName, 2).NewAgent(l)
	a.Init(0)
	a.Visit(0)
	assert.True(t, l.On())

	l.Set(false)
	a.Init(1)
	assert.False(t, a.Visit(2), "knowledge from the previous trial must be gone")
}

func TestCounting_SoundUnderRandomSchedules(t *testing.T) {
	for _, name := range []string{SimpleName, DayOneName, LamplighterName, InformationName} {
		p := get(t, name, 8)
		for seed := uint64(1); seed <= 3; seed++ {
			for trial := range 40 {
				res, err := sim.RunTrial(p, sim.NewUniform(p.Agents(), seed, uint64(trial)))
				require.NoError(t, err)
				require.NoError(t, res.Check(), "%s seed %d trial %d", name, seed, trial)
			}
		}
	}
}
