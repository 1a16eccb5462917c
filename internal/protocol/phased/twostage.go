package phased

import (
	"fmt"

	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/protocol"
)

const (
	// TwoStageName is the registered name of two-stage counting.
	TwoStageName = "two-stage-count"
	// TwoStageImprovedName is the registered name of two-stage counting with
	// the collector pre-credited.
	TwoStageImprovedName = "two-stage-count-improved"
)

// TwoStage alternates two kinds of phase. In stage one (even phases) a lit
// light is a single unit: agents with a spare unit hand it over and
// assistants soak units up until they hold a full quota, which they bank as
// a bundle. In stage two (odd phases) a lit light is a bundle: holders deliver
// and only the collector takes it.
//
// In the plain variant the collector is assistant 0 and adds the units it
// soaks up straight to its total. In the improved variant the collector only
// counts itself up front, and identities 1..A are the assistants, so the
// remaining N-1 units split evenly.
type TwoStage struct {
	agents     int
	assistants int
	improved   bool
	quota      int
	room       int // units the collector may take directly, itself included
	schedule   *Schedule
	err        error
}

// NewTwoStage creates two-stage counting, pre-crediting the collector when
// improved is true.
func NewTwoStage(cfg protocol.Config, improved bool) *TwoStage {
	p := &TwoStage{
		agents:     cfg.Agents,
		assistants: cfg.Assistants,
		improved:   improved,
	}

	if cfg.Assistants > 0 {
		if improved {
			p.quota = (cfg.Agents - 1) / cfg.Assistants
			p.room = 1
		} else {
			p.quota = cfg.Agents / cfg.Assistants
			p.room = p.quota
		}
	}

	var prefix []int
	if cfg.FirstStageDays > 0 {
		prefix = []int{cfg.FirstStageDays, cfg.StageTwoDays}
	}
	p.schedule, p.err = NewSchedule(0, prefix, []int{cfg.StageOneDays, cfg.StageTwoDays})
	return p
}

// Name returns the protocol identifier
func (p *TwoStage) Name() string {
	if p.improved {
		return TwoStageImprovedName
	}
	return TwoStageName
}

// Agents returns the number of agents per trial
func (p *TwoStage) Agents() int { return p.agents }

// NewAgent creates an agent bound to l
func (p *TwoStage) NewAgent(l *light.Light) protocol.Agent {
	return &stageAgent{p: p, light: l}
}

// Validate checks that the assistants split the agents into whole quotas.
func (p *TwoStage) Validate() error {
	if err := protocol.ValidateAgents(p.agents); err != nil {
		return err
	}
	if p.err != nil {
		return fmt.Errorf("invalid stage schedule: %w", p.err)
	}
	if p.assistants < 1 {
		return fmt.Errorf("assistants must be at least 1, got %d", p.assistants)
	}

	counted := p.agents
	if p.improved {
		counted--
	}
	if p.assistants > counted || counted%p.assistants != 0 {
		return fmt.Errorf("%d assistants do not divide %d agents evenly", p.assistants, counted)
	}
	return nil
}

// isAssistant reports whether identity id starts out collecting a quota.
func (p *TwoStage) isAssistant(id int) bool {
	if p.improved {
		return id >= 1 && id <= p.assistants
	}
	return id >= 1 && id < p.assistants
}

type stageAgent struct {
	p     *TwoStage
	light *light.Light
	id    int

	collecting bool // assistant still short of its quota
	held       int  // units toward the quota
	spare      int  // units to hand over in stage one
	bundles    int  // full bundles to deliver in stage two

	total int // collector only
	room  int // collector only
}

func (a *stageAgent) Init(id int) {
	*a = stageAgent{p: a.p, light: a.light, id: id}

	switch {
	case id == 0:
		a.total = 1
		a.room = a.p.room - 1
	case a.p.isAssistant(id):
		a.collecting = true
		a.held = 1
		a.bank()
	default:
		a.spare = 1
	}
}

func (a *stageAgent) Visit(day int) bool {
	ph := a.p.schedule.At(day)
	stageOne := ph.Index%2 == 0

	if day == ph.Start && a.light.On() {
		a.light.Set(false)
		if stageOne {
			a.takeBundle()
		} else {
			a.takeUnit()
		}
		return a.done()
	}

	on := a.light.On()
	if stageOne {
		switch {
		case on && a.canAbsorb():
			a.light.Set(false)
			a.absorb()
		case !on && a.spare > 0:
			a.spare--
			a.light.Set(true)
		}
		return a.done()
	}

	switch {
	case on && a.id == 0:
		a.light.Set(false)
		a.total += a.p.quota
	case !on && a.bundles > 0:
		a.bundles--
		a.light.Set(true)
	}
	return a.done()
}

func (a *stageAgent) done() bool {
	return a.id == 0 && a.total == a.p.agents
}

func (a *stageAgent) canAbsorb() bool {
	if a.id == 0 {
		return a.room > 0
	}
	return a.collecting
}

func (a *stageAgent) absorb() {
	if a.id == 0 {
		a.total++
		a.room--
		return
	}
	a.held++
	a.bank()
}

// bank turns a full quota into a bundle and stops collecting.
func (a *stageAgent) bank() {
	if a.held >= a.p.quota {
		a.bundles++
		a.held -= a.p.quota
		a.collecting = false
	}
}

// takeUnit handles a stage-one unit left lit at a stage boundary.
func (a *stageAgent) takeUnit() {
	if a.canAbsorb() {
		a.absorb()
		return
	}
	a.spare++
}

// takeBundle handles a bundle left lit at a stage boundary: the finder
// becomes responsible for delivering it.
func (a *stageAgent) takeBundle() {
	if a.id == 0 {
		a.total += a.p.quota
		return
	}
	a.bundles++
}
