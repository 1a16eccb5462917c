// Package catalogue holds the list of protocol configurations an experiment
// runs, and turns it into simulation jobs.
package catalogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andywolf/lightbulb/internal/protocol"
	"github.com/andywolf/lightbulb/internal/protocol/counting"
	"github.com/andywolf/lightbulb/internal/protocol/phased"
	"github.com/andywolf/lightbulb/internal/protocol/torch"
	"github.com/andywolf/lightbulb/internal/sim"
)

// ErrNoEntries is returned when there is nothing to run.
var ErrNoEntries = errors.New("catalogue has no entries")

// Entry is one named protocol configuration.
type Entry struct {
	Name            string `mapstructure:"name" yaml:"name"`
	protocol.Config `mapstructure:",squash" yaml:",inline"`
}

// Default returns the built-in catalogue. Entries with zero agents take the
// experiment's agent count; the torch variants and information-snowball pin
// a small count because they scale badly.
//
// Doubling phases shrink with the bit because each bit has about half the
// tokens of the one below it. The two-stage first stage is shorter than it
// takes to fill every quota, so later stage-one phases finish the job.
func Default() []Entry {
	doublingPhases := []int{1600, 1100, 900, 800, 700, 600, 500}

	return []Entry{
		{Name: "sequential-pass", Config: protocol.Config{
			Protocol: torch.SequentialName, Agents: 5,
		}},
		{Name: "windowed-pass-10", Config: protocol.Config{
			Protocol: torch.WindowedName, Agents: 10, Window: 10,
		}},
		{Name: "windowed-pass-30", Config: protocol.Config{
			Protocol: torch.WindowedName, Agents: 10, Window: 30,
		}},
		{Name: "windowed-pass-snowball", Config: protocol.Config{
			Protocol: torch.SnowballName, Agents: 10, Window: 20,
		}},
		{Name: "information-snowball", Config: protocol.Config{
			Protocol: counting.InformationName, Agents: 20,
		}},
		{Name: "simple-count", Config: protocol.Config{
			Protocol: counting.SimpleName,
		}},
		{Name: "simple-count-day-one", Config: protocol.Config{
			Protocol: counting.DayOneName,
		}},
		{Name: "lamplighter", Config: protocol.Config{
			Protocol: counting.LamplighterName,
		}},
		{Name: "double-or-nothing", Config: protocol.Config{
			Protocol:     phased.DoublingName,
			PhaseLengths: doublingPhases,
			SteadyLength: 500,
		}},
		{Name: "double-or-nothing-boost", Config: protocol.Config{
			Protocol:     phased.BoostName,
			PhaseLengths: doublingPhases,
			SteadyLength: 500,
			BoostDays:    phased.DefaultBoostDays,
		}},
		{Name: "two-stage-count", Config: protocol.Config{
			Protocol:       phased.TwoStageName,
			Assistants:     10,
			FirstStageDays: 800,
			StageOneDays:   1200,
			StageTwoDays:   1000,
		}},
		{Name: "two-stage-count-improved", Config: protocol.Config{
			Protocol:       phased.TwoStageImprovedName,
			Assistants:     9,
			FirstStageDays: 800,
			StageOneDays:   1200,
			StageTwoDays:   1000,
		}},
	}
}

// Build constructs the protocol of e without validating it.
func Build(e Entry) (protocol.Protocol, error) {
	return protocol.Get(e.Config)
}

// Resolve fills in entry names and agent counts and rejects entries whose
// protocol is unknown or refuses its configuration. The input is not
// modified.
func Resolve(entries []Entry, defaultAgents int) ([]Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	resolved := make([]Entry, len(entries))
	seen := make(map[string]int, len(entries))

	for i, e := range entries {
		e.PhaseLengths = append([]int(nil), e.PhaseLengths...)
		if e.Name == "" {
			e.Name = e.Protocol
		}
		if e.Agents == 0 {
			e.Agents = defaultAgents
		}
		if prev, ok := seen[e.Name]; ok {
			return nil, fmt.Errorf("entry %d: name %q already used by entry %d", i+1, e.Name, prev)
		}
		seen[e.Name] = i + 1

		p, err := Build(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, e.Name, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, e.Name, err)
		}
		resolved[i] = e
	}
	return resolved, nil
}

// Jobs builds simulation jobs for the selected 1-based positions, in the
// order given and without repeats. An empty selection means every entry. Job
// indices are catalogue positions, so a job draws the same random streams
// whether or not the rest of the catalogue is selected.
func Jobs(entries []Entry, selected []int) ([]sim.Job, error) {
	if len(selected) == 0 {
		selected = make([]int, len(entries))
		for i := range entries {
			selected[i] = i + 1
		}
	}

	jobs := make([]sim.Job, 0, len(selected))
	picked := make(map[int]bool, len(selected))
	for _, index := range selected {
		if index < 1 || index > len(entries) {
			return nil, fmt.Errorf("catalogue entry %d out of range 1-%d", index, len(entries))
		}
		if picked[index] {
			continue
		}
		picked[index] = true

		e := entries[index-1]
		p, err := Build(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", index, e.Name, err)
		}
		jobs = append(jobs, sim.Job{Index: index, Name: e.Name, Protocol: p})
	}
	return jobs, nil
}

// Describe returns the parameters of e that its protocol uses.
func Describe(e Entry) string {
	parts := []string{fmt.Sprintf("agents=%d", e.Agents)}
	if e.Window > 0 {
		parts = append(parts, fmt.Sprintf("window=%d", e.Window))
	}
	if len(e.PhaseLengths) > 0 {
		parts = append(parts, fmt.Sprintf("phases=%v", e.PhaseLengths))
	}
	if e.SteadyLength > 0 {
		parts = append(parts, fmt.Sprintf("steady=%d", e.SteadyLength))
	}
	if e.BoostDays > 0 {
		parts = append(parts, fmt.Sprintf("boost=%d", e.BoostDays))
	}
	if e.Assistants > 0 {
		parts = append(parts, fmt.Sprintf("assistants=%d", e.Assistants))
	}
	if e.FirstStageDays > 0 {
		parts = append(parts, fmt.Sprintf("first_stage=%d", e.FirstStageDays))
	}
	if e.StageOneDays > 0 || e.StageTwoDays > 0 {
		parts = append(parts, fmt.Sprintf("stages=%d/%d", e.StageOneDays, e.StageTwoDays))
	}
	return strings.Join(parts, " ")
}
