package sim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andywolf/lightbulb/internal/events"
	"github.com/andywolf/lightbulb/internal/light"
	"github.com/andywolf/lightbulb/internal/logging"
	"github.com/andywolf/lightbulb/internal/protocol"
	"github.com/andywolf/lightbulb/internal/protocol/counting"
	"github.com/andywolf/lightbulb/internal/protocol/phased"
	"github.com/andywolf/lightbulb/internal/protocol/torch"
)

// eagerProtocol declares on the very first visit, which is unsound for any
// N > 1.
type eagerProtocol struct{ n int }

func (p eagerProtocol) Name() string                         { return "eager" }
func (p eagerProtocol) Agents() int                          { return p.n }
func (p eagerProtocol) NewAgent(*light.Light) protocol.Agent { return eagerAgent{} }
func (p eagerProtocol) Validate() error                      { return nil }

type eagerAgent struct{}

func (eagerAgent) Init(int)       {}
func (eagerAgent) Visit(int) bool { return true }

type memoryRecords struct {
	records []events.TrialRecord
}

func (m *memoryRecords) Write(records []events.TrialRecord) error {
	m.records = append(m.records, records...)
	return nil
}

func mustGet(t *testing.T, cfg protocol.Config) protocol.Protocol {
	t.Helper()
	p, err := protocol.Get(cfg)
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	return p
}

// smallConfigs returns a tractable configuration of every registered protocol.
func smallConfigs() []protocol.Config {
	return []protocol.Config{
		{Protocol: torch.SequentialName, Agents: 4},
		{Protocol: torch.WindowedName, Agents: 5, Window: 4},
		{Protocol: torch.SnowballName, Agents: 5, Window: 4},
		{Protocol: counting.SimpleName, Agents: 10},
		{Protocol: counting.DayOneName, Agents: 10},
		{Protocol: counting.LamplighterName, Agents: 10},
		{Protocol: counting.InformationName, Agents: 6},
		{Protocol: phased.DoublingName, Agents: 10, PhaseLengths: []int{20, 15}, SteadyLength: 10},
		{Protocol: phased.BoostName, Agents: 10, PhaseLengths: []int{20, 15}, SteadyLength: 10, BoostDays: 6},
		{Protocol: phased.TwoStageName, Agents: 12, Assistants: 3, FirstStageDays: 60, StageOneDays: 40, StageTwoDays: 40},
		{Protocol: phased.TwoStageImprovedName, Agents: 13, Assistants: 3, FirstStageDays: 60, StageOneDays: 40, StageTwoDays: 40},
	}
}

func TestRunTrial_SequentialPassExample(t *testing.T) {
	p := mustGet(t, protocol.Config{Protocol: torch.SequentialName, Agents: 4})
	sched := NewScripted(0, 1, 2, 3, 1, 2, 3)

	res, err := RunTrial(p, sched)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Day)
	assert.Equal(t, 4, res.Days)
	assert.Equal(t, 3, res.Declarer)
	assert.True(t, res.Sound)
	assert.NoError(t, res.Check())

	// The trial stops drawing from the script once agent 3 declares.
	next, err := sched.Next(res.Days)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestRunTrial_SimpleCountExample(t *testing.T) {
	p := mustGet(t, protocol.Config{Protocol: counting.SimpleName, Agents: 3})

	res, err := RunTrial(p, NewScripted(1, 2, 0, 1, 2, 0))
	require.NoError(t, err)

	assert.Equal(t, 5, res.Day)
	assert.Equal(t, 6, res.Days)
	assert.Equal(t, 0, res.Declarer)
	assert.True(t, res.Sound)
	// 1 lights, 0 collects, 2 lights, 0 collects.
	assert.Equal(t, 4, res.Flips)
}

func TestRunTrial_ScheduleExhausted(t *testing.T) {
	p := mustGet(t, protocol.Config{Protocol: torch.SequentialName, Agents: 4})

	_, err := RunTrial(p, NewScripted(0, 1))
	assert.ErrorIs(t, err, ErrScheduleExhausted)
}

func TestRunTrial_AgentOutOfRange(t *testing.T) {
	p := mustGet(t, protocol.Config{Protocol: counting.SimpleName, Agents: 3})

	_, err := RunTrial(p, NewScripted(1, 3))
	assert.ErrorIs(t, err, ErrAgentOutOfRange)

	_, err = RunTrial(p, NewScripted(-1))
	assert.ErrorIs(t, err, ErrAgentOutOfRange)
}

func TestRunTrial_FlagsUnsoundDeclaration(t *testing.T) {
	res, err := RunTrial(eagerProtocol{n: 3}, NewScripted(2))
	require.NoError(t, err)

	assert.False(t, res.Sound)
	assert.Equal(t, 2, res.Missing)
	assert.Equal(t, 2, res.Declarer)
	assert.Equal(t, 0, res.Day)
	assert.ErrorIs(t, res.Check(), ErrUnsound)
}

func TestRunTrial_SingleAgent(t *testing.T) {
	res, err := RunTrial(eagerProtocol{n: 1}, NewScripted(0))
	require.NoError(t, err)
	assert.True(t, res.Sound)
	assert.Equal(t, 1, res.Days)
}

func TestTrial_Lifecycle(t *testing.T) {
	p := mustGet(t, protocol.Config{Protocol: torch.SequentialName, Agents: 2})

	trial, err := NewTrial(p)
	require.NoError(t, err)
	assert.Equal(t, StateNotStarted, trial.State())

	_, err = trial.Step(0)
	assert.Error(t, err, "stepping before start")
	_, err = trial.Result()
	assert.Error(t, err, "result before termination")

	trial.Start()
	assert.Equal(t, StateRunning, trial.State())
	assert.Equal(t, 0, trial.Day())

	declared, err := trial.Step(0)
	require.NoError(t, err)
	assert.False(t, declared)
	assert.Equal(t, StateRunning, trial.State())

	declared, err = trial.Step(1)
	require.NoError(t, err)
	assert.True(t, declared)
	assert.Equal(t, StateTerminated, trial.State())

	_, err = trial.Step(0)
	assert.Error(t, err, "stepping after termination")

	res, err := trial.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Day)
	assert.True(t, res.Sound)
}

func TestRunTrial_SoundForEveryProtocol(t *testing.T) {
	configs := smallConfigs()
	require.Len(t, configs, len(protocol.List()), "every registered protocol needs a configuration")

	for i, cfg := range configs {
		p := mustGet(t, cfg)
		t.Run(cfg.Protocol, func(t *testing.T) {
			for _, seed := range []uint64{1, 7, 20240601} {
				for trial := range 25 {
					res, err := RunTrial(p, NewUniform(p.Agents(), seed, stream(i+1, trial)))
					require.NoError(t, err)
					require.NoError(t, res.Check(), "seed %d trial %d", seed, trial)
					assert.GreaterOrEqual(t, res.Days, p.Agents())
				}
			}
		})
	}
}

func TestUniform_Deterministic(t *testing.T) {
	draw := func(seed, s uint64) []int {
		u := NewUniform(100, seed, s)
		ids := make([]int, 50)
		for i := range ids {
			id, err := u.Next(i)
			require.NoError(t, err)
			require.True(t, id >= 0 && id < 100)
			ids[i] = id
		}
		return ids
	}

	assert.Equal(t, draw(42, 3), draw(42, 3))
	assert.NotEqual(t, draw(42, 3), draw(42, 4))
	assert.NotEqual(t, draw(42, 3), draw(43, 3))
}

func TestStream_Distinct(t *testing.T) {
	seen := make(map[uint64]string)
	for index := 1; index <= 12; index++ {
		for trial := range 1000 {
			s := stream(index, trial)
			key := fmt.Sprintf("%d/%d", index, trial)
			if prev, ok := seen[s]; ok {
				t.Fatalf("stream %d shared by %s and %s", s, prev, key)
			}
			seen[s] = key
		}
	}
}

func TestRunner_DeterministicAcrossWorkers(t *testing.T) {
	p := mustGet(t, protocol.Config{Protocol: counting.SimpleName, Agents: 20})
	job := Job{Index: 4, Name: "simple-count", Protocol: p}

	run := func(workers int) ([]events.TrialRecord, error) {
		records := &memoryRecords{}
		r := &Runner{Trials: 40, Workers: workers, Seed: 99, RunID: "run-1", Records: records}
		agg, err := r.Run(context.Background(), job)
		if err != nil {
			return nil, err
		}
		assert.Equal(t, 40, agg.Trials)
		assert.Equal(t, 0, agg.Violations)
		assert.Equal(t, "simple-count", agg.Name)
		assert.Equal(t, 20, agg.Agents)
		for i := range records.records {
			records.records[i].Timestamp = time.Time{}
		}
		return records.records, nil
	}

	one, err := run(1)
	require.NoError(t, err)
	many, err := run(8)
	require.NoError(t, err)

	require.Len(t, one, 40)
	for i, rec := range many {
		assert.Equal(t, i, rec.Trial)
	}
	assert.Equal(t, one, many)
}

func TestRunner_CountsViolations(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(logging.Config{Level: "debug", Format: "json", Output: buf})
	r := &Runner{Trials: 10, Workers: 2, Seed: 1, RunID: "run-123", Logger: logger}

	agg, err := r.Run(context.Background(), Job{Index: 1, Name: "eager", Protocol: eagerProtocol{n: 5}})
	require.NoError(t, err)

	assert.Equal(t, 10, agg.Trials)
	assert.Equal(t, 10, agg.Violations)
	assert.Equal(t, 1, agg.Min)
	assert.Equal(t, 1, agg.Max)
	assert.Contains(t, buf.String(), "soundness violation")
	assert.Contains(t, buf.String(), `"run_id":"run-123"`)
}

func TestRunner_Cancelled(t *testing.T) {
	p := mustGet(t, protocol.Config{Protocol: counting.SimpleName, Agents: 5})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Trials: 10}
	_, err := r.Run(ctx, Job{Index: 1, Name: "simple-count", Protocol: p})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunner_RunAll(t *testing.T) {
	jobs := []Job{
		{Index: 1, Name: "a", Protocol: mustGet(t, protocol.Config{Protocol: counting.SimpleName, Agents: 5})},
		{Index: 2, Name: "b", Protocol: mustGet(t, protocol.Config{Protocol: torch.SequentialName, Agents: 3})},
	}
	r := &Runner{Trials: 5, Seed: 3}

	aggs, err := r.RunAll(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	assert.Equal(t, "a", aggs[0].Name)
	assert.Equal(t, "b", aggs[1].Name)
	for _, agg := range aggs {
		assert.Equal(t, 5, agg.Trials)
		assert.LessOrEqual(t, float64(agg.Min), agg.Mean())
		assert.GreaterOrEqual(t, float64(agg.Max), agg.Mean())
	}
}
