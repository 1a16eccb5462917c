package sim

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"golang.org/x/sync/errgroup"

	"github.com/andywolf/lightbulb/internal/events"
	"github.com/andywolf/lightbulb/internal/logging"
	"github.com/andywolf/lightbulb/internal/protocol"
	"github.com/andywolf/lightbulb/internal/stats"
)

// RecordWriter receives the records of finished trials.
type RecordWriter interface {
	Write(records []events.TrialRecord) error
}

// Job is one catalogue configuration to run.
type Job struct {
	// Index is the 1-based catalogue position. It selects the random
	// streams of the job's trials.
	Index    int
	Name     string
	Protocol protocol.Protocol
}

// Runner runs a fixed number of independent trials per job on a bounded
// worker pool.
type Runner struct {
	Trials  int
	Workers int
	Seed    uint64
	RunID   string
	Logger  *bolt.Logger

	// Records is optional; when set every trial is written to it in trial
	// order.
	Records RecordWriter
}

// stream derives the random stream of one trial. Results depend only on
// (Seed, job index, trial index), never on scheduling of the workers.
func stream(index, trial int) uint64 {
	return uint64(index)<<32 | uint64(uint32(trial))
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (r *Runner) logger() *bolt.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}

// Run plays r.Trials trials of job and folds them into an aggregate.
// Unsound trials are logged and counted; they do not stop the run.
// Cancellation is observed between trials.
func (r *Runner) Run(ctx context.Context, job Job) (stats.Aggregate, error) {
	p := job.Protocol
	agg := stats.Aggregate{
		Name:     job.Name,
		Protocol: p.Name(),
		Agents:   p.Agents(),
	}
	log := r.logger()

	logging.With(log.Debug(),
		logging.RunID(r.RunID),
		logging.Configuration(job.Name),
		logging.Agents(p.Agents()),
	).Msg("starting configuration")

	results := make([]Result, r.Trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())

	for i := range r.Trials {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sched := NewUniform(p.Agents(), r.Seed, stream(job.Index, i))
			res, err := RunTrial(p, sched)
			if err != nil {
				return fmt.Errorf("%s trial %d: %w", job.Name, i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return agg, err
	}
	if err := ctx.Err(); err != nil {
		return agg, err
	}

	var records []events.TrialRecord
	if r.Records != nil {
		records = make([]events.TrialRecord, 0, len(results))
	}
	now := time.Now().UTC()

	for i, res := range results {
		agg.Add(res.Days, res.Sound)
		if err := res.Check(); err != nil {
			logging.With(log.Warn(),
				logging.RunID(r.RunID),
				logging.Configuration(job.Name),
				logging.Trial(i),
				logging.Day(res.Day),
				logging.ErrorField(err),
			).Msg("soundness violation")
		}
		if r.Records != nil {
			records = append(records, events.TrialRecord{
				Timestamp:     now,
				RunID:         r.RunID,
				Index:         job.Index,
				Configuration: job.Name,
				Protocol:      res.Protocol,
				Agents:        res.Agents,
				Trial:         i,
				Day:           res.Day,
				Days:          res.Days,
				Sound:         res.Sound,
				Missing:       res.Missing,
				Declarer:      res.Declarer,
				Flips:         res.Flips,
			})
		}
	}

	if r.Records != nil {
		if err := r.Records.Write(records); err != nil {
			return agg, fmt.Errorf("failed to record %s trials: %w", job.Name, err)
		}
	}

	logging.With(log.Info(),
		logging.RunID(r.RunID),
		logging.Configuration(job.Name),
		logging.Protocol(agg.Protocol),
		logging.Agents(agg.Agents),
	).Int("trials", agg.Trials).
		Int("min_days", agg.Min).
		Int("max_days", agg.Max).
		Int("violations", agg.Violations).
		Msg("configuration finished")

	return agg, nil
}

// RunAll runs every job in order and returns their aggregates. On error the
// aggregates of the jobs that finished are returned with it.
func (r *Runner) RunAll(ctx context.Context, jobs []Job) ([]stats.Aggregate, error) {
	logging.With(r.logger().Info(),
		logging.RunID(r.RunID),
		logging.Seed(r.Seed),
	).Int("configurations", len(jobs)).
		Int("trials", r.Trials).
		Int("workers", r.workers()).
		Msg("starting experiment")

	aggs := make([]stats.Aggregate, 0, len(jobs))
	for _, job := range jobs {
		agg, err := r.Run(ctx, job)
		if err != nil {
			return aggs, err
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}
