package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andywolf/lightbulb/internal/catalogue"
	"github.com/andywolf/lightbulb/internal/config"
	"github.com/andywolf/lightbulb/internal/events"
	"github.com/andywolf/lightbulb/internal/logging"
	"github.com/andywolf/lightbulb/internal/report"
	"github.com/andywolf/lightbulb/internal/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the experiment",
	Long: `Run every selected catalogue configuration for a fixed number of trials
and print one line of statistics per configuration.

Trials are independent and run concurrently. Results depend only on the seed,
never on the number of workers, so a printed seed reproduces a run exactly.
A declaration made before every agent visited is reported as a soundness
violation; it does not stop the run.

Example:
  lightbulb run
  lightbulb run --seed 1700000000 --only 9,10 --events-dir out`,
	Args: cobra.NoArgs,
	RunE: runExperiment,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// loadConfig loads the configuration with flags applied and validates it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if viper.GetBool("verbose") && cfg.Log.Level == config.Default().Log.Level {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// selectJobs resolves the catalogue and picks the entries named by only.
func selectJobs(cfg *config.Config) ([]sim.Job, error) {
	entries, err := catalogue.Resolve(cfg.Entries(), cfg.Experiment.Agents)
	if err != nil {
		return nil, fmt.Errorf("invalid catalogue: %w", err)
	}

	selected, err := ExpandRanges([]string{cfg.Experiment.Only}, len(entries))
	if err != nil {
		return nil, fmt.Errorf("invalid --only value: %w", err)
	}

	return catalogue.Jobs(entries, selected)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nReceived interrupt signal, stopping after the running trials...")
			cancel()
		case <-ctx.Done():
		}
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobs, err := selectJobs(cfg)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})

	seed := cfg.Experiment.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	runID := fmt.Sprintf("lightbulb-%s", uuid.New().String()[:8])

	runner := &sim.Runner{
		Trials:  cfg.Experiment.Trials,
		Workers: cfg.Experiment.Workers,
		Seed:    seed,
		RunID:   runID,
		Logger:  logger,
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: seed %d, %d trials per configuration\n", runID, seed, runner.Trials)

	if cfg.Events.Dir != "" {
		sink, sinkErr := events.NewFileSink(cfg.Events.Dir)
		if sinkErr != nil {
			return sinkErr
		}
		defer func() {
			if closeErr := sink.Close(); closeErr != nil {
				logging.With(logger.Error(), logging.RunID(runID), logging.ErrorField(closeErr)).Msg("failed to close trial records")
			}
		}()
		runner.Records = sink
		fmt.Fprintf(out, "Writing trial records to %s\n", sink.Path())
	}
	fmt.Fprintln(out)

	aggs, err := runner.RunAll(ctx, jobs)
	if len(aggs) > 0 {
		if renderErr := report.Render(out, aggs); renderErr != nil {
			return fmt.Errorf("failed to write report: %w", renderErr)
		}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("experiment interrupted after %d of %d configurations (seed %d): %w",
				len(aggs), len(jobs), seed, err)
		}
		return fmt.Errorf("experiment failed: %w", err)
	}

	fmt.Fprintf(out, "\n%s\n", report.Summary(aggs))
	return nil
}
