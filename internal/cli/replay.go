package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andywolf/lightbulb/internal/catalogue"
	"github.com/andywolf/lightbulb/internal/sim"
)

var replayCmd = &cobra.Command{
	Use:   "replay POSITION AGENT...",
	Short: "Play one trial against a fixed visit order",
	Long: `Play a single trial of the catalogue entry at POSITION, visiting the given
agents in order, one per day starting at day 0. Agents may be separated by
spaces or commas. The trial stops at the first declaration; running out of
agents before that is an error.

Example:
  lightbulb replay 6 --agents 3 1,2,0,1,2,0`,
	Args: cobra.MinimumNArgs(2),
	RunE: replayTrial,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

// parseVisits reads agent identities from args.
func parseVisits(args []string) ([]int, error) {
	var ids []int
	for _, arg := range args {
		for field := range strings.SplitSeq(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			id, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid agent %q: not a number", field)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, errors.New("no agents to visit")
	}
	return ids, nil
}

func replayTrial(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	entries, err := catalogue.Resolve(cfg.Entries(), cfg.Experiment.Agents)
	if err != nil {
		return fmt.Errorf("invalid catalogue: %w", err)
	}

	selected, err := ExpandRanges(args[:1], len(entries))
	if err != nil {
		return err
	}
	if len(selected) != 1 {
		return fmt.Errorf("replay takes one catalogue position, got %q", args[0])
	}
	jobs, err := catalogue.Jobs(entries, selected)
	if err != nil {
		return err
	}
	job := jobs[0]

	visits, err := parseVisits(args[1:])
	if err != nil {
		return err
	}

	res, err := sim.RunTrial(job.Protocol, sim.NewScripted(visits...))
	if errors.Is(err, sim.ErrScheduleExhausted) {
		return fmt.Errorf("%s: no declaration after %d visits: %w", job.Name, len(visits), err)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", job.Name, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s): agent %d declared on day %d after %d days, %d light flips\n",
		job.Name, catalogue.Describe(entries[job.Index-1]), res.Declarer, res.Day, res.Days, res.Flips)
	if checkErr := res.Check(); checkErr != nil {
		fmt.Fprintln(out, checkErr)
	} else {
		fmt.Fprintln(out, "sound: every agent had visited")
	}
	return nil
}
