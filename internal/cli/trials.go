package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andywolf/lightbulb/internal/events"
)

var trialsCmd = &cobra.Command{
	Use:   "trials",
	Short: "Show recorded trials",
	Long: `Show the trial records that "lightbulb run --events-dir" wrote, one line
per trial. Use --unsound to list only the premature declarations of past runs.

Example:
  lightbulb trials --events-dir out --unsound
  lightbulb trials --events-dir out --configuration simple-count,lamplighter`,
	Args: cobra.NoArgs,
	RunE: showTrials,
}

func init() {
	trialsCmd.Flags().String("configuration", "", "comma separated catalogue entry names to show")
	trialsCmd.Flags().Bool("unsound", false, "show only unsound trials")
	rootCmd.AddCommand(trialsCmd)
}

func showTrials(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("events.dir")
	if dir == "" {
		return errors.New("no trial records to read: set --events-dir or events.dir")
	}

	names, _ := cmd.Flags().GetString("configuration")
	unsound, _ := cmd.Flags().GetBool("unsound")

	filter := events.Filter{UnsoundOnly: unsound}
	for name := range strings.SplitSeq(names, ",") {
		if name = strings.TrimSpace(name); name != "" {
			filter.Configurations = append(filter.Configurations, name)
		}
	}

	records, err := events.ReadRecords(filepath.Join(dir, events.DefaultFilename), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		if unsound {
			fmt.Fprintln(out, "No unsound trials found.")
		} else {
			fmt.Fprintln(out, "No trials found.")
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\t#\tCONFIGURATION\tTRIAL\tDAYS\tSOUND\tMISSING\tDECLARER\t")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\t%t\t%d\t%d\t\n",
			r.RunID, r.Index, r.Configuration, r.Trial, humanize.Comma(int64(r.Days)),
			r.Sound, r.Missing, r.Declarer)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s trial(s) found.\n", humanize.Comma(int64(len(records))))
	return nil
}
