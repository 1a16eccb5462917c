// Package report renders experiment aggregates for the terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/andywolf/lightbulb/internal/stats"
)

// Render writes one line per aggregate: name, agents, trials, min, max, mean
// days and mean years. Violations are only shown when there are any.
func Render(w io.Writer, aggs []stats.Aggregate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "CONFIGURATION\tAGENTS\tTRIALS\tMIN\tMAX\tMEAN DAYS\tMEAN YEARS\t")
	for _, a := range aggs {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t",
			a.Name,
			a.Agents,
			humanize.Comma(int64(a.Trials)),
			humanize.Comma(int64(a.Min)),
			humanize.Comma(int64(a.Max)),
			humanize.CommafWithDigits(a.Mean(), 1),
			fmt.Sprintf("%.2f", a.MeanYears()),
		)
		if !a.Sound() {
			fmt.Fprintf(tw, " %s unsound", humanize.Comma(int64(a.Violations)))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// Summary returns a one-line description of the whole run.
func Summary(aggs []stats.Aggregate) string {
	var total stats.Aggregate
	for _, a := range aggs {
		total.Merge(a)
	}

	s := fmt.Sprintf("%d configurations, %s trials, %s simulated days",
		len(aggs), humanize.Comma(int64(total.Trials)), humanize.Comma(total.Sum))
	if !total.Sound() {
		s += fmt.Sprintf(", %s soundness violations", humanize.Comma(int64(total.Violations)))
	}
	return s
}
