package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andywolf/lightbulb/internal/catalogue"
	"github.com/andywolf/lightbulb/internal/protocol"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List protocols and catalogue entries",
	Long: `List the registered protocols and the numbered catalogue entries that
"lightbulb run" would execute. The numbers are the positions accepted by --only.`,
	Args: cobra.NoArgs,
	RunE: listCatalogue,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listCatalogue(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	entries, err := catalogue.Resolve(cfg.Entries(), cfg.Experiment.Agents)
	if err != nil {
		return fmt.Errorf("invalid catalogue: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Protocols:")
	for _, name := range protocol.List() {
		fmt.Fprintf(out, "  %s\n", name)
	}

	fmt.Fprintln(out, "\nCatalogue:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, e := range entries {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", i+1, e.Name, e.Protocol, catalogue.Describe(e))
	}
	return tw.Flush()
}
