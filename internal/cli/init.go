package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andywolf/lightbulb/internal/catalogue"
	"github.com/andywolf/lightbulb/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration",
	Long: `Write .lightbulb.yaml with the default experiment settings and the built-in
catalogue, ready to be edited.

Example:
  lightbulb init
  lightbulb init --force`,
	Args: cobra.NoArgs,
	RunE: initProject,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite existing config")
}

const configHeader = `# lightbulb configuration
#
# Entries without an agents value use experiment.agents. Remove the catalogue
# section to fall back to the built-in catalogue.

`

// writeConfig writes the default configuration and catalogue to path.
func writeConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.Default()
	cfg.Catalogue = catalogue.Default()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func initProject(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(".", configName+".yaml")

	force, _ := cmd.Flags().GetBool("force")
	if err := writeConfig(configPath, force); err != nil {
		return err
	}

	printNextSteps(cmd.OutOrStdout(), configPath)
	return nil
}

func printNextSteps(w io.Writer, path string) {
	fmt.Fprintf(w, "Created %s\n\n", path)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  1. Adjust trials, seed or the catalogue entries")
	fmt.Fprintln(w, "  2. Run 'lightbulb list' to check the catalogue")
	fmt.Fprintln(w, "  3. Run 'lightbulb run' to start the experiment")
}
