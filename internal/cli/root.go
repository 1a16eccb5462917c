package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andywolf/lightbulb/internal/config"
	"github.com/andywolf/lightbulb/internal/version"
)

// configName is the config file looked up in the working directory.
const configName = ".lightbulb"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lightbulb",
	Short: "Simulate strategies for the prisoners and light bulb puzzle",
	Long: `lightbulb simulates N agents that are visited one per day, at random, and
share nothing but a single light. Each strategy must eventually let one agent
declare that everybody has visited, and must never declare early.

Without a subcommand it runs the whole catalogue of strategy configurations
and prints min, max and mean days per configuration.

Example:
  lightbulb
  lightbulb run --trials 200 --only 6-8 --seed 42`,
	Args:         cobra.NoArgs,
	RunE:         runExperiment,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .lightbulb.yaml)")
	flags.Bool("verbose", false, "enable verbose output")
	flags.Int("trials", 0, "trials per configuration (default 1000)")
	flags.Uint64("seed", 0, "random seed; 0 derives one from the clock")
	flags.Int("workers", 0, "concurrent trials; 0 uses all CPUs")
	flags.Int("agents", 0, "agent count for entries that do not set one (default 100)")
	flags.String("only", "", "catalogue positions to run, e.g. 1-3,7")
	flags.String("events-dir", "", "directory to write trial records to")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("experiment.trials", flags.Lookup("trials"))
	_ = viper.BindPFlag("experiment.seed", flags.Lookup("seed"))
	_ = viper.BindPFlag("experiment.workers", flags.Lookup("workers"))
	_ = viper.BindPFlag("experiment.agents", flags.Lookup("agents"))
	_ = viper.BindPFlag("experiment.only", flags.Lookup("only"))
	_ = viper.BindPFlag("events.dir", flags.Lookup("events-dir"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error getting working directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	config.Configure(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
