package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ja7ad/greenmeter/pkg/config"
	"github.com/ja7ad/greenmeter/pkg/consumption"
)

var (
	configPath string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "greenmeter",
		Short: "Energy and carbon estimation for test runs",
		Long: `greenmeter measures the CPU time and resident memory of every test (or
command) in a run, turns them into Joules, kWh and grams CO2e with a linear
power model, and compares a baseline run with an optimized one.

Examples:
  greenmeter exec --label baseline --out reports -- go test ./a/... ::: go test ./b/...
  greenmeter exec --label optimized --out reports --parallel 4 -- make test-fast
  greenmeter delta reports/baseline_summary.json reports/optimized_summary.json
  greenmeter project reports/delta_summary.json --daily 100`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML file with model coefficients (overrides "+config.EnvFile+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newExecCmd(),
		newDeltaCmd(),
		newProjectCmd(),
		newConfigCmd(),
	)

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// loadConfig resolves the coefficients, preferring the --config flag.
func loadConfig() consumption.Config {
	if configPath != "" {
		return config.LoadFile(configPath, slog.Default())
	}
	return config.Load()
}
