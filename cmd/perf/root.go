package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perf",
		Short: "perf - benchmark harness for the caffeine compiler",
		Long: `perf benchmarks the caffeine compiler against synthetic corpora and guards
against performance regressions.

It generates fixed-size input corpora, times compiler invocations with
hyperfine, and compares recorded result files against a trusted baseline.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newBaselineCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
