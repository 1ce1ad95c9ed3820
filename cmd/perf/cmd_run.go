package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Brickell-Research/perf/internal/projectconfig"
	"github.com/Brickell-Research/perf/internal/runner"
)

var (
	runSuites  []string
	runWorkers int
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time the compiler against the corpus with hyperfine",
		Long: `Run every configured benchmark suite through hyperfine, exporting one JSON
result document per suite into the results directory.

Suites, corpus scales, and hyperfine settings come from .perf.yaml.`,
		Args: cobra.NoArgs,
		RunE: runCommandE,
	}

	cmd.Flags().StringArrayVar(&runSuites, "suite", nil, "Run only the named suite (can be repeated)")
	cmd.Flags().IntVar(&runWorkers, "workers", 0, "Concurrent suites (default from config; keep at 1 for stable timings)")

	return cmd
}

func runCommandE(cmd *cobra.Command, _ []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = runWorkers
	}

	scenarios := runner.BuildScenarios(cfg)
	if len(runSuites) > 0 {
		scenarios = filterScenarios(scenarios, runSuites)
		if len(scenarios) == 0 {
			return fmt.Errorf("no configured suite matches %v", runSuites)
		}
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no suites configured; add suites to .perf.yaml or run `perf init`")
	}

	r := runner.New(cfg.Hyperfine)
	for _, sc := range scenarios {
		slog.Debug("scheduling suite", "suite", sc.Name, "command", sc.Command, "export", sc.ExportPath)
	}

	if err := r.RunAll(cmd.Context(), scenarios, workers); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ran %d suite(s); results in %s\n", len(scenarios), cfg.ResultsDir)
	fmt.Fprintln(cmd.OutOrStdout(), "Compare against the baseline with: perf compare --all")
	return nil
}

func filterScenarios(scenarios []runner.Scenario, names []string) []runner.Scenario {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []runner.Scenario
	for _, sc := range scenarios {
		if want[sc.Name] {
			out = append(out, sc)
		}
	}
	return out
}
