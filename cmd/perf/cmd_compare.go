package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Brickell-Research/perf/internal/compare"
	"github.com/Brickell-Research/perf/internal/discovery"
	"github.com/Brickell-Research/perf/internal/hyperfine"
	"github.com/Brickell-Research/perf/internal/models"
	"github.com/Brickell-Research/perf/internal/projectconfig"
	"github.com/Brickell-Research/perf/internal/report"
)

var (
	compareThresholdPct float64
	compareFormat       string
	compareAll          bool
	compareAllowMissing bool
	compareNoise        bool
)

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <baseline.json> <current.json> [<baseline2.json> <current2.json> ...]",
		Short: "Compare benchmark results against a baseline",
		Long: `Compare one or more pairs of hyperfine result files and detect regressions.

Files are consumed two at a time: baseline then current. Every pair is
compared and reported even when an earlier pair fails or regresses, so a
single run surfaces all regressions. With --all, pairs are discovered from
the results directory instead of being listed on the command line.

Exit codes: 0 = within threshold, 1 = regression detected, 2 = load error.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if compareAll {
				if len(args) != 0 {
					return fmt.Errorf("--all takes no positional arguments")
				}
				return nil
			}
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected an even number of result files (baseline/current pairs), got %d", len(args))
			}
			return nil
		},
		RunE: compareCommandE,
	}

	cmd.Flags().Float64VarP(&compareThresholdPct, "threshold", "t", projectconfig.DefaultThresholdPct,
		"Regression threshold in percent (e.g. 20 means 20%)")
	cmd.Flags().StringVarP(&compareFormat, "format", "f", "table", "Output format: table, json, markdown, or html")
	cmd.Flags().BoolVar(&compareAll, "all", false, "Discover baseline/current pairs from the results directory")
	cmd.Flags().BoolVar(&compareAllowMissing, "allow-missing-baseline", false,
		"Treat a missing baseline file as a skip with a warning (first run), not an error")
	cmd.Flags().BoolVar(&compareNoise, "noise", false,
		"Show bootstrap 95% confidence intervals next to matched benchmarks (diagnostic only)")

	return cmd
}

func compareCommandE(cmd *cobra.Command, args []string) error {
	switch compareFormat {
	case "table", "json", "markdown", "html":
	default:
		return fmt.Errorf("unsupported format %q: must be table, json, markdown, or html", compareFormat)
	}

	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	thresholdPct := compareThresholdPct
	if !cmd.Flags().Changed("threshold") {
		thresholdPct = cfg.ThresholdPct
	}

	// The comparator takes a fraction; percent-to-fraction conversion
	// happens exactly once, here at the boundary.
	threshold := thresholdPct / 100
	if threshold < 0 {
		return &compare.InvalidThresholdError{Threshold: threshold}
	}

	pairs, err := resolvePairs(cfg, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	opts := report.Options{Width: report.TerminalWidth(0), Noise: compareNoise}

	var (
		reports   []*models.ComparisonReport
		loadFails int
	)

	for _, pair := range pairs {
		baseline, err := hyperfine.Load(pair.BaselinePath)
		if err != nil {
			var notFound *hyperfine.NotFoundError
			if compareAllowMissing && errors.As(err, &notFound) {
				fmt.Fprintf(errOut, "warning: no baseline for %s yet, skipping (%s)\n", pair.Suite, pair.BaselinePath)
				continue
			}
			fmt.Fprintf(errOut, "error: %v\n", err)
			loadFails++
			continue
		}

		current, err := hyperfine.Load(pair.CurrentPath)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			loadFails++
			continue
		}

		rep, err := compare.Compare(baseline, current, threshold)
		if err != nil {
			return err
		}
		reports = append(reports, rep)

		if compareFormat == "table" {
			report.WriteText(out, rep, opts)
			fmt.Fprintln(out)
		}
		slog.Debug("compared pair",
			"suite", pair.Suite,
			"regressions", rep.Summary.Regressions,
			"pass", rep.OverallPass)
	}

	switch compareFormat {
	case "json":
		if err := report.WriteJSON(out, reports); err != nil {
			return err
		}
	case "markdown":
		for _, rep := range reports {
			fmt.Fprintln(out, report.Markdown(rep))
		}
	case "html":
		if err := report.WriteHTML(out, reports); err != nil {
			return err
		}
	}

	if loadFails > 0 {
		return fmt.Errorf("%d result file(s) could not be loaded", loadFails)
	}
	if !compare.Aggregate(reports) {
		count := 0
		for _, rep := range reports {
			count += rep.Summary.Regressions
		}
		return &RegressionError{Count: count}
	}
	return nil
}

// resolvePairs turns positional arguments (or the results directory when
// --all is set) into baseline/current pairs.
func resolvePairs(cfg *projectconfig.ProjectConfig, args []string) ([]discovery.ResultPair, error) {
	if compareAll {
		pairs, err := discovery.Discover(cfg.ResultsDir)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, fmt.Errorf("no result pairs found in %s; run `perf run` first", cfg.ResultsDir)
		}
		return pairs, nil
	}

	pairs := make([]discovery.ResultPair, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, discovery.ResultPair{
			Suite:        fmt.Sprintf("pair %d", i/2+1),
			BaselinePath: args[i],
			CurrentPath:  args[i+1],
		})
	}
	return pairs, nil
}
