package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Brickell-Research/perf/internal/baselinestore"
	"github.com/Brickell-Research/perf/internal/discovery"
	"github.com/Brickell-Research/perf/internal/projectconfig"
)

var baselinePruneKeep int

func newBaselineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage trusted baseline result files",
	}

	save := &cobra.Command{
		Use:   "save [suite ...]",
		Short: "Promote current results to the baseline and archive a snapshot",
		Long: `Copy each suite's current result file over its baseline file, archiving a
compressed snapshot of the promoted document so earlier baselines can be
restored. With no arguments every suite in the results directory is promoted.`,
		RunE: baselineSaveE,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List archived baseline snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE:  baselineListE,
	}

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove old snapshots, keeping the newest N per suite",
		Args:  cobra.NoArgs,
		RunE:  baselinePruneE,
	}
	prune.Flags().IntVar(&baselinePruneKeep, "keep", 5, "Snapshots to keep per suite")

	cmd.AddCommand(save, list, prune)
	return cmd
}

func baselineSaveE(cmd *cobra.Command, args []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	pairs, err := discovery.Discover(cfg.ResultsDir)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		pairs = filterPairs(pairs, args)
		if len(pairs) == 0 {
			return fmt.Errorf("no current results found for suites %v in %s", args, cfg.ResultsDir)
		}
	}
	if len(pairs) == 0 {
		return fmt.Errorf("no current results found in %s; run `perf run` first", cfg.ResultsDir)
	}

	store := baselinestore.New(cfg.BaselineDir)
	for _, pair := range pairs {
		snap, err := store.Save(pair.Suite, pair.CurrentPath)
		if err != nil {
			return fmt.Errorf("archiving %s: %w", pair.Suite, err)
		}
		if err := copyFile(pair.CurrentPath, pair.BaselinePath); err != nil {
			return fmt.Errorf("promoting %s: %w", pair.Suite, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "promoted %s (snapshot %.12s)\n", pair.Suite, snap.ID)
	}
	return nil
}

func baselineListE(cmd *cobra.Command, _ []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	snaps, err := baselinestore.New(cfg.BaselineDir).List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no baseline snapshots yet")
		return nil
	}

	for _, s := range snaps {
		fmt.Fprintf(cmd.OutOrStdout(), "%.12s  %-12s  %s  %d bytes\n",
			s.ID, s.Suite, s.SavedAt.Format("2006-01-02 15:04:05"), s.Size)
	}
	return nil
}

func baselinePruneE(cmd *cobra.Command, _ []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	removed, err := baselinestore.New(cfg.BaselineDir).Prune(baselinePruneKeep)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d snapshot(s)\n", removed)
	return nil
}

func filterPairs(pairs []discovery.ResultPair, suites []string) []discovery.ResultPair {
	want := make(map[string]bool, len(suites))
	for _, s := range suites {
		want[s] = true
	}
	var out []discovery.ResultPair
	for _, p := range pairs {
		if want[p.Suite] {
			out = append(out, p)
		}
	}
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
