// Package report renders comparison reports as fixed-width text, JSON,
// markdown, and HTML.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/Brickell-Research/perf/internal/models"
	"github.com/Brickell-Research/perf/internal/statistics"
)

// Options controls text rendering.
type Options struct {
	// Width is the target line width; 0 means unconstrained. Benchmark
	// names are truncated when the name column would exceed it.
	Width int

	// Noise adds a bootstrap 95% confidence interval line under each
	// matched comparison that carries raw samples on both sides. The
	// intervals are diagnostics only and never change a verdict.
	Noise bool
}

// TerminalWidth returns the width of the terminal attached to stdout, or
// fallback when stdout is not a terminal.
func TerminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}

const (
	numColWidth    = 10
	minNameWidth   = len("Benchmark")
	fixedOverhead  = 4*(numColWidth+2) + 2 // four numeric columns plus separators
	maxNameDefault = 60
)

// WriteText renders one report as a fixed-width table with a trailing
// summary, mirroring the layout automation has come to expect: one row per
// benchmark with baseline mean, current mean, relative change, and status.
func WriteText(w io.Writer, r *models.ComparisonReport, opts Options) {
	nameWidth := nameColumnWidth(r, opts.Width)

	fmt.Fprintf(w, "Comparing %s -> %s (threshold %.1f%%)\n\n", r.BaselinePath, r.CurrentPath, r.Threshold*100)

	fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
		pad("Benchmark", nameWidth),
		padLeft("Baseline", numColWidth),
		padLeft("Current", numColWidth),
		padLeft("Change", numColWidth),
		"Status")
	fmt.Fprintln(w, strings.Repeat("-", nameWidth+50))

	for _, c := range r.Comparisons {
		writeRow(w, c, nameWidth)
		if opts.Noise {
			writeNoise(w, c, nameWidth)
		}
	}

	fmt.Fprintln(w)
	writeSummary(w, r)
}

func writeRow(w io.Writer, c models.Comparison, nameWidth int) {
	name := truncate(c.Name, nameWidth)

	switch c.Status {
	case models.StatusMissingInBaseline:
		fmt.Fprintf(w, "%s  %s  %s  %s  --\n",
			pad(name, nameWidth),
			padLeft("N/A", numColWidth),
			padLeft(formatMs(*c.CurrentMean), numColWidth),
			padLeft("new", numColWidth))
	case models.StatusMissingInCurrent:
		fmt.Fprintf(w, "%s  %s  %s  %s  --\n",
			pad(name, nameWidth),
			padLeft(formatMs(*c.BaselineMean), numColWidth),
			padLeft("removed", numColWidth),
			padLeft("N/A", numColWidth))
	default:
		change := "N/A"
		if c.RelativeDelta != nil {
			change = fmt.Sprintf("%+.1f%%", *c.RelativeDelta*100)
		}
		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			pad(name, nameWidth),
			padLeft(formatMs(*c.BaselineMean), numColWidth),
			padLeft(formatMs(*c.CurrentMean), numColWidth),
			padLeft(change, numColWidth),
			statusLabel(c))
	}
}

func writeNoise(w io.Writer, c models.Comparison, nameWidth int) {
	if c.Status != models.StatusMatched || len(c.BaselineTimes) < 2 || len(c.CurrentTimes) < 2 {
		return
	}
	base := statistics.BootstrapCI(c.BaselineTimes, 0.95)
	cur := statistics.BootstrapCI(c.CurrentTimes, 0.95)
	fmt.Fprintf(w, "%s  noise: baseline %s..%s, current %s..%s (95%% CI)\n",
		pad("", nameWidth),
		formatMs(base.Lower), formatMs(base.Upper),
		formatMs(cur.Lower), formatMs(cur.Upper))
}

func writeSummary(w io.Writer, r *models.ComparisonReport) {
	s := r.Summary
	fmt.Fprintf(w, "%d regression(s), %d improvement(s), %d stable, %d missing\n",
		s.Regressions, s.Improvements, s.Stable, s.MissingInCurrent+s.MissingInBaseline)

	if r.OverallPass {
		fmt.Fprintf(w, "PASSED: All benchmarks within %.1f%% threshold.\n", r.Threshold*100)
		return
	}

	fmt.Fprintf(w, "FAILED: %d regression(s) exceeded %.1f%% threshold:\n", s.Regressions, r.Threshold*100)
	for _, c := range r.Regressions() {
		fmt.Fprintf(w, "  - %s: %+.1f%%\n", c.Name, *c.RelativeDelta*100)
	}
}

func statusLabel(c models.Comparison) string {
	switch c.Verdict {
	case models.VerdictRegression:
		return fmt.Sprintf("REGRESSION (%+.1f%%)", *c.RelativeDelta*100)
	case models.VerdictImprovement:
		return fmt.Sprintf("FASTER (%+.1f%%)", *c.RelativeDelta*100)
	default:
		if c.Note != "" {
			return "OK (" + c.Note + ")"
		}
		return "OK"
	}
}

// nameColumnWidth sizes the name column to the widest benchmark name,
// clamped so the whole row fits the requested width. Names may contain
// wide runes, so widths are measured with runewidth rather than len.
func nameColumnWidth(r *models.ComparisonReport, totalWidth int) int {
	width := minNameWidth
	for _, c := range r.Comparisons {
		if w := runewidth.StringWidth(c.Name); w > width {
			width = w
		}
	}

	max := maxNameDefault
	if totalWidth > 0 {
		if m := totalWidth - fixedOverhead; m > minNameWidth {
			max = m
		}
	}
	if width > max {
		width = max
	}
	return width
}

// formatMs renders a duration in seconds as milliseconds with one decimal.
func formatMs(seconds float64) string {
	return fmt.Sprintf("%.1fms", seconds*1000)
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
