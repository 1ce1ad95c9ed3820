// Package compare implements the regression comparison engine: it matches
// two result sets by benchmark name, computes relative mean deltas, and
// classifies each pair against a tolerance threshold.
package compare

import (
	"fmt"

	"github.com/Brickell-Research/perf/internal/models"
)

// InvalidThresholdError indicates a negative threshold was supplied.
type InvalidThresholdError struct {
	Threshold float64
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid threshold %v: must be >= 0", e.Threshold)
}

// Compare matches every benchmark in baseline against current by name and
// classifies each matched pair using threshold (a fraction, e.g. 0.20 for
// 20%). Bounds are exclusive: a delta exactly at ±threshold is stable.
//
// Output ordering is deterministic: baseline entries in baseline order
// (matched or missing-in-current), then current-only entries in current
// order. Two calls over identical inputs produce byte-identical reports.
//
// Compare performs no I/O and keeps no state; benchmarks missing on either
// side are reported but never fail the run.
func Compare(baseline, current *models.ResultSet, threshold float64) (*models.ComparisonReport, error) {
	if threshold < 0 {
		return nil, &InvalidThresholdError{Threshold: threshold}
	}

	report := &models.ComparisonReport{
		BaselinePath: baseline.Path,
		CurrentPath:  current.Path,
		Threshold:    threshold,
		Comparisons:  make([]models.Comparison, 0, baseline.Len()+current.Len()),
	}

	for _, base := range baseline.Entries {
		cur, ok := current.Lookup(base.Name)
		if !ok {
			report.Comparisons = append(report.Comparisons, models.Comparison{
				Name:           base.Name,
				Status:         models.StatusMissingInCurrent,
				BaselineMean:   ptr(base.Mean),
				BaselineStddev: base.Stddev,
			})
			report.Summary.MissingInCurrent++
			continue
		}
		c := classify(base, cur, threshold)
		report.Comparisons = append(report.Comparisons, c)
		switch c.Verdict {
		case models.VerdictRegression:
			report.Summary.Regressions++
		case models.VerdictImprovement:
			report.Summary.Improvements++
		case models.VerdictStable:
			report.Summary.Stable++
		}
	}

	for _, cur := range current.Entries {
		if _, ok := baseline.Lookup(cur.Name); ok {
			continue
		}
		report.Comparisons = append(report.Comparisons, models.Comparison{
			Name:          cur.Name,
			Status:        models.StatusMissingInBaseline,
			CurrentMean:   ptr(cur.Mean),
			CurrentStddev: cur.Stddev,
		})
		report.Summary.MissingInBaseline++
	}

	report.OverallPass = report.Summary.Regressions == 0
	return report, nil
}

// classify computes the relative delta and verdict for a matched pair.
func classify(base, cur models.BenchmarkSummary, threshold float64) models.Comparison {
	c := models.Comparison{
		Name:           base.Name,
		Status:         models.StatusMatched,
		BaselineMean:   ptr(base.Mean),
		CurrentMean:    ptr(cur.Mean),
		BaselineStddev: base.Stddev,
		CurrentStddev:  cur.Stddev,
		BaselineTimes:  base.Times,
		CurrentTimes:   cur.Times,
	}

	if base.Mean == 0 {
		// A zero-duration baseline cannot regress by a percentage; the
		// delta is undefined, never a regression.
		c.Verdict = models.VerdictStable
		c.Note = "baseline mean is zero; relative delta undefined"
		return c
	}

	delta := (cur.Mean - base.Mean) / base.Mean
	c.RelativeDelta = ptr(delta)

	switch {
	case delta > threshold:
		c.Verdict = models.VerdictRegression
	case delta < -threshold:
		c.Verdict = models.VerdictImprovement
	default:
		c.Verdict = models.VerdictStable
	}
	return c
}

// Aggregate folds reports from independent file pairs into the process-level
// verdict: true iff every report passed. Nil reports (pairs that failed to
// load, or were skipped) are ignored; the caller decides how load failures
// affect the exit status.
func Aggregate(reports []*models.ComparisonReport) bool {
	pass := true
	for _, r := range reports {
		if r != nil && !r.OverallPass {
			pass = false
		}
	}
	return pass
}

func ptr(f float64) *float64 { return &f }
