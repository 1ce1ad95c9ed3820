package models

// MatchStatus says whether a benchmark name was found on both sides of a
// comparison.
type MatchStatus string

const (
	StatusMatched           MatchStatus = "matched"
	StatusMissingInCurrent  MatchStatus = "missing_in_current"
	StatusMissingInBaseline MatchStatus = "missing_in_baseline"
)

// Verdict classifies a matched benchmark pair against the threshold.
type Verdict string

const (
	VerdictRegression  Verdict = "regression"
	VerdictImprovement Verdict = "improvement"
	VerdictStable      Verdict = "stable"
)

// Comparison is the outcome of matching one baseline summary against one
// current summary, or the absence of a match.
//
// BaselineMean/CurrentMean are set for whichever side the benchmark exists
// on. RelativeDelta and Verdict are only set when the pair matched and the
// baseline mean is positive; a zero-duration baseline cannot meaningfully
// regress by a percentage.
type Comparison struct {
	Name   string      `json:"name"`
	Status MatchStatus `json:"status"`

	BaselineMean *float64 `json:"baseline_mean,omitempty"`
	CurrentMean  *float64 `json:"current_mean,omitempty"`

	// RelativeDelta is (current-baseline)/baseline; positive means slower.
	RelativeDelta *float64 `json:"relative_delta,omitempty"`
	Verdict       Verdict  `json:"verdict,omitempty"`

	// Stddevs are carried through for diagnostics. They do not take part
	// in classification.
	BaselineStddev float64 `json:"baseline_stddev,omitempty"`
	CurrentStddev  float64 `json:"current_stddev,omitempty"`

	// Note explains unusual classifications, e.g. a zero-duration baseline.
	Note string `json:"note,omitempty"`

	// Raw per-run samples, when both sides carried them. Diagnostics only.
	BaselineTimes []float64 `json:"-"`
	CurrentTimes  []float64 `json:"-"`
}

// ReportSummary counts comparisons by outcome.
type ReportSummary struct {
	Regressions       int `json:"regressions"`
	Improvements      int `json:"improvements"`
	Stable            int `json:"stable"`
	MissingInCurrent  int `json:"missing_in_current"`
	MissingInBaseline int `json:"missing_in_baseline"`
}

// ComparisonReport is the full output of comparing one baseline/current file
// pair: the ordered comparisons, outcome counts, and the pass/fail flag.
type ComparisonReport struct {
	BaselinePath string  `json:"baseline_file"`
	CurrentPath  string  `json:"current_file"`
	Threshold    float64 `json:"threshold"` // fraction, e.g. 0.20 for 20%

	Comparisons []Comparison  `json:"comparisons"`
	Summary     ReportSummary `json:"summary"`

	// OverallPass is true iff no comparison has a regression verdict.
	// Missing benchmarks never fail a run on their own.
	OverallPass bool `json:"overall_pass"`
}

// Regressions returns the comparisons classified as regressions, in report
// order.
func (r *ComparisonReport) Regressions() []Comparison {
	var out []Comparison
	for _, c := range r.Comparisons {
		if c.Verdict == VerdictRegression {
			out = append(out, c)
		}
	}
	return out
}
