package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // No regressions detected
	ExitRegression = 1 // One or more benchmarks regressed past the threshold
	ExitError      = 2 // Load, parse, or configuration error
)

// RegressionError indicates the comparison ran successfully but detected
// regressions. Regressions are data, not faults: this type exists only so
// the process boundary can translate them into a distinct exit code, letting
// automation tell "benchmarks got slower" apart from "something is broken".
type RegressionError struct {
	Count int
}

func (e *RegressionError) Error() string {
	return fmt.Sprintf("%d benchmark(s) regressed past the threshold", e.Count)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var regressionErr *RegressionError
		if errors.As(err, &regressionErr) {
			os.Exit(ExitRegression)
		}

		// All other errors are load/parse/configuration errors
		os.Exit(ExitError)
	}
}
