// Package discovery locates baseline/current result-file pairs under a
// results directory.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	currentSuffix  = "-current.json"
	baselineSuffix = "-baseline.json"
)

// ResultPair names one suite's baseline and current result files. The
// baseline may not exist yet (first run); callers decide whether that is a
// soft warning or a hard error.
type ResultPair struct {
	Suite        string
	BaselinePath string
	CurrentPath  string
}

// HasBaseline reports whether the baseline file exists on disk.
func (p ResultPair) HasBaseline() bool {
	_, err := os.Stat(p.BaselinePath)
	return err == nil
}

// Discover finds every <suite>-current.json in resultsDir and pairs it with
// <suite>-baseline.json in the same directory. Pairs are returned sorted by
// suite name so repeated runs report in a stable order.
func Discover(resultsDir string) ([]ResultPair, error) {
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return nil, fmt.Errorf("reading results dir: %w", err)
	}

	var pairs []ResultPair
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), currentSuffix) {
			continue
		}
		suite := strings.TrimSuffix(e.Name(), currentSuffix)
		pairs = append(pairs, ResultPair{
			Suite:        suite,
			BaselinePath: filepath.Join(resultsDir, suite+baselineSuffix),
			CurrentPath:  filepath.Join(resultsDir, e.Name()),
		})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Suite < pairs[j].Suite })
	return pairs, nil
}
