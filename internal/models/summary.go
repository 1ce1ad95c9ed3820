package models

import "fmt"

// BenchmarkSummary is one named timing result produced by a benchmarking run.
// All durations are in seconds. A summary is constructed once at load time
// and never mutated.
type BenchmarkSummary struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"` // zero when only one sample was taken

	// Times holds the raw per-run samples when the exporting tool provided
	// them. Optional; used for noise diagnostics only.
	Times []float64 `json:"times,omitempty"`

	// Parameters describes the corpus point this benchmark ran against,
	// when the exporting tool recorded parametrized scans.
	Parameters *ScenarioParams `json:"parameters,omitempty"`
}

// ScenarioParams is the typed view of a benchmark's parameter map.
type ScenarioParams struct {
	Scale        string `json:"scale,omitempty" mapstructure:"scale"`
	Expectations int    `json:"expectations,omitempty" mapstructure:"expectations"`
}

// DuplicateNameError reports two entries in one result document sharing a
// name. Failing loudly here avoids silently overwriting one measurement with
// another and masking an ambiguous comparison later.
type DuplicateNameError struct {
	Path string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: duplicate benchmark name %q", e.Path, e.Name)
}

// ResultSet is the ordered collection of summaries from one benchmarking run
// (one result file), indexed by name. It never mutates after construction.
type ResultSet struct {
	Path    string
	Entries []BenchmarkSummary

	byName map[string]int
}

// NewResultSet builds a ResultSet from entries in document order. Returns a
// *DuplicateNameError when two entries share a name.
func NewResultSet(path string, entries []BenchmarkSummary) (*ResultSet, error) {
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, exists := idx[e.Name]; exists {
			return nil, &DuplicateNameError{Path: path, Name: e.Name}
		}
		idx[e.Name] = i
	}
	return &ResultSet{Path: path, Entries: entries, byName: idx}, nil
}

// Lookup returns the summary with the given name, if present.
func (rs *ResultSet) Lookup(name string) (BenchmarkSummary, bool) {
	i, ok := rs.byName[name]
	if !ok {
		return BenchmarkSummary{}, false
	}
	return rs.Entries[i], true
}

// Len returns the number of summaries in the set.
func (rs *ResultSet) Len() int { return len(rs.Entries) }
