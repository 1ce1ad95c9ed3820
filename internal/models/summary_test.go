package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResultSet_IndexesByName(t *testing.T) {
	rs, err := NewResultSet("r.json", []BenchmarkSummary{
		{Name: "a", Mean: 1.0},
		{Name: "b", Mean: 2.0},
	})
	require.NoError(t, err)

	got, ok := rs.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, 2.0, got.Mean)

	_, ok = rs.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, rs.Len())
}

func TestNewResultSet_RejectsDuplicates(t *testing.T) {
	_, err := NewResultSet("r.json", []BenchmarkSummary{
		{Name: "a", Mean: 1.0},
		{Name: "a", Mean: 2.0},
	})
	require.Error(t, err)

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Name)
	assert.Contains(t, err.Error(), `"a"`)
}

func TestComparison_JSONOmitsAbsentFields(t *testing.T) {
	c := Comparison{Name: "gone", Status: StatusMissingInCurrent}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "relative_delta")
	assert.NotContains(t, string(data), "verdict")
	assert.NotContains(t, string(data), "current_mean")
}

func TestComparisonReport_Regressions(t *testing.T) {
	rep := ComparisonReport{
		Comparisons: []Comparison{
			{Name: "ok", Verdict: VerdictStable},
			{Name: "slow", Verdict: VerdictRegression},
			{Name: "fast", Verdict: VerdictImprovement},
			{Name: "slower", Verdict: VerdictRegression},
		},
	}

	regs := rep.Regressions()
	require.Len(t, regs, 2)
	assert.Equal(t, "slow", regs[0].Name)
	assert.Equal(t, "slower", regs[1].Name)
}
