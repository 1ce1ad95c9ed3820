package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultCompilerBin, cfg.CompilerBin)
	assert.Equal(t, DefaultThresholdPct, cfg.ThresholdPct)
	assert.Equal(t, DefaultHyperfineBin, cfg.Hyperfine.Bin)
	assert.Equal(t, DefaultWarmup, cfg.Hyperfine.Warmup)
	require.Len(t, cfg.Suites, 2)
	assert.Equal(t, "complexity", cfg.Suites[0].Name)
}

func TestLoad_MergesFileOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
compiler: ./bin/caffeine
threshold: 25
hyperfine:
  warmup: 5
suites:
  - name: only
    scale: medium
    args: ["--strict"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".perf.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "./bin/caffeine", cfg.CompilerBin)
	assert.Equal(t, 25.0, cfg.ThresholdPct)
	assert.Equal(t, 5, cfg.Hyperfine.Warmup)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultMinRuns, cfg.Hyperfine.MinRuns)
	assert.Equal(t, DefaultResultsDir, cfg.ResultsDir)
	// Suites replace wholesale, they don't merge.
	require.Len(t, cfg.Suites, 1)
	assert.Equal(t, "only", cfg.Suites[0].Name)
	assert.Equal(t, []string{"--strict"}, cfg.Suites[0].Args)
}

func TestLoad_WalksUpToFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".perf.yaml"), []byte("threshold: 7\n"), 0o644))

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 7.0, cfg.ThresholdPct)
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".perf.yaml"), []byte("{{nope"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .perf.yaml")
}
