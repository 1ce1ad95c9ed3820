package runner

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brickell-Research/perf/internal/projectconfig"
)

func TestBuildScenarios(t *testing.T) {
	cfg := projectconfig.New()
	cfg.CompilerBin = "./bin/caffeine"
	cfg.CorpusDir = "corpus"
	cfg.ResultsDir = "results"
	cfg.Suites = []projectconfig.SuiteConfig{
		{Name: "complexity", Scale: "large"},
		{Name: "scaling", Scale: "huge", Args: []string{"--strict", "--no-color"}},
	}

	scenarios := BuildScenarios(cfg)
	require.Len(t, scenarios, 2)

	assert.Equal(t, "complexity", scenarios[0].Name)
	assert.Equal(t, "./bin/caffeine "+filepath.Join("corpus", "large"), scenarios[0].Command)
	assert.Equal(t, filepath.Join("results", "complexity-current.json"), scenarios[0].ExportPath)

	assert.Equal(t, "./bin/caffeine "+filepath.Join("corpus", "huge")+" --strict --no-color", scenarios[1].Command)
}

func TestArgs(t *testing.T) {
	r := &Runner{Bin: "hyperfine", Warmup: 3, MinRuns: 10}
	sc := Scenario{
		Name:       "complexity",
		Command:    "caffeine corpus/large",
		ExportPath: "results/complexity-current.json",
	}

	assert.Equal(t, []string{
		"--warmup", "3",
		"--min-runs", "10",
		"--command-name", "complexity",
		"--export-json", "results/complexity-current.json",
		"caffeine corpus/large",
	}, r.Args(sc))
}

func TestRun_HyperfineMissing(t *testing.T) {
	r := &Runner{
		Bin: "hyperfine",
		lookPath: func(string) (string, error) {
			return "", exec.ErrNotFound
		},
	}

	err := r.Run(context.Background(), Scenario{Name: "complexity", ExportPath: filepath.Join(t.TempDir(), "out.json")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHyperfineNotFound)
}

func TestRunAll_InvokesEveryScenario(t *testing.T) {
	tmp := t.TempDir()

	var gotArgs [][]string
	r := &Runner{
		Bin:     "hyperfine",
		Warmup:  1,
		MinRuns: 2,
		lookPath: func(string) (string, error) {
			return "/usr/bin/hyperfine", nil
		},
		command: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			gotArgs = append(gotArgs, args)
			// Substitute a no-op so RunAll exercises the real exec path
			// without hyperfine installed.
			return exec.CommandContext(ctx, "true")
		},
	}

	scenarios := []Scenario{
		{Name: "a", Command: "caffeine corpus/small", ExportPath: filepath.Join(tmp, "a-current.json")},
		{Name: "b", Command: "caffeine corpus/medium", ExportPath: filepath.Join(tmp, "b-current.json")},
	}

	// workers=1 keeps the invocations sequential, so gotArgs needs no lock.
	require.NoError(t, r.RunAll(context.Background(), scenarios, 1))
	require.Len(t, gotArgs, 2)
	assert.Contains(t, gotArgs[0], "--command-name")
	assert.Contains(t, gotArgs[0], "a")
	assert.Contains(t, gotArgs[1], "b")
}

func TestRunAll_StopsOnFailure(t *testing.T) {
	r := &Runner{
		Bin: "hyperfine",
		lookPath: func(string) (string, error) {
			return "/usr/bin/hyperfine", nil
		},
		command: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "false")
		},
	}

	sc := Scenario{Name: "a", Command: "caffeine corpus/small", ExportPath: filepath.Join(t.TempDir(), "a.json")}
	err := r.RunAll(context.Background(), []Scenario{sc}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hyperfine failed for suite a")
}

func TestNew_CopiesConfig(t *testing.T) {
	r := New(projectconfig.HyperfineConfig{Bin: "hf", Warmup: 7, MinRuns: 20})
	assert.Equal(t, "hf", r.Bin)
	assert.Equal(t, 7, r.Warmup)
	assert.Equal(t, 20, r.MinRuns)
}
