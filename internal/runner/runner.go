// Package runner invokes hyperfine to time the compiler-under-test against
// the generated corpus, exporting one JSON result document per suite.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/Brickell-Research/perf/internal/projectconfig"
)

// ErrHyperfineNotFound indicates the hyperfine binary is not on PATH.
var ErrHyperfineNotFound = errors.New("hyperfine not found; install it first (https://github.com/sharkdp/hyperfine)")

// Scenario is one named benchmark: a command line hyperfine will time.
type Scenario struct {
	// Name labels the benchmark in the exported document; comparisons
	// match on it, so it must be stable across runs.
	Name string

	// Command is the shell command hyperfine times.
	Command string

	// ExportPath is where the hyperfine JSON export is written.
	ExportPath string
}

// Runner executes hyperfine once per scenario.
type Runner struct {
	Bin     string
	Warmup  int
	MinRuns int

	// lookPath and command are test seams; nil means the real exec.
	lookPath func(file string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New builds a Runner from the hyperfine section of the project config.
func New(cfg projectconfig.HyperfineConfig) *Runner {
	return &Runner{
		Bin:     cfg.Bin,
		Warmup:  cfg.Warmup,
		MinRuns: cfg.MinRuns,
	}
}

// BuildScenarios expands the configured suites into runnable scenarios. Each
// suite times one compiler invocation over its corpus scale and exports to
// <resultsDir>/<suite>-current.json.
func BuildScenarios(cfg *projectconfig.ProjectConfig) []Scenario {
	scenarios := make([]Scenario, 0, len(cfg.Suites))
	for _, s := range cfg.Suites {
		cmd := cfg.CompilerBin + " " + filepath.Join(cfg.CorpusDir, s.Scale)
		for _, a := range s.Args {
			cmd += " " + a
		}
		scenarios = append(scenarios, Scenario{
			Name:       s.Name,
			Command:    cmd,
			ExportPath: filepath.Join(cfg.ResultsDir, s.Name+"-current.json"),
		})
	}
	return scenarios
}

// Run times one scenario, blocking until hyperfine finishes or ctx is
// canceled. The export file's directory is created if needed.
func (r *Runner) Run(ctx context.Context, sc Scenario) error {
	bin, err := r.resolveBin()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(sc.ExportPath), 0o755); err != nil {
		return fmt.Errorf("creating results dir for %s: %w", sc.Name, err)
	}

	cmd := r.commandFunc()(ctx, bin, r.Args(sc)...)
	cmd.Stdout = os.Stderr // keep stdout clean for report output
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("hyperfine failed for suite %s: %w", sc.Name, err)
	}
	return nil
}

// RunAll executes every scenario with at most workers running concurrently.
// Benchmarking is timing-sensitive; workers should stay at 1 unless the
// suites are known not to contend.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario, workers int) error {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, sc := range scenarios {
		g.Go(func() error {
			return r.Run(ctx, sc)
		})
	}
	return g.Wait()
}

// Args builds the hyperfine argument list for a scenario. Split out so the
// invocation is testable without running hyperfine.
func (r *Runner) Args(sc Scenario) []string {
	return []string{
		"--warmup", strconv.Itoa(r.Warmup),
		"--min-runs", strconv.Itoa(r.MinRuns),
		"--command-name", sc.Name,
		"--export-json", sc.ExportPath,
		sc.Command,
	}
}

func (r *Runner) resolveBin() (string, error) {
	look := r.lookPath
	if look == nil {
		look = exec.LookPath
	}
	bin, err := look(r.Bin)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHyperfineNotFound, err)
	}
	return bin, nil
}

func (r *Runner) commandFunc() func(ctx context.Context, name string, args ...string) *exec.Cmd {
	if r.command != nil {
		return r.command
	}
	return exec.CommandContext
}
