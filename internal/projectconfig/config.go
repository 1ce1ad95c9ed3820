// Package projectconfig provides the ProjectConfig struct and loader for
// .perf.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultCompilerBin = "caffeine"
	DefaultCorpusDir   = "corpus/"
	DefaultResultsDir  = "results/"
	DefaultBaselineDir = ".perf-baselines"

	DefaultThresholdPct = 10.0

	DefaultHyperfineBin = "hyperfine"
	DefaultWarmup       = 3
	DefaultMinRuns      = 10
	DefaultWorkers      = 1
)

// SuiteConfig names one benchmark suite: which corpus scale it compiles and
// any extra compiler arguments.
type SuiteConfig struct {
	Name  string   `yaml:"name"`
	Scale string   `yaml:"scale"`
	Args  []string `yaml:"args,omitempty"`
}

// HyperfineConfig holds settings passed through to the hyperfine invocation.
type HyperfineConfig struct {
	Bin     string `yaml:"bin,omitempty"`
	Warmup  int    `yaml:"warmup,omitempty"`
	MinRuns int    `yaml:"min_runs,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .perf.yaml.
type ProjectConfig struct {
	CompilerBin string `yaml:"compiler,omitempty"`
	CorpusDir   string `yaml:"corpus_dir,omitempty"`
	ResultsDir  string `yaml:"results_dir,omitempty"`
	BaselineDir string `yaml:"baseline_dir,omitempty"`

	// ThresholdPct is the regression tolerance as a human percentage
	// (10 means 10%). The CLI converts it to a fraction exactly once
	// before comparison.
	ThresholdPct float64 `yaml:"threshold,omitempty"`

	// Workers bounds how many suites run concurrently. Benchmarking is
	// timing-sensitive, so the default is sequential.
	Workers int `yaml:"workers,omitempty"`

	Hyperfine HyperfineConfig `yaml:"hyperfine,omitempty"`
	Suites    []SuiteConfig   `yaml:"suites,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		CompilerBin:  DefaultCompilerBin,
		CorpusDir:    DefaultCorpusDir,
		ResultsDir:   DefaultResultsDir,
		BaselineDir:  DefaultBaselineDir,
		ThresholdPct: DefaultThresholdPct,
		Workers:      DefaultWorkers,
		Hyperfine: HyperfineConfig{
			Bin:     DefaultHyperfineBin,
			Warmup:  DefaultWarmup,
			MinRuns: DefaultMinRuns,
		},
		Suites: []SuiteConfig{
			{Name: "complexity", Scale: "large"},
			{Name: "scaling", Scale: "huge"},
		},
	}
}

// Load finds .perf.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .perf.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .perf.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .perf.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".perf.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.CompilerBin != "" {
		dst.CompilerBin = src.CompilerBin
	}
	if src.CorpusDir != "" {
		dst.CorpusDir = src.CorpusDir
	}
	if src.ResultsDir != "" {
		dst.ResultsDir = src.ResultsDir
	}
	if src.BaselineDir != "" {
		dst.BaselineDir = src.BaselineDir
	}
	if src.ThresholdPct != 0 {
		dst.ThresholdPct = src.ThresholdPct
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
	if src.Hyperfine.Bin != "" {
		dst.Hyperfine.Bin = src.Hyperfine.Bin
	}
	if src.Hyperfine.Warmup != 0 {
		dst.Hyperfine.Warmup = src.Hyperfine.Warmup
	}
	if src.Hyperfine.MinRuns != 0 {
		dst.Hyperfine.MinRuns = src.Hyperfine.MinRuns
	}
	if len(src.Suites) > 0 {
		dst.Suites = src.Suites
	}
}
