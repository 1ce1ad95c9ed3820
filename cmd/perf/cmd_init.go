package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Brickell-Research/perf/internal/corpus"
	"github.com/Brickell-Research/perf/internal/projectconfig"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively create a .perf.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInitWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runInitWizard(in io.Reader, out io.Writer) error {
	if _, err := os.Stat(".perf.yaml"); err == nil {
		return fmt.Errorf(".perf.yaml already exists; edit it directly instead")
	}

	var (
		compiler     = projectconfig.DefaultCompilerBin
		thresholdRaw = strconv.FormatFloat(projectconfig.DefaultThresholdPct, 'f', -1, 64)
		scale        = "large"
	)

	scaleOptions := make([]huh.Option[string], 0, len(corpus.ScaleNames()))
	for _, name := range corpus.ScaleNames() {
		scaleOptions = append(scaleOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Compiler binary").
				Description("The compiler-under-test; must be on PATH or an absolute path").
				Value(&compiler).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("compiler binary is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Regression threshold (%)").
				Description("Relative slowdown beyond which a benchmark fails").
				Value(&thresholdRaw).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("not a number")
					}
					if v < 0 {
						return fmt.Errorf("threshold must be >= 0")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Default corpus scale").
				Options(scaleOptions...).
				Value(&scale),
		),
	).WithInput(in).WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return fmt.Errorf("init wizard failed: %w", err)
	}

	threshold, err := strconv.ParseFloat(strings.TrimSpace(thresholdRaw), 64)
	if err != nil {
		return fmt.Errorf("parsing threshold: %w", err)
	}

	cfg := projectconfig.ProjectConfig{
		CompilerBin:  strings.TrimSpace(compiler),
		ThresholdPct: threshold,
		Suites: []projectconfig.SuiteConfig{
			{Name: "complexity", Scale: scale},
			{Name: "scaling", Scale: nextScaleUp(scale)},
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(".perf.yaml", data, 0o644); err != nil {
		return fmt.Errorf("writing .perf.yaml: %w", err)
	}

	fmt.Fprintln(out, "wrote .perf.yaml")
	return nil
}

// nextScaleUp returns the scale one step larger, for the scaling suite; the
// largest scale maps to itself.
func nextScaleUp(scale string) string {
	names := corpus.ScaleNames()
	for i, name := range names {
		if name == scale && i+1 < len(names) {
			return names[i+1]
		}
	}
	return scale
}
