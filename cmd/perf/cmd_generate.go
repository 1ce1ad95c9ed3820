package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brickell-Research/perf/internal/corpus"
	"github.com/Brickell-Research/perf/internal/projectconfig"
)

var (
	generateOut    string
	generateScales []string
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the synthetic benchmark corpus",
		Long: `Generate .caffeine blueprint and expectation files at parametrized scales.

Generation is deterministic: the same scale always yields byte-identical
files, so recorded baselines stay comparable across corpus rebuilds.`,
		Args: cobra.NoArgs,
		RunE: generateCommandE,
	}

	cmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory (default: corpus dir from .perf.yaml)")
	cmd.Flags().StringArrayVar(&generateScales, "scale", nil,
		fmt.Sprintf("Scale to generate (can be repeated; default: all of %v)", corpus.ScaleNames()))

	return cmd
}

func generateCommandE(cmd *cobra.Command, _ []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	outDir := generateOut
	if outDir == "" {
		outDir = cfg.CorpusDir
	}

	scales := generateScales
	if len(scales) == 0 {
		scales = corpus.ScaleNames()
	}

	for _, scale := range scales {
		if err := corpus.Generate(outDir, scale); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "generated %s corpus under %s\n", scale, outDir)
	}
	return nil
}
