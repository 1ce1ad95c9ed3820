// Package statistics provides resampling-based noise diagnostics for raw
// timing samples. Nothing here feeds classification; the comparator works on
// means alone.
package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// ConfidenceInterval holds the result of a bootstrap confidence interval
// computation over timing samples, in seconds.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 10000

// reportSeed fixes the resampling RNG so that two reports over identical
// inputs are byte-identical.
const reportSeed = 42

// BootstrapCI computes a bootstrap confidence interval of the mean over the
// given timing samples using the percentile method, with a fixed seed.
// confidenceLevel is in (0, 1), e.g. 0.95. Returns a degenerate interval
// when fewer than 2 samples exist.
func BootstrapCI(times []float64, confidenceLevel float64) ConfidenceInterval {
	return BootstrapCIWithSeed(times, confidenceLevel, reportSeed)
}

// BootstrapCIWithSeed is like BootstrapCI with an explicit seed.
func BootstrapCIWithSeed(times []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	n := len(times)
	if n < 2 {
		m := mean(times)
		return ConfidenceInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: confidenceLevel,
			NumBootstraps:   0,
		}
	}

	rng := rand.New(rand.NewSource(seed))

	m := mean(times)
	iters := DefaultBootstrapIterations

	// Resample with replacement, taking the mean of each resample.
	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = times[rng.Intn(n)]
		}
		bootMeans[i] = mean(sample)
	}

	sort.Float64s(bootMeans)

	// Percentile method
	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return ConfidenceInterval{
		Lower:           bootMeans[loIdx],
		Upper:           bootMeans[hiIdx],
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
