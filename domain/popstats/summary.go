package popstats

import (
	"math"
	"sort"

	mfstats "github.com/montanaflynn/stats"

	"genodiff/domain/core"
)

// DefaultConfidenceLevel is used when the caller passes a level outside (0, 1).
const DefaultConfidenceLevel = 0.95

// IntervalEstimate is the mean and two-sided percentile interval of one scalar
// bootstrap distribution.
type IntervalEstimate struct {
	Mean  float64 `json:"mean"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// LocusSummary is an IntervalEstimate for one locus.
type LocusSummary struct {
	Locus core.LocusName `json:"locus"`
	IntervalEstimate
}

// Summary aggregates a Distribution: global estimate plus independent per-locus
// estimates in the distribution's locus order.
type Summary struct {
	Statistic Name             `json:"statistic"`
	Level     float64          `json:"confidence_level"`
	NumTrials int              `json:"num_trials"`
	Global    IntervalEstimate `json:"global"`
	PerLocus  []LocusSummary   `json:"per_locus,omitempty"`
}

// Summarize reduces a bootstrap distribution to mean and percentile interval.
// lower = the (1-level)/2 quantile, upper = the 1-(1-level)/2 quantile. A
// single-trial distribution yields a zero-width interval at its only value.
func Summarize(d *Distribution, level float64) (*Summary, error) {
	if d == nil || d.Len() == 0 {
		return nil, core.ErrEmptyDistribution
	}
	if level <= 0 || level >= 1 {
		level = DefaultConfidenceLevel
	}

	global, err := summarizeValues(d.Globals(), level)
	if err != nil {
		return nil, err
	}

	loci := d.Loci()
	perLocus := make([]LocusSummary, len(loci))
	for j, locus := range loci {
		est, err := summarizeValues(d.LocusValues(j), level)
		if err != nil {
			return nil, err
		}
		perLocus[j] = LocusSummary{Locus: locus, IntervalEstimate: est}
	}
	if len(perLocus) == 0 {
		perLocus = nil
	}

	return &Summary{
		Statistic: d.Statistic(),
		Level:     level,
		NumTrials: d.Len(),
		Global:    global,
		PerLocus:  perLocus,
	}, nil
}

// PermutationPValue computes the empirical p-value of an observed statistic
// against a null distribution: the fraction of null trials at least as extreme
// as the observation. twoTailed compares absolute values.
func PermutationPValue(observed float64, null *Distribution, twoTailed bool) (float64, error) {
	if null == nil || null.Len() == 0 {
		return 1.0, core.ErrEmptyDistribution
	}

	extreme := 0
	for _, v := range null.Globals() {
		if twoTailed {
			if math.Abs(v) >= math.Abs(observed) {
				extreme++
			}
		} else if v >= observed {
			extreme++
		}
	}

	p := float64(extreme) / float64(null.Len())
	if p > 1.0 {
		p = 1.0
	}
	return p, nil
}

func summarizeValues(values []float64, level float64) (IntervalEstimate, error) {
	mean, err := mfstats.Mean(mfstats.Float64Data(values))
	if err != nil {
		return IntervalEstimate{}, err
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	alpha := 1.0 - level
	lowerIdx := percentileIndex(len(sorted), alpha/2.0)
	upperIdx := percentileIndex(len(sorted), 1.0-alpha/2.0)

	return IntervalEstimate{
		Mean:  mean,
		Lower: sorted[lowerIdx],
		Upper: sorted[upperIdx],
	}, nil
}

func percentileIndex(n int, p float64) int {
	idx := int(math.Round(float64(n-1) * p))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}
