package popstats

import (
	"fmt"

	"genodiff/domain/core"
)

// Distribution is the ordered accumulation of one Result per resampling trial.
// All entries carry the same statistic tag and, when per-locus, the same locus
// order; NewDistribution rejects anything else.
type Distribution struct {
	statistic Name
	loci      []core.LocusName
	results   []Result
}

// NewDistribution validates trial results into a distribution. The slice order
// is the trial order.
func NewDistribution(results []Result) (*Distribution, error) {
	if len(results) == 0 {
		return nil, core.ErrEmptyDistribution
	}

	first := results[0]
	loci := first.LocusOrder()
	for i, r := range results[1:] {
		if r.Statistic != first.Statistic {
			return nil, fmt.Errorf("%w: trial %d is %q, trial 0 is %q",
				core.ErrMixedDistribution, i+1, r.Statistic, first.Statistic)
		}
		order := r.LocusOrder()
		if len(order) != len(loci) {
			return nil, fmt.Errorf("%w: trial %d has %d loci, trial 0 has %d",
				core.ErrLocusMismatch, i+1, len(order), len(loci))
		}
		for j := range order {
			if order[j] != loci[j] {
				return nil, fmt.Errorf("%w: trial %d locus %d is %q, trial 0 has %q",
					core.ErrLocusMismatch, i+1, j, order[j], loci[j])
			}
		}
	}

	return &Distribution{
		statistic: first.Statistic,
		loci:      loci,
		results:   append([]Result(nil), results...),
	}, nil
}

// Statistic returns the tag shared by every trial.
func (d *Distribution) Statistic() Name { return d.statistic }

// Len returns the number of trials.
func (d *Distribution) Len() int { return len(d.results) }

// Result returns the result of trial i.
func (d *Distribution) Result(i int) Result { return d.results[i] }

// Loci returns the shared per-locus order (empty for scalar-only statistics).
func (d *Distribution) Loci() []core.LocusName {
	return append([]core.LocusName(nil), d.loci...)
}

// Globals returns the global scalar of every trial, in trial order.
func (d *Distribution) Globals() []float64 {
	out := make([]float64, len(d.results))
	for i, r := range d.results {
		out[i] = r.Global
	}
	return out
}

// LocusValues returns every trial's value at locus index j, in trial order.
func (d *Distribution) LocusValues(j int) []float64 {
	out := make([]float64, len(d.results))
	for i, r := range d.results {
		out[i] = r.PerLocus[j].Value
	}
	return out
}
