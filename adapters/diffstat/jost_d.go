package diffstat

import (
	"context"

	"genodiff/domain/genetic"
	"genodiff/domain/popstats"
)

// JostD computes Jost's D, a differentiation measure built on effective allele
// numbers rather than heterozygosity ratios, (k/(k-1)) * (Ht - Hs) / (1 - Hs).
type JostD struct{}

// NewJostD creates the Jost's D statistic.
func NewJostD() *JostD {
	return &JostD{}
}

// Name returns the statistic tag
func (j *JostD) Name() popstats.Name {
	return popstats.StatJostD
}

// Description returns a human-readable description
func (j *JostD) Description() string {
	return "Jost's D: allelic differentiation between strata based on effective allele numbers"
}

// Compute evaluates D per locus and globally from across-locus mean
// heterozygosities.
func (j *JostD) Compute(ctx context.Context, ds *genetic.Dataset, grouping *genetic.Grouping) (popstats.Result, error) {
	return computeVariant(ctx, ds, grouping, j.Name(), jostDOf)
}

func jostDOf(k locusKernel) float64 {
	if !k.informative() {
		return 0
	}
	denom := 1 - k.Hs
	if denom <= 0 {
		return 0
	}
	kf := float64(k.K)
	return (kf / (kf - 1)) * (k.Ht - k.Hs) / denom
}
