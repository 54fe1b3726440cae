package diffstat

import (
	"context"

	"genodiff/domain/genetic"
	"genodiff/domain/popstats"
)

// GstNei computes Nei's Gst: the proportion of total expected heterozygosity
// found between strata, (Ht - Hs) / Ht.
type GstNei struct{}

// NewGstNei creates the Gst-Nei statistic.
func NewGstNei() *GstNei {
	return &GstNei{}
}

// Name returns the statistic tag
func (g *GstNei) Name() popstats.Name {
	return popstats.StatGstNei
}

// Description returns a human-readable description
func (g *GstNei) Description() string {
	return "Nei's Gst: proportion of expected heterozygosity attributable to differentiation between strata"
}

// Compute evaluates Gst per locus and globally from across-locus mean
// heterozygosities.
func (g *GstNei) Compute(ctx context.Context, ds *genetic.Dataset, grouping *genetic.Grouping) (popstats.Result, error) {
	return computeVariant(ctx, ds, grouping, g.Name(), gstNeiOf)
}

func gstNeiOf(k locusKernel) float64 {
	if !k.informative() || k.Ht <= 0 {
		// Monomorphic or single-stratum locus carries no differentiation signal.
		return 0
	}
	return (k.Ht - k.Hs) / k.Ht
}
