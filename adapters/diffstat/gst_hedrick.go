package diffstat

import (
	"context"

	"genodiff/domain/genetic"
	"genodiff/domain/popstats"
)

// GstHedrick computes Hedrick's G'st: Gst standardized by its maximum
// attainable value given the within-stratum diversity, so highly polymorphic
// markers (microsatellites) are comparable to less variable ones.
type GstHedrick struct{}

// NewGstHedrick creates the Gst-Hedrick statistic.
func NewGstHedrick() *GstHedrick {
	return &GstHedrick{}
}

// Name returns the statistic tag
func (g *GstHedrick) Name() popstats.Name {
	return popstats.StatGstHedrick
}

// Description returns a human-readable description
func (g *GstHedrick) Description() string {
	return "Hedrick's G'st: Gst divided by its maximum given within-stratum heterozygosity"
}

// Compute evaluates G'st per locus and globally from across-locus mean
// heterozygosities.
func (g *GstHedrick) Compute(ctx context.Context, ds *genetic.Dataset, grouping *genetic.Grouping) (popstats.Result, error) {
	return computeVariant(ctx, ds, grouping, g.Name(), gstHedrickOf)
}

func gstHedrickOf(k locusKernel) float64 {
	gst := gstNeiOf(k)
	if gst == 0 {
		return 0
	}

	kf := float64(k.K)
	// Gst_max = ((k-1)(1-Hs)) / (k-1+Hs)
	gstMax := ((kf - 1) * (1 - k.Hs)) / (kf - 1 + k.Hs)
	if gstMax <= 0 {
		// Hs == 1 means every stratum is maximally diverse; Gst has no room
		// to move and the standardized value is undefined. Report 0.
		return 0
	}
	return gst / gstMax
}
