package popstats

import (
	"fmt"

	"genodiff/domain/core"
)

// Name tags a statistic variant. The engine is statistic-agnostic: it only ever
// sees the tag and the compute capability behind it.
type Name string

const (
	StatGstNei     Name = "gst_nei"     // Nei's Gst
	StatGstHedrick Name = "gst_hedrick" // Hedrick's G'st (standardized Gst)
	StatJostD      Name = "jost_d"      // Jost's D

	// Recognized collaborator statistics. External packages may register
	// implementations under these tags; this module does not ship them.
	StatAMOVA Name = "amova"
	StatDAPC  Name = "dapc"
)

// LocusValue is one per-locus scalar, tagged with its locus.
type LocusValue struct {
	Locus core.LocusName `json:"locus"`
	Value float64        `json:"value"`
}

// Result is one computed statistic: a global scalar plus an optional ordered
// per-locus breakdown. Immutable once computed.
type Result struct {
	Statistic Name         `json:"statistic"`
	Global    float64      `json:"global"`
	PerLocus  []LocusValue `json:"per_locus,omitempty"`
}

// NewScalarResult builds a global-only result.
func NewScalarResult(stat Name, global float64) (Result, error) {
	if stat == "" {
		return Result{}, fmt.Errorf("%w: result without statistic name", core.ErrInvalidInput)
	}
	return Result{Statistic: stat, Global: global}, nil
}

// NewResult builds a result with a per-locus breakdown. Locus order is
// preserved exactly as given.
func NewResult(stat Name, global float64, perLocus []LocusValue) (Result, error) {
	if stat == "" {
		return Result{}, fmt.Errorf("%w: result without statistic name", core.ErrInvalidInput)
	}
	seen := make(map[core.LocusName]bool, len(perLocus))
	for _, lv := range perLocus {
		if lv.Locus == "" {
			return Result{}, fmt.Errorf("%w: per-locus value without locus name", core.ErrInvalidInput)
		}
		if seen[lv.Locus] {
			return Result{}, fmt.Errorf("%w: duplicate locus %q in result", core.ErrInvalidInput, lv.Locus)
		}
		seen[lv.Locus] = true
	}
	return Result{
		Statistic: stat,
		Global:    global,
		PerLocus:  append([]LocusValue(nil), perLocus...),
	}, nil
}

// LocusOrder returns the ordered locus names of the per-locus breakdown.
func (r Result) LocusOrder() []core.LocusName {
	loci := make([]core.LocusName, len(r.PerLocus))
	for i, lv := range r.PerLocus {
		loci[i] = lv.Locus
	}
	return loci
}
