package popstats

import (
	"errors"
	"math"
	"testing"

	"genodiff/domain/core"
)

func scalarDistribution(t *testing.T, values ...float64) *Distribution {
	t.Helper()
	results := make([]Result, len(values))
	for i, v := range values {
		r, err := NewScalarResult(StatGstNei, v)
		if err != nil {
			t.Fatalf("building result: %v", err)
		}
		results[i] = r
	}
	d, err := NewDistribution(results)
	if err != nil {
		t.Fatalf("building distribution: %v", err)
	}
	return d
}

func TestSummarizeMeanAndInterval(t *testing.T) {
	d := scalarDistribution(t, 0.1, 0.2, 0.3, 0.4, 0.5)

	s, err := Summarize(d, 0.95)
	if err != nil {
		t.Fatalf("summarizing: %v", err)
	}
	if s.NumTrials != 5 {
		t.Fatalf("expected 5 trials, got %d", s.NumTrials)
	}
	if math.Abs(s.Global.Mean-0.3) > 1e-12 {
		t.Fatalf("expected mean 0.3, got %g", s.Global.Mean)
	}
	if s.Global.Lower > s.Global.Mean || s.Global.Upper < s.Global.Mean {
		t.Fatalf("interval [%g, %g] does not contain mean %g", s.Global.Lower, s.Global.Upper, s.Global.Mean)
	}
}

func TestSummarizeIntervalNarrowsWithLevel(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64(i) / 1000.0
	}
	d := scalarDistribution(t, values...)

	wide, err := Summarize(d, 0.99)
	if err != nil {
		t.Fatalf("summarizing at 0.99: %v", err)
	}
	narrow, err := Summarize(d, 0.80)
	if err != nil {
		t.Fatalf("summarizing at 0.80: %v", err)
	}

	// Lower bound rises and upper bound falls as the level decreases.
	if narrow.Global.Lower < wide.Global.Lower {
		t.Fatalf("lower bound fell with level: %g < %g", narrow.Global.Lower, wide.Global.Lower)
	}
	if narrow.Global.Upper > wide.Global.Upper {
		t.Fatalf("upper bound rose with level: %g > %g", narrow.Global.Upper, wide.Global.Upper)
	}
}

func TestSummarizeSingleTrialZeroWidth(t *testing.T) {
	d := scalarDistribution(t, 0.42)

	s, err := Summarize(d, 0.95)
	if err != nil {
		t.Fatalf("summarizing: %v", err)
	}
	if s.Global.Lower != 0.42 || s.Global.Upper != 0.42 || s.Global.Mean != 0.42 {
		t.Fatalf("single trial should collapse to its value, got %+v", s.Global)
	}
}

func TestSummarizeEmptyFails(t *testing.T) {
	if _, err := Summarize(nil, 0.95); !errors.Is(err, core.ErrEmptyDistribution) {
		t.Fatalf("expected empty-distribution error, got %v", err)
	}
}

func TestSummarizePerLocusPreservesOrder(t *testing.T) {
	perLocusA := []LocusValue{{Locus: "loc_02", Value: 0.1}, {Locus: "loc_01", Value: 0.9}}
	perLocusB := []LocusValue{{Locus: "loc_02", Value: 0.3}, {Locus: "loc_01", Value: 0.7}}

	ra, err := NewResult(StatJostD, 0.5, perLocusA)
	if err != nil {
		t.Fatalf("building result: %v", err)
	}
	rb, err := NewResult(StatJostD, 0.5, perLocusB)
	if err != nil {
		t.Fatalf("building result: %v", err)
	}
	d, err := NewDistribution([]Result{ra, rb})
	if err != nil {
		t.Fatalf("building distribution: %v", err)
	}

	s, err := Summarize(d, 0.95)
	if err != nil {
		t.Fatalf("summarizing: %v", err)
	}
	if len(s.PerLocus) != 2 {
		t.Fatalf("expected 2 per-locus summaries, got %d", len(s.PerLocus))
	}
	// The deliberately non-alphabetical input order must survive.
	if s.PerLocus[0].Locus != "loc_02" || s.PerLocus[1].Locus != "loc_01" {
		t.Fatalf("locus order not preserved: %q, %q", s.PerLocus[0].Locus, s.PerLocus[1].Locus)
	}
	if math.Abs(s.PerLocus[0].Mean-0.2) > 1e-12 {
		t.Fatalf("loc_02 mean: expected 0.2, got %g", s.PerLocus[0].Mean)
	}
	if math.Abs(s.PerLocus[1].Mean-0.8) > 1e-12 {
		t.Fatalf("loc_01 mean: expected 0.8, got %g", s.PerLocus[1].Mean)
	}
}

func TestPermutationPValue(t *testing.T) {
	null := scalarDistribution(t, 0.01, 0.02, 0.03, 0.04, 0.50)

	tests := []struct {
		name      string
		observed  float64
		twoTailed bool
		want      float64
	}{
		{name: "observed beyond most of null", observed: 0.10, twoTailed: true, want: 0.2},
		{name: "observed below all of null", observed: 0.001, twoTailed: true, want: 1.0},
		{name: "one-tailed", observed: 0.05, twoTailed: false, want: 0.2},
		{name: "two-tailed uses magnitude", observed: -0.10, twoTailed: true, want: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PermutationPValue(tt.observed, null, tt.twoTailed)
			if err != nil {
				t.Fatalf("computing p-value: %v", err)
			}
			if math.Abs(p-tt.want) > 1e-12 {
				t.Fatalf("expected p=%g, got %g", tt.want, p)
			}
		})
	}

	if _, err := PermutationPValue(0.5, nil, true); !errors.Is(err, core.ErrEmptyDistribution) {
		t.Fatalf("expected empty-distribution error, got %v", err)
	}
}
