package diversity

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"genodiff/domain/core"
	"genodiff/domain/genetic"
	"genodiff/internal/testkit"
)

const tol = 1e-9

func TestSummarizeHandComputed(t *testing.T) {
	ds, _ := testkit.FourSampleDataset()

	summaries, err := Summarize(ds)
	if err != nil {
		t.Fatalf("summarizing: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 loci, got %d", len(summaries))
	}

	// loc_01 pools alleles 100:3, 102:1, 104:3, 106:1 over 8 copies.
	loc01 := summaries[0]
	if loc01.Locus != "loc_01" {
		t.Fatalf("expected loc_01 first, got %q", loc01.Locus)
	}
	if loc01.TypedSamples != 4 || loc01.AlleleCount != 4 {
		t.Fatalf("loc_01: expected 4 typed / 4 alleles, got %d / %d", loc01.TypedSamples, loc01.AlleleCount)
	}
	if math.Abs(loc01.ExpectedHet-0.6875) > tol {
		t.Fatalf("loc_01 expected het: want 0.6875, got %g", loc01.ExpectedHet)
	}
	if math.Abs(loc01.ObservedHet-0.5) > tol {
		t.Fatalf("loc_01 observed het: want 0.5, got %g", loc01.ObservedHet)
	}

	// loc_02 is a balanced two-allele locus: 200:4, 202:4.
	loc02 := summaries[1]
	if loc02.AlleleCount != 2 {
		t.Fatalf("loc_02: expected 2 alleles, got %d", loc02.AlleleCount)
	}
	if math.Abs(loc02.ExpectedHet-0.5) > tol {
		t.Fatalf("loc_02 expected het: want 0.5, got %g", loc02.ExpectedHet)
	}
	if math.Abs(loc02.ObservedHet-0.5) > tol {
		t.Fatalf("loc_02 observed het: want 0.5, got %g", loc02.ObservedHet)
	}
}

func TestSummarizeSkipsMissingCalls(t *testing.T) {
	ds, err := genetic.NewDataset(
		[]core.LocusName{"loc_01"},
		[]genetic.Sample{
			{ID: "s1", Genotypes: []genetic.Genotype{{"100", "102"}}},
			{ID: "s2", Genotypes: []genetic.Genotype{nil}},
			{ID: "s3", Genotypes: []genetic.Genotype{{"100", "100"}}},
		},
	)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}

	summaries, err := Summarize(ds)
	if err != nil {
		t.Fatalf("summarizing: %v", err)
	}
	s := summaries[0]
	if s.TypedSamples != 2 {
		t.Fatalf("expected 2 typed samples, got %d", s.TypedSamples)
	}
	// Alleles 100:3, 102:1 over 4 copies.
	if math.Abs(s.ExpectedHet-0.375) > tol {
		t.Fatalf("expected het: want 0.375, got %g", s.ExpectedHet)
	}
	if math.Abs(s.ObservedHet-0.5) > tol {
		t.Fatalf("observed het: want 0.5, got %g", s.ObservedHet)
	}
}

func TestSummarizeHaploid(t *testing.T) {
	ds, err := genetic.NewDataset(
		[]core.LocusName{"pos_1"},
		[]genetic.Sample{
			{ID: "s1", Genotypes: []genetic.Genotype{{"A"}}},
			{ID: "s2", Genotypes: []genetic.Genotype{{"T"}}},
		},
	)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}

	summaries, err := Summarize(ds)
	if err != nil {
		t.Fatalf("summarizing: %v", err)
	}
	s := summaries[0]
	if s.ObservedHet != 0 {
		t.Fatalf("haploid observed het must stay 0, got %g", s.ObservedHet)
	}
	if math.Abs(s.ExpectedHet-0.5) > tol {
		t.Fatalf("expected het: want 0.5, got %g", s.ExpectedHet)
	}
}

func TestSummarizeEmptyDataset(t *testing.T) {
	if _, err := Summarize(nil); !errors.Is(err, core.ErrEmptyDataset) {
		t.Fatalf("expected empty-dataset error, got %v", err)
	}
}

// hweDataset builds a single-locus diploid dataset with the given genotype
// counts for alleles "A" and "B".
func hweDataset(t *testing.T, nAA, nAB, nBB int) *genetic.Dataset {
	t.Helper()
	var samples []genetic.Sample
	add := func(n int, gt genetic.Genotype) {
		for i := 0; i < n; i++ {
			id := core.SampleID(fmt.Sprintf("s%03d", len(samples)+1))
			samples = append(samples, genetic.Sample{ID: id, Genotypes: []genetic.Genotype{gt}})
		}
	}
	add(nAA, genetic.Genotype{"A", "A"})
	add(nAB, genetic.Genotype{"A", "B"})
	add(nBB, genetic.Genotype{"B", "B"})

	ds, err := genetic.NewDataset([]core.LocusName{"loc_01"}, samples)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	return ds
}

func TestHWEEquilibrium(t *testing.T) {
	// 25/50/25 are exactly the Hardy-Weinberg proportions for p = q = 0.5.
	ds := hweDataset(t, 25, 50, 25)

	results, err := TestHWE(ds)
	if err != nil {
		t.Fatalf("testing hwe: %v", err)
	}
	r := results[0]
	if r.TypedSamples != 100 || r.AlleleCount != 2 || r.DF != 1 {
		t.Fatalf("unexpected test shape: %+v", r)
	}
	if r.ChiSquare > tol {
		t.Fatalf("chi-square on exact proportions should be 0, got %g", r.ChiSquare)
	}
	if math.Abs(r.PValue-1.0) > 1e-6 {
		t.Fatalf("p-value on exact proportions should be 1, got %g", r.PValue)
	}
}

func TestHWEExcessHeterozygotes(t *testing.T) {
	// All 100 samples heterozygous: chi-square = 100 on 1 df.
	ds := hweDataset(t, 0, 100, 0)

	results, err := TestHWE(ds)
	if err != nil {
		t.Fatalf("testing hwe: %v", err)
	}
	r := results[0]
	if math.Abs(r.ChiSquare-100.0) > 1e-6 {
		t.Fatalf("expected chi-square 100, got %g", r.ChiSquare)
	}
	if r.PValue > 1e-6 {
		t.Fatalf("expected vanishing p-value, got %g", r.PValue)
	}
}

func TestHWEMonomorphicLocus(t *testing.T) {
	ds := hweDataset(t, 10, 0, 0)

	results, err := TestHWE(ds)
	if err != nil {
		t.Fatalf("testing hwe: %v", err)
	}
	r := results[0]
	if r.PValue != 1.0 || r.DF != 0 || r.ChiSquare != 0 {
		t.Fatalf("monomorphic locus should be a trivial pass, got %+v", r)
	}
}

func TestHWESkipsNonDiploidCalls(t *testing.T) {
	ds, err := genetic.NewDataset(
		[]core.LocusName{"loc_01"},
		[]genetic.Sample{
			{ID: "s1", Genotypes: []genetic.Genotype{{"A"}}},
			{ID: "s2", Genotypes: []genetic.Genotype{nil}},
			{ID: "s3", Genotypes: []genetic.Genotype{{"A", "B"}}},
		},
	)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}

	results, err := TestHWE(ds)
	if err != nil {
		t.Fatalf("testing hwe: %v", err)
	}
	if results[0].TypedSamples != 1 {
		t.Fatalf("only the diploid call should count, got %d", results[0].TypedSamples)
	}
}

func TestHWEEmptyDataset(t *testing.T) {
	if _, err := TestHWE(nil); !errors.Is(err, core.ErrEmptyDataset) {
		t.Fatalf("expected empty-dataset error, got %v", err)
	}
}
