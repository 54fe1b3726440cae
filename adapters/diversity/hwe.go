package diversity

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"genodiff/domain/core"
	"genodiff/domain/genetic"
)

// HWEResult is a Hardy-Weinberg equilibrium chi-square test for one locus.
type HWEResult struct {
	Locus        core.LocusName `json:"locus"`
	TypedSamples int            `json:"typed_samples"`
	AlleleCount  int            `json:"allele_count"`
	ChiSquare    float64        `json:"chi_square"`
	DF           int            `json:"df"`
	PValue       float64        `json:"p_value"`
}

// TestHWE runs the Hardy-Weinberg chi-square test at every locus. Only diploid
// genotypes enter the test; haploid or missing calls are skipped. Loci with
// fewer than two alleles or no diploid calls come back with PValue 1 and DF 0.
func TestHWE(ds *genetic.Dataset) ([]HWEResult, error) {
	if ds == nil || ds.NumSamples() == 0 {
		return nil, core.ErrEmptyDataset
	}

	loci := ds.Loci()
	out := make([]HWEResult, len(loci))
	for j, locus := range loci {
		res, err := testLocus(ds, j)
		if err != nil {
			return nil, fmt.Errorf("locus %q: %w", locus, err)
		}
		res.Locus = locus
		out[j] = res
	}
	return out, nil
}

func testLocus(ds *genetic.Dataset, j int) (HWEResult, error) {
	alleleCounts := make(map[genetic.Allele]int)
	genotypeCounts := make(map[string]int)
	n := 0

	for i := 0; i < ds.NumSamples(); i++ {
		gt := ds.GenotypeAt(i, j)
		if len(gt) != 2 {
			continue
		}
		n++
		alleleCounts[gt[0]]++
		alleleCounts[gt[1]]++
		genotypeCounts[genotypeKey(gt[0], gt[1])]++
	}

	res := HWEResult{TypedSamples: n, AlleleCount: len(alleleCounts), PValue: 1.0}
	if n == 0 || len(alleleCounts) < 2 {
		return res, nil
	}

	alleles := make([]genetic.Allele, 0, len(alleleCounts))
	for a := range alleleCounts {
		alleles = append(alleles, a)
	}
	sort.Slice(alleles, func(x, y int) bool { return alleles[x] < alleles[y] })

	totalAlleles := float64(2 * n)
	freq := make(map[genetic.Allele]float64, len(alleles))
	for _, a := range alleles {
		freq[a] = float64(alleleCounts[a]) / totalAlleles
	}

	// Expected counts under panmixia: n*p^2 for homozygotes, 2n*p*q for
	// heterozygotes.
	chi := 0.0
	for x, a := range alleles {
		for _, b := range alleles[x:] {
			var expected float64
			if a == b {
				expected = float64(n) * freq[a] * freq[a]
			} else {
				expected = 2 * float64(n) * freq[a] * freq[b]
			}
			if expected == 0 {
				continue
			}
			observed := float64(genotypeCounts[genotypeKey(a, b)])
			diff := observed - expected
			chi += diff * diff / expected
		}
	}

	a := len(alleles)
	df := a * (a - 1) / 2
	res.ChiSquare = chi
	res.DF = df

	chiDist := distuv.ChiSquared{K: float64(df)}
	res.PValue = 1 - chiDist.CDF(chi)
	return res, nil
}

// genotypeKey normalizes an unordered allele pair.
func genotypeKey(a, b genetic.Allele) string {
	if b < a {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}
