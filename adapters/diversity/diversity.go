package diversity

import (
	"genodiff/domain/core"
	"genodiff/domain/genetic"
)

// LocusSummary describes the diversity of one locus pooled across all samples.
type LocusSummary struct {
	Locus        core.LocusName `json:"locus"`
	TypedSamples int            `json:"typed_samples"` // samples with a non-missing call
	AlleleCount  int            `json:"allele_count"`  // distinct allele codes observed
	ObservedHet  float64        `json:"observed_het"`  // fraction of typed multi-copy genotypes that are heterozygous
	ExpectedHet  float64        `json:"expected_het"`  // 1 - sum(p^2) over pooled allele frequencies
}

// Summarize computes a per-locus diversity table for the whole dataset,
// ignoring stratification. Observed heterozygosity only counts samples with at
// least two allele copies at the locus; for haploid data it stays 0.
func Summarize(ds *genetic.Dataset) ([]LocusSummary, error) {
	if ds == nil || ds.NumSamples() == 0 {
		return nil, core.ErrEmptyDataset
	}

	loci := ds.Loci()
	out := make([]LocusSummary, len(loci))
	for j, locus := range loci {
		counts := make(map[genetic.Allele]int)
		totalAlleles := 0
		typed := 0
		multiCopy := 0
		hetero := 0

		for i := 0; i < ds.NumSamples(); i++ {
			gt := ds.GenotypeAt(i, j)
			if gt.IsMissing() {
				continue
			}
			typed++
			for _, a := range gt {
				counts[a]++
				totalAlleles++
			}
			if len(gt) >= 2 {
				multiCopy++
				if isHeterozygous(gt) {
					hetero++
				}
			}
		}

		s := LocusSummary{Locus: locus, TypedSamples: typed, AlleleCount: len(counts)}
		if totalAlleles > 0 {
			sumSq := 0.0
			for _, c := range counts {
				p := float64(c) / float64(totalAlleles)
				sumSq += p * p
			}
			s.ExpectedHet = 1.0 - sumSq
		}
		if multiCopy > 0 {
			s.ObservedHet = float64(hetero) / float64(multiCopy)
		}
		out[j] = s
	}
	return out, nil
}

func isHeterozygous(gt genetic.Genotype) bool {
	for _, a := range gt[1:] {
		if a != gt[0] {
			return true
		}
	}
	return false
}
