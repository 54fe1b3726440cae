package diffstat

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"genodiff/domain/core"
	"genodiff/domain/genetic"
)

// locusKernel holds the heterozygosity decomposition of one locus under one
// grouping. Every differentiation statistic in this package is a different
// function of these three numbers.
type locusKernel struct {
	// K is the number of strata with at least one typed allele at this locus.
	K int
	// Hs is the mean within-stratum expected heterozygosity.
	Hs float64
	// Ht is the expected heterozygosity of the across-strata mean allele
	// frequencies.
	Ht float64
}

// informative reports whether the locus can measure differentiation at all.
func (k locusKernel) informative() bool {
	return k.K >= 2
}

// computeKernels decomposes every locus of the dataset. Strata with no typed
// allele at a locus are dropped from that locus only; a stratum missing from
// the grouping entirely is an error.
func computeKernels(ds *genetic.Dataset, grouping *genetic.Grouping) ([]locusKernel, error) {
	numLoci := ds.NumLoci()
	kernels := make([]locusKernel, numLoci)

	for j := 0; j < numLoci; j++ {
		counts := make(map[core.StratumLabel]map[genetic.Allele]int)
		totals := make(map[core.StratumLabel]int)

		for i := 0; i < ds.NumSamples(); i++ {
			s := ds.Sample(i)
			label, ok := grouping.Label(s.ID)
			if !ok {
				return nil, core.NewSampleNotFoundError(s.ID)
			}
			gt := s.Genotypes[j]
			if gt.IsMissing() {
				continue
			}
			if counts[label] == nil {
				counts[label] = make(map[genetic.Allele]int)
			}
			for _, a := range gt {
				counts[label][a]++
				totals[label]++
			}
		}

		// Strata and alleles in a deterministic order so float accumulation
		// is stable; map iteration order would leak into the last ulp.
		var included []core.StratumLabel
		for _, label := range grouping.Strata() {
			if totals[label] > 0 {
				included = append(included, label)
			}
		}
		k := len(included)
		if k == 0 {
			kernels[j] = locusKernel{}
			continue
		}

		alleleSet := make(map[genetic.Allele]bool)
		for _, label := range included {
			for allele := range counts[label] {
				alleleSet[allele] = true
			}
		}
		alleles := make([]genetic.Allele, 0, len(alleleSet))
		for allele := range alleleSet {
			alleles = append(alleles, allele)
		}
		sort.Slice(alleles, func(x, y int) bool { return alleles[x] < alleles[y] })

		withinHet := make([]float64, k)
		meanFreqs := make(map[genetic.Allele]float64, len(alleles))
		for s, label := range included {
			total := float64(totals[label])
			sumSq := 0.0
			for _, allele := range alleles {
				c := counts[label][allele]
				if c == 0 {
					continue
				}
				p := float64(c) / total
				sumSq += p * p
				meanFreqs[allele] += p / float64(k)
			}
			withinHet[s] = 1.0 - sumSq
		}

		sumSqMean := 0.0
		for _, allele := range alleles {
			p := meanFreqs[allele]
			sumSqMean += p * p
		}

		kernels[j] = locusKernel{
			K:  k,
			Hs: stat.Mean(withinHet, nil),
			Ht: 1.0 - sumSqMean,
		}
	}

	return kernels, nil
}

// globalKernel averages Hs and Ht across informative loci, so the global value
// of each statistic is computed by the same formula as its per-locus values.
// K is the largest per-locus stratum count, which for complete data equals the
// number of strata in the grouping.
func globalKernel(kernels []locusKernel) (locusKernel, bool) {
	var hs, ht []float64
	maxK := 0
	for _, k := range kernels {
		if !k.informative() {
			continue
		}
		hs = append(hs, k.Hs)
		ht = append(ht, k.Ht)
		if k.K > maxK {
			maxK = k.K
		}
	}
	if len(hs) == 0 {
		return locusKernel{}, false
	}
	return locusKernel{
		K:  maxK,
		Hs: stat.Mean(hs, nil),
		Ht: stat.Mean(ht, nil),
	}, true
}
