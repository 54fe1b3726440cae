package testkit

import (
	"fmt"
	"math/rand"

	rngadapter "genodiff/adapters/rng"
	"genodiff/domain/core"
	"genodiff/domain/genetic"
)

// GeneratorConfig controls the synthetic microsatellite generator. With
// Divergence 0 every stratum draws from the same allele frequencies
// (panmixia); as it rises toward 1 each stratum concentrates on its own
// favored alleles and differentiation statistics should climb.
type GeneratorConfig struct {
	SamplesPerStratum int
	Loci              int
	Strata            int
	AllelesPerLocus   int
	Divergence        float64 // 0 (panmictic) .. 1 (strongly structured)
	MissingRate       float64 // probability a genotype call is dropped
	Seed              int64
	Level             string // grouping level name
}

// DefaultGeneratorConfig returns a small diploid panel: two strata, thirty
// samples each, five loci with six alleles.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		SamplesPerStratum: 30,
		Loci:              5,
		Strata:            2,
		AllelesPerLocus:   6,
		Divergence:        0,
		MissingRate:       0,
		Seed:              42,
		Level:             "population",
	}
}

// Generate builds a synthetic diploid dataset and its grouping.
func Generate(cfg GeneratorConfig) (*genetic.Dataset, *genetic.Grouping, error) {
	if cfg.SamplesPerStratum <= 0 || cfg.Loci <= 0 || cfg.Strata <= 0 {
		return nil, nil, fmt.Errorf("samples, loci, and strata must be > 0")
	}
	if cfg.AllelesPerLocus < 2 {
		return nil, nil, fmt.Errorf("need at least 2 alleles per locus")
	}
	if cfg.Divergence < 0 || cfg.Divergence > 1 {
		return nil, nil, fmt.Errorf("divergence must be in [0, 1]")
	}

	// Generation draws from its own named stream so a generated dataset and a
	// resampling run under the same base seed never share draws.
	rng := rngadapter.NewAdapter().SeededStream("generate", cfg.Seed)

	loci := make([]core.LocusName, cfg.Loci)
	for j := range loci {
		loci[j] = core.LocusName(fmt.Sprintf("loc_%02d", j+1))
	}

	// Allele codes mimic microsatellite repeat lengths: 100, 102, 104, ...
	alleles := make([]genetic.Allele, cfg.AllelesPerLocus)
	for a := range alleles {
		alleles[a] = genetic.Allele(fmt.Sprintf("%d", 100+2*a))
	}

	var samples []genetic.Sample
	labels := make(map[core.SampleID]core.StratumLabel)
	for s := 0; s < cfg.Strata; s++ {
		stratum := core.StratumLabel(fmt.Sprintf("pop_%c", 'A'+s))
		for i := 0; i < cfg.SamplesPerStratum; i++ {
			id := core.SampleID(fmt.Sprintf("%s_ind_%03d", stratum, i+1))
			gts := make([]genetic.Genotype, cfg.Loci)
			for j := 0; j < cfg.Loci; j++ {
				if cfg.MissingRate > 0 && rng.Float64() < cfg.MissingRate {
					continue
				}
				weights := stratumWeights(cfg, s, j)
				gts[j] = genetic.Genotype{
					alleles[drawAllele(rng, weights)],
					alleles[drawAllele(rng, weights)],
				}
			}
			samples = append(samples, genetic.Sample{ID: id, Genotypes: gts})
			labels[id] = stratum
		}
	}

	ds, err := genetic.NewDataset(loci, samples)
	if err != nil {
		return nil, nil, err
	}
	grouping, err := genetic.NewGrouping(cfg.Level, labels)
	if err != nil {
		return nil, nil, err
	}
	return ds, grouping, nil
}

// stratumWeights gives each stratum a favored allele per locus; divergence
// scales how strongly the favorite dominates.
func stratumWeights(cfg GeneratorConfig, stratum, locus int) []float64 {
	weights := make([]float64, cfg.AllelesPerLocus)
	for a := range weights {
		weights[a] = 1
	}
	favorite := (stratum + locus) % cfg.AllelesPerLocus
	weights[favorite] += cfg.Divergence * 20
	return weights
}

func drawAllele(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := rng.Float64() * total
	for a, w := range weights {
		x -= w
		if x < 0 {
			return a
		}
	}
	return len(weights) - 1
}
