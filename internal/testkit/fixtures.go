package testkit

import (
	"genodiff/domain/core"
	"genodiff/domain/genetic"
)

// FourSampleDataset is the minimal structured fixture: four diploid samples at
// two loci, strata [A, A, B, B], with the strata fixed for different alleles
// at the first locus.
func FourSampleDataset() (*genetic.Dataset, *genetic.Grouping) {
	loci := []core.LocusName{"loc_01", "loc_02"}
	samples := []genetic.Sample{
		{ID: "s1", Genotypes: []genetic.Genotype{{"100", "100"}, {"200", "202"}}},
		{ID: "s2", Genotypes: []genetic.Genotype{{"100", "102"}, {"200", "200"}}},
		{ID: "s3", Genotypes: []genetic.Genotype{{"104", "104"}, {"202", "200"}}},
		{ID: "s4", Genotypes: []genetic.Genotype{{"104", "106"}, {"202", "202"}}},
	}
	ds, err := genetic.NewDataset(loci, samples)
	if err != nil {
		panic(err)
	}

	grouping, err := genetic.NewGrouping("population", map[core.SampleID]core.StratumLabel{
		"s1": "A", "s2": "A", "s3": "B", "s4": "B",
	})
	if err != nil {
		panic(err)
	}
	return ds, grouping
}
