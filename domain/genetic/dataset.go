package genetic

import (
	"fmt"
	"math/rand"
	"strings"

	"genodiff/domain/core"
)

// Allele is a categorical allele code, e.g. a microsatellite repeat length ("121")
// or a nucleotide ("A"). Codes are opaque: two alleles are the same iff the codes
// are equal.
type Allele string

// Genotype is the ordered set of allele copies one sample carries at one locus.
// Length equals the ploidy at that locus (1 for haploid sequence data, 2 for
// diploid microsatellites). A nil or empty Genotype means the call is missing.
type Genotype []Allele

// IsMissing reports whether no allele was typed.
func (g Genotype) IsMissing() bool {
	return len(g) == 0
}

// Equal reports whether two genotypes carry the same allele codes in order.
func (g Genotype) Equal(other Genotype) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

func (g Genotype) String() string {
	if g.IsMissing() {
		return "NA"
	}
	parts := make([]string, len(g))
	for i, a := range g {
		parts[i] = string(a)
	}
	return strings.Join(parts, "/")
}

// Sample is one individual: an identifier plus one genotype per dataset locus,
// in dataset locus order.
type Sample struct {
	ID        core.SampleID `json:"id"`
	Genotypes []Genotype    `json:"genotypes"`
}

// Dataset is an immutable collection of samples typed at a shared, ordered locus
// set.
// INVARIANTS:
// - every sample has exactly len(Loci()) genotypes, in locus order
// - locus names are unique
// - construction via NewDataset rejects duplicate sample IDs; resampled datasets
//   may repeat IDs (bootstrap draws with replacement)
//
// Nothing mutates a Dataset after construction. Resampling constructors return
// fresh Datasets that share the underlying Genotype values, which is safe because
// genotypes are read-only.
type Dataset struct {
	loci    []core.LocusName
	samples []Sample
}

// NewDataset validates and builds a dataset.
func NewDataset(loci []core.LocusName, samples []Sample) (*Dataset, error) {
	if len(loci) == 0 {
		return nil, fmt.Errorf("%w: no loci", core.ErrInvalidInput)
	}
	seenLoci := make(map[core.LocusName]bool, len(loci))
	for _, l := range loci {
		if l == "" {
			return nil, fmt.Errorf("%w: empty locus name", core.ErrInvalidInput)
		}
		if seenLoci[l] {
			return nil, fmt.Errorf("%w: duplicate locus %q", core.ErrInvalidInput, l)
		}
		seenLoci[l] = true
	}

	seenSamples := make(map[core.SampleID]bool, len(samples))
	for _, s := range samples {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: sample with empty ID", core.ErrInvalidInput)
		}
		if seenSamples[s.ID] {
			return nil, fmt.Errorf("%w: duplicate sample ID %q", core.ErrInvalidInput, s.ID)
		}
		seenSamples[s.ID] = true
		if len(s.Genotypes) != len(loci) {
			return nil, fmt.Errorf("%w: sample %q has %d genotypes, dataset has %d loci",
				core.ErrLocusMismatch, s.ID, len(s.Genotypes), len(loci))
		}
	}

	return &Dataset{
		loci:    append([]core.LocusName(nil), loci...),
		samples: append([]Sample(nil), samples...),
	}, nil
}

// NumSamples returns the sample count.
func (d *Dataset) NumSamples() int { return len(d.samples) }

// NumLoci returns the locus count.
func (d *Dataset) NumLoci() int { return len(d.loci) }

// Loci returns a copy of the ordered locus names.
func (d *Dataset) Loci() []core.LocusName {
	return append([]core.LocusName(nil), d.loci...)
}

// Sample returns the sample at index i.
func (d *Dataset) Sample(i int) Sample { return d.samples[i] }

// SampleIDs returns the ordered sample identifiers.
func (d *Dataset) SampleIDs() []core.SampleID {
	ids := make([]core.SampleID, len(d.samples))
	for i, s := range d.samples {
		ids[i] = s.ID
	}
	return ids
}

// GenotypeAt returns the genotype of sample i at locus j.
func (d *Dataset) GenotypeAt(i, j int) Genotype {
	return d.samples[i].Genotypes[j]
}

// GenotypesEqual reports whether two datasets carry identical genotype data in
// identical sample and locus order. Used to verify that label permutation never
// touches genotypes.
func (d *Dataset) GenotypesEqual(other *Dataset) bool {
	if d.NumSamples() != other.NumSamples() || d.NumLoci() != other.NumLoci() {
		return false
	}
	for j := range d.loci {
		if d.loci[j] != other.loci[j] {
			return false
		}
	}
	for i := range d.samples {
		if d.samples[i].ID != other.samples[i].ID {
			return false
		}
		for j := range d.loci {
			if !d.samples[i].Genotypes[j].Equal(other.samples[i].Genotypes[j]) {
				return false
			}
		}
	}
	return true
}

// Fingerprint hashes the canonical form of the dataset: locus order, sample
// order, genotype codes. Two datasets with the same fingerprint carry the same
// data.
func (d *Dataset) Fingerprint() core.Fingerprint {
	parts := make([]string, 0, len(d.loci)+len(d.samples))
	for _, l := range d.loci {
		parts = append(parts, l.String())
	}
	for _, s := range d.samples {
		var b strings.Builder
		b.WriteString(s.ID.String())
		for _, g := range s.Genotypes {
			b.WriteByte('|')
			b.WriteString(g.String())
		}
		parts = append(parts, b.String())
	}
	return core.ComputeFingerprint(parts...)
}

// BootstrapSamples draws NumSamples() samples with replacement, preserving each
// drawn sample's identity, genotypes, and (via its ID) stratum label. The
// resample has the same size as the original.
func (d *Dataset) BootstrapSamples(rng *rand.Rand) *Dataset {
	n := len(d.samples)
	drawn := make([]Sample, n)
	for i := 0; i < n; i++ {
		drawn[i] = d.samples[rng.Intn(n)]
	}
	return &Dataset{loci: d.loci, samples: drawn}
}

// BootstrapLoci draws NumLoci() loci with replacement, holding samples fixed.
// Used for multilocus statistics where the locus set is the resampling unit.
// Drawn loci get positional names (boot_01..boot_m): slot j means "the j-th
// draw", not a fixed original locus, and every resample of the same dataset
// shares one locus set so trial results accumulate into one distribution.
func (d *Dataset) BootstrapLoci(rng *rand.Rand) *Dataset {
	m := len(d.loci)
	idx := make([]int, m)
	loci := make([]core.LocusName, m)
	for j := 0; j < m; j++ {
		idx[j] = rng.Intn(m)
		loci[j] = core.LocusName(fmt.Sprintf("boot_%02d", j+1))
	}

	samples := make([]Sample, len(d.samples))
	for i, s := range d.samples {
		gts := make([]Genotype, m)
		for j, src := range idx {
			gts[j] = s.Genotypes[src]
		}
		samples[i] = Sample{ID: s.ID, Genotypes: gts}
	}
	return &Dataset{loci: loci, samples: samples}
}
