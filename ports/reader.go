package ports

import (
	"genodiff/domain/genetic"
)

// DatasetReader loads a genetic dataset from some external representation
// (FASTA alignment, genotype table).
type DatasetReader interface {
	ReadDataset() (*genetic.Dataset, error)
}

// StrataReader loads a stratification scheme mapping sample identifiers to
// hierarchical group labels.
type StrataReader interface {
	ReadScheme() (*genetic.Scheme, error)
}
