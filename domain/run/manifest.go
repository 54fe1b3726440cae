package run

import (
	"genodiff/domain/core"
	"genodiff/domain/popstats"
)

// Rule names the resampling rule a run used.
type Rule string

const (
	// RuleBootstrapSamples draws n samples with replacement.
	RuleBootstrapSamples Rule = "bootstrap_samples"
	// RuleBootstrapLoci draws loci with replacement, samples fixed.
	RuleBootstrapLoci Rule = "bootstrap_loci"
	// RulePermutation shuffles stratum labels, genotypes fixed.
	RulePermutation Rule = "permutation"
)

// Valid reports whether the rule is one of the recognized variants.
func (r Rule) Valid() bool {
	switch r {
	case RuleBootstrapSamples, RuleBootstrapLoci, RulePermutation:
		return true
	}
	return false
}

// Manifest captures the complete specification and outcome of one resampling
// run. Seed plus fingerprint plus rule fully determine the distribution, so a
// manifest is enough to reproduce or audit a run.
type Manifest struct {
	RunID     core.RunID     `json:"run_id"`
	Statistic popstats.Name  `json:"statistic"`
	Rule      Rule           `json:"rule"`
	Level     string         `json:"grouping_level"`
	Seed      int64          `json:"seed"` // Random seed, consumed once at run start
	NumTrials int            `json:"num_trials"`
	Workers   int            `json:"workers"`

	SampleCount int              `json:"sample_count"`
	LocusCount  int              `json:"locus_count"`
	Fingerprint core.Fingerprint `json:"dataset_fingerprint"`

	// DegenerateTrials counts bootstrap trials that emptied a stratum. Always 0
	// for permutation runs.
	DegenerateTrials int `json:"degenerate_trials"`

	RuntimeMs int64          `json:"runtime_ms"`
	CreatedAt core.Timestamp `json:"created_at"`
}

// NewManifest creates a manifest with a fresh RunID; counters are filled in as
// the run completes.
func NewManifest(stat popstats.Name, rule Rule, level string, seed int64, nreps, workers int) *Manifest {
	return &Manifest{
		RunID:     core.NewRunID(),
		Statistic: stat,
		Rule:      rule,
		Level:     level,
		Seed:      seed,
		NumTrials: nreps,
		Workers:   workers,
		CreatedAt: core.Now(),
	}
}
