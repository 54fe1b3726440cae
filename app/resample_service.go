package app

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"genodiff/domain/core"
	"genodiff/domain/genetic"
	"genodiff/domain/popstats"
	"genodiff/domain/run"
	"genodiff/internal"
	"genodiff/internal/errors"
	"genodiff/ports"
)

// ResampleOptions configures one resampling run.
type ResampleOptions struct {
	Rule      run.Rule
	NumTrials int
	// Seed is consumed once at the start of the run; trial t draws from the
	// derived sub-stream seed+t+1, so the distribution is identical for any
	// worker count.
	Seed    int64
	Workers int // <= 1 runs trials sequentially
	// Strict turns a bootstrap trial that empties a stratum into an error
	// instead of a warning.
	Strict bool
}

// ResampleService is the bootstrap/permutation engine: it repeatedly resamples
// a dataset (or permutes its grouping), recomputes a statistic on each
// resample, and accumulates the distribution of estimates. The original
// dataset and grouping are never mutated.
type ResampleService struct {
	rng    ports.RNGPort
	logger *internal.Logger
}

// NewResampleService creates the engine.
func NewResampleService(rng ports.RNGPort, logger *internal.Logger) *ResampleService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ResampleService{
		rng:    rng,
		logger: logger.WithComponent("resample"),
	}
}

// Run produces a distribution of exactly opts.NumTrials results plus the run
// manifest. Statistic failures propagate unchanged (wrapped with the
// EXTERNAL_COMPUTATION code; errors.Is reaches the original cause).
func (s *ResampleService) Run(ctx context.Context, ds *genetic.Dataset, grouping *genetic.Grouping, stat ports.Statistic, opts ResampleOptions) (*popstats.Distribution, *run.Manifest, error) {
	if err := validateOptions(ds, stat, opts); err != nil {
		return nil, nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	manifest := run.NewManifest(stat.Name(), opts.Rule, grouping.Level(), opts.Seed, opts.NumTrials, workers)
	manifest.SampleCount = ds.NumSamples()
	manifest.LocusCount = ds.NumLoci()
	manifest.Fingerprint = ds.Fingerprint()

	started := time.Now()
	s.logger.Debug("run %s: %s over %d trials (rule=%s, seed=%d, workers=%d)",
		manifest.RunID, stat.Name(), opts.NumTrials, opts.Rule, opts.Seed, workers)

	results := make([]popstats.Result, opts.NumTrials)
	var degenerate atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for t := 0; t < opts.NumTrials; t++ {
		trial := t
		g.Go(func() error {
			// Cancellation is honored between trials; a started trial runs
			// to completion.
			if err := gctx.Err(); err != nil {
				return err
			}
			res, degen, err := s.runTrial(gctx, ds, grouping, stat, opts, trial)
			if err != nil {
				return err
			}
			if degen {
				degenerate.Add(1)
			}
			results[trial] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	dist, err := popstats.NewDistribution(results)
	if err != nil {
		return nil, nil, err
	}

	manifest.DegenerateTrials = int(degenerate.Load())
	manifest.RuntimeMs = time.Since(started).Milliseconds()
	s.logger.Info("run %s: %d trials of %s in %dms (%d degenerate)",
		manifest.RunID, dist.Len(), stat.Name(), manifest.RuntimeMs, manifest.DegenerateTrials)

	return dist, manifest, nil
}

// runTrial builds one resample from the trial's sub-stream and computes the
// statistic on it.
func (s *ResampleService) runTrial(ctx context.Context, ds *genetic.Dataset, grouping *genetic.Grouping, stat ports.Statistic, opts ResampleOptions, trial int) (popstats.Result, bool, error) {
	stream := s.rng.TrialStream(opts.Seed, trial)

	trialDS := ds
	trialGrouping := grouping
	degen := false

	switch opts.Rule {
	case run.RuleBootstrapSamples:
		trialDS = ds.BootstrapSamples(stream)
		if stratum, empty := grouping.EmptyStratum(trialDS); empty {
			if opts.Strict {
				return popstats.Result{}, false, errors.DegenerateResample(
					core.NewDegenerateResampleError(trial, stratum))
			}
			s.logger.Warn("trial %d: bootstrap emptied stratum %q", trial, stratum)
			degen = true
		}
	case run.RuleBootstrapLoci:
		trialDS = ds.BootstrapLoci(stream)
	case run.RulePermutation:
		permuted, err := grouping.Permute(ds, stream)
		if err != nil {
			return popstats.Result{}, false, err
		}
		trialGrouping = permuted
	}

	res, err := stat.Compute(ctx, trialDS, trialGrouping)
	if err != nil {
		return popstats.Result{}, false, errors.ExternalComputation(string(stat.Name()), err)
	}
	return res, degen, nil
}

// PermutationTest is the common composition: the observed statistic on the
// real grouping, a permutation null distribution, and the two-tailed empirical
// p-value of the observation against that null.
func (s *ResampleService) PermutationTest(ctx context.Context, ds *genetic.Dataset, grouping *genetic.Grouping, stat ports.Statistic, opts ResampleOptions) (popstats.Result, float64, *run.Manifest, error) {
	opts.Rule = run.RulePermutation

	observed, err := stat.Compute(ctx, ds, grouping)
	if err != nil {
		return popstats.Result{}, 1.0, nil, errors.ExternalComputation(string(stat.Name()), err)
	}

	null, manifest, err := s.Run(ctx, ds, grouping, stat, opts)
	if err != nil {
		return popstats.Result{}, 1.0, nil, err
	}

	p, err := popstats.PermutationPValue(observed.Global, null, true)
	if err != nil {
		return popstats.Result{}, 1.0, nil, err
	}
	return observed, p, manifest, nil
}

func validateOptions(ds *genetic.Dataset, stat ports.Statistic, opts ResampleOptions) error {
	if stat == nil {
		return errors.InvalidInput("no statistic supplied")
	}
	if opts.NumTrials < 1 {
		return errors.InvalidInputCause(core.ErrBadTrialCount)
	}
	if ds == nil || ds.NumSamples() < 2 {
		return errors.InvalidInputCause(core.ErrTooFewSamples)
	}
	if !opts.Rule.Valid() {
		return errors.InvalidInputf("unknown resampling rule %q", opts.Rule)
	}
	return nil
}
