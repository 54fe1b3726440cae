package diffstat

import (
	"context"

	"genodiff/domain/core"
	"genodiff/domain/genetic"
	"genodiff/domain/popstats"
	"genodiff/ports"
)

// Engine holds the registered statistic variants. The built-in set is the
// closed trio Gst-Nei, Gst-Hedrick, Jost's D; collaborator statistics (AMOVA,
// DAPC) can be registered by external packages under their recognized tags.
type Engine struct {
	statistics []ports.Statistic
}

// NewEngine creates an engine with the built-in differentiation statistics.
func NewEngine() *Engine {
	return &Engine{
		statistics: []ports.Statistic{
			NewGstNei(),
			NewGstHedrick(),
			NewJostD(),
		},
	}
}

// Register adds a collaborator statistic. Registering a tag twice replaces the
// earlier implementation.
func (e *Engine) Register(stat ports.Statistic) {
	for i, existing := range e.statistics {
		if existing.Name() == stat.Name() {
			e.statistics[i] = stat
			return
		}
	}
	e.statistics = append(e.statistics, stat)
}

// Get returns the statistic registered under a tag.
func (e *Engine) Get(name popstats.Name) (ports.Statistic, bool) {
	for _, stat := range e.statistics {
		if stat.Name() == name {
			return stat, true
		}
	}
	return nil, false
}

// List returns all registered statistic tags.
func (e *Engine) List() []popstats.Name {
	names := make([]popstats.Name, len(e.statistics))
	for i, stat := range e.statistics {
		names[i] = stat.Name()
	}
	return names
}

// ComputeAll runs every registered statistic concurrently against the same
// dataset and grouping and returns results keyed by tag. Statistics are pure,
// so concurrent evaluation needs no coordination beyond collecting.
func (e *Engine) ComputeAll(ctx context.Context, ds *genetic.Dataset, grouping *genetic.Grouping) (map[popstats.Name]popstats.Result, error) {
	type outcome struct {
		result popstats.Result
		err    error
	}

	resultChan := make(chan outcome, len(e.statistics))
	for _, stat := range e.statistics {
		go func(stat ports.Statistic) {
			r, err := stat.Compute(ctx, ds, grouping)
			resultChan <- outcome{result: r, err: err}
		}(stat)
	}

	results := make(map[popstats.Name]popstats.Result, len(e.statistics))
	var firstErr error
	for range e.statistics {
		o := <-resultChan
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		results[o.result.Statistic] = o.result
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// computeVariant is the shared compute path: decompose loci into
// heterozygosity kernels, apply the variant's formula per locus, and apply the
// same formula to the across-locus mean kernel for the global value.
func computeVariant(ctx context.Context, ds *genetic.Dataset, grouping *genetic.Grouping, name popstats.Name, f func(locusKernel) float64) (popstats.Result, error) {
	if err := ctx.Err(); err != nil {
		return popstats.Result{}, err
	}
	if ds.NumSamples() == 0 {
		return popstats.Result{}, core.ErrEmptyDataset
	}

	kernels, err := computeKernels(ds, grouping)
	if err != nil {
		return popstats.Result{}, err
	}

	loci := ds.Loci()
	perLocus := make([]popstats.LocusValue, len(kernels))
	for j, k := range kernels {
		perLocus[j] = popstats.LocusValue{Locus: loci[j], Value: f(k)}
	}

	// When no locus sees two or more occupied strata (a bootstrap resample can
	// collapse onto a single stratum) there is no measurable differentiation
	// and every value is 0, same as the per-locus convention above.
	globalValue := 0.0
	if global, ok := globalKernel(kernels); ok {
		globalValue = f(global)
	}

	return popstats.NewResult(name, globalValue, perLocus)
}
