package genetic

import (
	"fmt"
	"math/rand"
	"sort"

	"genodiff/domain/core"
)

// Scheme maps sample identifiers to one or more hierarchical stratum labels
// (e.g. Country -> Breed). A Scheme is immutable after construction; changing a
// grouping means building a new Scheme. Statistics never read grouping state off
// the dataset: the active Grouping is an explicit argument to every computation.
type Scheme struct {
	levels []string
	byID   map[core.SampleID][]core.StratumLabel
}

// NewScheme validates and builds a stratification scheme. Every assignment must
// carry exactly one label per level.
func NewScheme(levels []string, assignments map[core.SampleID][]core.StratumLabel) (*Scheme, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: no stratification levels", core.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(levels))
	for _, lv := range levels {
		if lv == "" {
			return nil, fmt.Errorf("%w: empty level name", core.ErrInvalidInput)
		}
		if seen[lv] {
			return nil, fmt.Errorf("%w: duplicate level %q", core.ErrInvalidInput, lv)
		}
		seen[lv] = true
	}

	byID := make(map[core.SampleID][]core.StratumLabel, len(assignments))
	for id, labels := range assignments {
		if len(labels) != len(levels) {
			return nil, fmt.Errorf("%w: sample %q has %d labels, scheme has %d levels",
				core.ErrInvalidInput, id, len(labels), len(levels))
		}
		for i, l := range labels {
			if l == "" {
				return nil, fmt.Errorf("%w: sample %q has empty label at level %q",
					core.ErrInvalidInput, id, levels[i])
			}
		}
		byID[id] = append([]core.StratumLabel(nil), labels...)
	}

	return &Scheme{
		levels: append([]string(nil), levels...),
		byID:   byID,
	}, nil
}

// Levels returns the ordered level names, outermost first.
func (s *Scheme) Levels() []string {
	return append([]string(nil), s.levels...)
}

// NumSamples returns how many samples the scheme assigns.
func (s *Scheme) NumSamples() int { return len(s.byID) }

// Grouping projects one level onto a dataset. Assignment must be total: every
// dataset sample needs a label at the requested level.
func (s *Scheme) Grouping(level string, ds *Dataset) (*Grouping, error) {
	idx := -1
	for i, lv := range s.levels {
		if lv == level {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, core.NewLevelNotFoundError(level)
	}

	labels := make(map[core.SampleID]core.StratumLabel, ds.NumSamples())
	for _, id := range ds.SampleIDs() {
		assigned, ok := s.byID[id]
		if !ok {
			return nil, core.NewSampleNotFoundError(id)
		}
		labels[id] = assigned[idx]
	}
	return &Grouping{level: level, labels: labels}, nil
}

// Grouping is one active stratification: a total sample -> stratum assignment at
// a single level. Like Scheme it is immutable; Permute returns a new Grouping.
type Grouping struct {
	level  string
	labels map[core.SampleID]core.StratumLabel
}

// NewGrouping builds a grouping directly from a label assignment, for callers
// that do not need a multi-level scheme.
func NewGrouping(level string, labels map[core.SampleID]core.StratumLabel) (*Grouping, error) {
	if level == "" {
		return nil, fmt.Errorf("%w: empty grouping level", core.ErrInvalidInput)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: grouping assigns no samples", core.ErrInvalidInput)
	}
	copied := make(map[core.SampleID]core.StratumLabel, len(labels))
	for id, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("%w: sample %q has empty label", core.ErrInvalidInput, id)
		}
		copied[id] = l
	}
	return &Grouping{level: level, labels: copied}, nil
}

// Level returns the level name this grouping was projected from.
func (g *Grouping) Level() string { return g.level }

// Label returns the stratum of a sample.
func (g *Grouping) Label(id core.SampleID) (core.StratumLabel, bool) {
	l, ok := g.labels[id]
	return l, ok
}

// Strata returns the sorted distinct stratum labels in the assignment.
func (g *Grouping) Strata() []core.StratumLabel {
	set := make(map[core.StratumLabel]bool, len(g.labels))
	for _, l := range g.labels {
		set[l] = true
	}
	out := make([]core.StratumLabel, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Permute returns a new Grouping with the stratum labels shuffled uniformly
// across the dataset's samples (Fisher-Yates, without replacement). Genotypes
// are untouched; only the assignment moves. Stratum sizes are preserved, so a
// permuted grouping can never empty a stratum.
func (g *Grouping) Permute(ds *Dataset, rng *rand.Rand) (*Grouping, error) {
	ids := ds.SampleIDs()
	labels := make([]core.StratumLabel, len(ids))
	for i, id := range ids {
		l, ok := g.labels[id]
		if !ok {
			return nil, core.NewSampleNotFoundError(id)
		}
		labels[i] = l
	}

	for i := len(labels) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		labels[i], labels[j] = labels[j], labels[i]
	}

	shuffled := make(map[core.SampleID]core.StratumLabel, len(ids))
	for i, id := range ids {
		shuffled[id] = labels[i]
	}
	return &Grouping{level: g.level, labels: shuffled}, nil
}

// EmptyStratum reports the first stratum of the grouping that has no member in
// the given dataset, if any. Bootstrap resamples of very small strata can hit
// this; it is the degenerate case the engine flags.
func (g *Grouping) EmptyStratum(ds *Dataset) (core.StratumLabel, bool) {
	counts := make(map[core.StratumLabel]int, len(g.labels))
	for _, l := range g.labels {
		counts[l] = 0
	}
	for _, id := range ds.SampleIDs() {
		if l, ok := g.labels[id]; ok {
			counts[l]++
		}
	}
	for _, l := range g.Strata() {
		if counts[l] == 0 {
			return l, true
		}
	}
	return "", false
}
