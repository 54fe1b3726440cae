package rng

import (
	"hash/fnv"
	"math/rand"

	"genodiff/ports"
)

// Adapter implements ports.RNGPort over math/rand sources. Streams are cheap to
// create; every trial gets its own so execution order can never leak into the
// draws.
type Adapter struct{}

// NewAdapter creates a new RNG adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

var _ ports.RNGPort = (*Adapter)(nil)

// SeededStream creates a deterministic generator for a named operation. The
// name is folded into the seed so distinct operations under the same base seed
// do not share draws.
func (a *Adapter) SeededStream(name string, seed int64) *rand.Rand {
	if name != "" {
		seed += int64(hashString(name))
	}
	return rand.New(rand.NewSource(seed))
}

// TrialStream derives the per-trial sub-stream: base seed plus trial index
// plus one, so trial 0 never collides with the run-level stream at the base
// seed itself.
func (a *Adapter) TrialStream(seed int64, trial int) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(trial) + 1))
}

// hashString creates a stable hash for deterministic seeding
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
