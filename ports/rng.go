package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic runs. The
// caller supplies one seed at the start of a run; everything after that is
// determined by sequential draws from the streams this port derives.
type RNGPort interface {
	// SeededStream creates a deterministic generator for a named operation.
	SeededStream(name string, seed int64) *rand.Rand

	// TrialStream derives the sub-stream for one trial of a seeded run. Trial t
	// under seed s must always receive the same stream, regardless of worker
	// count or execution order.
	TrialStream(seed int64, trial int) *rand.Rand
}
