package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic runs
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// TrialStream creates a deterministic RNG for one trial of one run.
	// Deriving a child seed per trial keeps runs reproducible regardless
	// of how workers are scheduled.
	TrialStream(ctx context.Context, runSeed int64, trial int) (*rand.Rand, error)
}
