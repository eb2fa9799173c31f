package rng

import (
	"context"
	"testing"
)

func TestSeededStream_Deterministic(t *testing.T) {
	adapter := NewSeededRNG()
	ctx := context.Background()

	a, err := adapter.SeededStream(ctx, "calibration", 42)
	if err != nil {
		t.Fatalf("seeded stream: %v", err)
	}
	b, err := adapter.SeededStream(ctx, "calibration", 42)
	if err != nil {
		t.Fatalf("seeded stream: %v", err)
	}

	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
}

func TestSeededStream_NameFolding(t *testing.T) {
	adapter := NewSeededRNG()
	ctx := context.Background()

	a, _ := adapter.SeededStream(ctx, "calibration", 42)
	b, _ := adapter.SeededStream(ctx, "replay", 42)

	same := true
	for i := 0; i < 20; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Error("differently-named streams with the same seed should not share a sequence")
	}
}

func TestTrialStream_DistinctPerTrial(t *testing.T) {
	adapter := NewSeededRNG()
	ctx := context.Background()

	seen := make(map[float64]int)
	for trial := 0; trial < 100; trial++ {
		rng, err := adapter.TrialStream(ctx, 42, trial)
		if err != nil {
			t.Fatalf("trial stream %d: %v", trial, err)
		}
		first := rng.Float64()
		if prev, dup := seen[first]; dup {
			t.Fatalf("trials %d and %d produced the same first draw", prev, trial)
		}
		seen[first] = trial
	}
}

func TestTrialStream_ReproducibleAcrossCalls(t *testing.T) {
	adapter := NewSeededRNG()
	ctx := context.Background()

	a, _ := adapter.TrialStream(ctx, 7, 13)
	b, _ := adapter.TrialStream(ctx, 7, 13)

	for i := 0; i < 50; i++ {
		if a.NormFloat64() != b.NormFloat64() {
			t.Fatalf("trial stream not reproducible at draw %d", i)
		}
	}
}

func TestChildSeed_AdjacentTrialsUncorrelated(t *testing.T) {
	// splitmix mixing should scatter adjacent trial indices across the
	// seed space rather than produce neighboring seeds
	a := childSeed(42, 0)
	b := childSeed(42, 1)
	if a == b {
		t.Fatal("adjacent trials share a seed")
	}
	if diff := a - b; diff == 1 || diff == -1 {
		t.Error("adjacent trial seeds should not be sequential")
	}
}
