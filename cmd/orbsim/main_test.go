package main

import (
	"math"
	"testing"
)

func TestMeanSquaredSpeeds(t *testing.T) {
	states := [][]float64{
		{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 2, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}

	speeds := meanSquaredSpeeds(states)
	if len(speeds) != 2 {
		t.Fatalf("got %d values, want 2", len(speeds))
	}
	// (1² + 2²) / 2 bodies
	if math.Abs(speeds[0]-2.5) > 1e-12 {
		t.Errorf("speeds[0] = %g, want 2.5", speeds[0])
	}
	if speeds[1] != 0 {
		t.Errorf("speeds[1] = %g, want 0", speeds[1])
	}
}

func TestMeanSquaredSpeedsEmptySnapshot(t *testing.T) {
	speeds := meanSquaredSpeeds([][]float64{{}})
	if len(speeds) != 1 || speeds[0] != 0 {
		t.Errorf("empty snapshot: got %v", speeds)
	}
}
