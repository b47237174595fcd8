package analysis

import (
	"math"
	"testing"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	out := FFT(data)

	if math.Abs(real(out[0])-4) > 1e-12 {
		t.Errorf("DC bin: got %v", out[0])
	}
	for i := 1; i < len(out); i++ {
		if math.Hypot(real(out[i]), imag(out[i])) > 1e-12 {
			t.Errorf("bin %d should be empty for constant input: %v", i, out[i])
		}
	}
}

func TestPad(t *testing.T) {
	padded := Pad(make([]float64, 5))
	if len(padded) != 8 {
		t.Errorf("pad 5 -> %d, want 8", len(padded))
	}
	padded = Pad(make([]float64, 8))
	if len(padded) != 8 {
		t.Errorf("pad 8 -> %d, want 8", len(padded))
	}
}

func TestDominantFrequencyOfSine(t *testing.T) {
	const (
		dt      = 0.01
		samples = 1024
		hz      = 5.0
	)
	data := make([]float64, samples)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * hz * float64(i) * dt)
	}

	freq, power := DominantFrequency(data, dt)
	if power <= 0 {
		t.Fatal("no spectral peak found")
	}
	// bin resolution is 1/(n*dt) ~ 0.1 hz
	if math.Abs(freq-hz) > 0.2 {
		t.Errorf("dominant frequency: got %f, want ~%f", freq, hz)
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if f, p := DominantFrequency(nil, 0.01); f != 0 || p != 0 {
		t.Error("empty signal should have no dominant frequency")
	}
	if f, p := DominantFrequency([]float64{1, 2, 3}, 0); f != 0 || p != 0 {
		t.Error("non-positive dt should have no dominant frequency")
	}
}
