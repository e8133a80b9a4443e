package spectral

import (
	"math"
	"testing"
)

func sine(freq float64, sampleRate, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return samples
}

func TestMagnitudeBinCount(t *testing.T) {
	fft := NewFFT()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"power of two", 1024, 513},
		{"odd length", 4410, 2206},
		{"empty", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mag := fft.Magnitude(make([]float64, tt.n))
			if len(mag) != tt.want {
				t.Errorf("expected %d bins, got %d", tt.want, len(mag))
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	p := NewPreprocessor()

	t.Run("scales peak to one", func(t *testing.T) {
		out := p.Normalize([]float64{0.1, -0.5, 0.25})
		if math.Abs(out[1]) != 1.0 {
			t.Errorf("expected peak magnitude 1.0, got %f", math.Abs(out[1]))
		}
	})

	t.Run("silence stays silent", func(t *testing.T) {
		out := p.Normalize(make([]float64, 16))
		for i, s := range out {
			if s != 0 {
				t.Errorf("expected zero at %d, got %f", i, s)
			}
		}
	})
}

func TestRemoveDCKillsOffset(t *testing.T) {
	p := NewPreprocessor()

	in := make([]float64, 1000)
	for i := range in {
		in[i] = 0.7
	}

	out := p.RemoveDC(in)
	if out[0] != 0.7 {
		t.Errorf("first sample should pass through, got %f", out[0])
	}
	if math.Abs(out[len(out)-1]) > 1e-6 {
		t.Errorf("constant signal should decay to zero, got %f", out[len(out)-1])
	}
}

func TestComputeCentroidPureTone(t *testing.T) {
	a := NewAnalyzer(44100)

	// 100 full cycles in the window, so the energy sits in one bin
	features := a.Compute(sine(1000, 44100, 4410))

	if math.Abs(features.Centroid-1000) > 50 {
		t.Errorf("expected centroid near 1000 Hz, got %f", features.Centroid)
	}
	if features.Rolloff < 900 || features.Rolloff > 1100 {
		t.Errorf("expected rolloff near 1000 Hz, got %f", features.Rolloff)
	}
}

func TestComputeEmptyBuffer(t *testing.T) {
	a := NewAnalyzer(44100)
	features := a.Compute(nil)

	if features.Centroid != 0 || features.Rolloff != 0 || features.ZeroCrossingRate != 0 {
		t.Errorf("expected zero features for empty input, got %+v", features)
	}
}

func TestZeroCrossingRate(t *testing.T) {
	a := NewAnalyzer(44100)

	// Alternating signal crosses zero at every sample
	samples := make([]float64, 1024)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 1.0
		} else {
			samples[i] = -1.0
		}
	}

	features := a.Compute(samples)
	want := float64(len(samples)-1) / float64(len(samples))
	if math.Abs(features.ZeroCrossingRate-want) > 1e-9 {
		t.Errorf("expected ZCR %f, got %f", want, features.ZeroCrossingRate)
	}
}

func TestChromaPureTone(t *testing.T) {
	c := NewChromaExtractor(44100)

	// A4 with an integer cycle count lands in the A pitch class
	chroma := c.Compute(sine(440, 44100, 44100))

	if len(chroma) != 12 {
		t.Fatalf("expected 12 bins, got %d", len(chroma))
	}

	sum := 0.0
	maxIdx := 0
	for i, v := range chroma {
		sum += v
		if v > chroma[maxIdx] {
			maxIdx = i
		}
	}

	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("expected normalized chroma summing to 1, got %f", sum)
	}
	if maxIdx != 9 {
		t.Errorf("expected pitch class A (9) to dominate, got %d", maxIdx)
	}
}

func TestChromaSilence(t *testing.T) {
	c := NewChromaExtractor(44100)
	chroma := c.Compute(make([]float64, 8192))

	for i, v := range chroma {
		if v != 0 {
			t.Errorf("expected zero chroma at %d, got %f", i, v)
		}
	}
}
