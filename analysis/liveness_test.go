package analysis

import (
	"testing"

	"github.com/RyanBlaney/sonido-atlas/algorithms/spectral"
)

// liveFeatureSet builds a signal whose liveness markers all fire: a loud
// half-second head decaying into a constant noise floor, with a bright
// wide-band spectrum. The component scores come out to reverb 0.8,
// noise 0.8, spatial 1.0 and crowd 0.7, which blend to 1.18 before
// clamping.
func liveFeatureSet() *FeatureSet {
	const sampleRate = 44100
	pcm := make([]float64, sampleRate*5)
	head := sampleRate / 2
	for i := range pcm {
		amp := 0.08
		if i < head {
			amp = 1.0
		}
		if i%2 == 1 {
			amp = -amp
		}
		pcm[i] = amp
	}

	return &FeatureSet{
		PCM:        pcm,
		SampleRate: sampleRate,
		Spectral: &spectral.Features{
			Centroid:         2500,
			Rolloff:          9000,
			ZeroCrossingRate: 0.06,
		},
	}
}

func TestMeasureLivenessClamped(t *testing.T) {
	got := measureLiveness(liveFeatureSet())
	if got != 1.0 {
		t.Errorf("expected liveness clamped to 1.0, got %v", got)
	}
}

func TestMeasureLivenessDrySignal(t *testing.T) {
	const sampleRate = 44100
	pcm := make([]float64, sampleRate*2)
	for i := range pcm {
		pcm[i] = 0.3
		if i%2 == 1 {
			pcm[i] = -0.3
		}
	}

	fs := &FeatureSet{
		PCM:        pcm,
		SampleRate: sampleRate,
		Spectral:   &spectral.Features{Centroid: 800, Rolloff: 2000, ZeroCrossingRate: 0.01},
	}

	got := measureLiveness(fs)
	if got < 0 || got > 0.5 {
		t.Errorf("dry constant-level signal should score low, got %v", got)
	}
}

func TestAnalyzeBackgroundNoiseBuckets(t *testing.T) {
	const sampleRate = 44100

	tests := []struct {
		name string
		amp  float64
		want float64
	}{
		{"loud floor", 0.08, 0.8},
		{"moderate floor", 0.03, 0.5},
		{"faint floor", 0.015, 0.2},
		{"near silence", 0.005, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm := make([]float64, sampleRate)
			for i := range pcm {
				pcm[i] = tt.amp
				if i%2 == 1 {
					pcm[i] = -tt.amp
				}
			}
			if got := analyzeBackgroundNoise(pcm, sampleRate); got != tt.want {
				t.Errorf("amplitude %v: expected %v, got %v", tt.amp, tt.want, got)
			}
		})
	}
}
