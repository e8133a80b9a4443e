package analysis

import (
	"math"
	"testing"
)

func TestMeasureLoudnessSilence(t *testing.T) {
	pcm := make([]float64, 44100)
	if got := measureLoudness(pcm, 44100); got != silenceLUFS {
		t.Errorf("silence should measure %v LUFS, got %v", silenceLUFS, got)
	}
}

func TestMeasureLoudnessTooShort(t *testing.T) {
	// Shorter than one 400ms block.
	pcm := make([]float64, 4410)
	for i := range pcm {
		pcm[i] = 0.5
	}
	if got := measureLoudness(pcm, 44100); got != silenceLUFS {
		t.Errorf("sub-block input should measure %v LUFS, got %v", silenceLUFS, got)
	}
}

func TestMeasureLoudnessSine(t *testing.T) {
	const sampleRate = 44100
	pcm := make([]float64, sampleRate*3)
	for i := range pcm {
		pcm[i] = 0.5 * math.Sin(2*math.Pi*1000*float64(i)/sampleRate)
	}

	got := measureLoudness(pcm, sampleRate)

	// A half-scale 1kHz sine sits near -12.7 LUFS before K-weighting,
	// which is close to flat at 1kHz.
	if got < -20 || got > -5 {
		t.Errorf("expected loudness in (-20, -5) LUFS, got %v", got)
	}
}

func TestMeasureLoudnessTracksLevel(t *testing.T) {
	const sampleRate = 44100
	loud := make([]float64, sampleRate*2)
	quiet := make([]float64, sampleRate*2)
	for i := range loud {
		s := math.Sin(2 * math.Pi * 440 * float64(i) / sampleRate)
		loud[i] = 0.8 * s
		quiet[i] = 0.1 * s
	}

	l := measureLoudness(loud, sampleRate)
	q := measureLoudness(quiet, sampleRate)
	if l <= q {
		t.Errorf("louder signal should measure higher: loud=%v quiet=%v", l, q)
	}
}
