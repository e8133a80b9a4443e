package rhythm

import (
	"math"
	"testing"
)

// clickTrain builds a signal with single-sample impulses at a fixed
// period.
func clickTrain(periodSec float64, sampleRate, n int) []float64 {
	samples := make([]float64, n)
	period := int(periodSec * float64(sampleRate))
	for i := 0; i < n; i += period {
		samples[i] = 1.0
	}
	return samples
}

func TestEstimateTempoClickTrain(t *testing.T) {
	d := NewDetector(44100)

	// Two clicks per second for ten seconds
	bpm := d.EstimateTempo(clickTrain(0.5, 44100, 44100*10))

	if bpm != 120 {
		t.Errorf("expected 120 BPM for a 0.5s click train, got %f", bpm)
	}
}

func TestDetectOnsetsOrdered(t *testing.T) {
	d := NewDetector(44100)

	onsets := d.DetectOnsets(clickTrain(0.5, 44100, 44100*5))
	if len(onsets.Times) == 0 {
		t.Fatal("expected onsets for a click train")
	}
	if len(onsets.Times) != len(onsets.Strengths) {
		t.Fatalf("times and strengths length mismatch: %d vs %d", len(onsets.Times), len(onsets.Strengths))
	}

	for i := 1; i < len(onsets.Times); i++ {
		if onsets.Times[i] <= onsets.Times[i-1] {
			t.Errorf("onset times not strictly increasing at %d: %f <= %f", i, onsets.Times[i], onsets.Times[i-1])
		}
	}
	for i, s := range onsets.Strengths {
		if s <= 0 {
			t.Errorf("onset strength %d not positive: %f", i, s)
		}
	}
}

func TestDetectOnsetsSilence(t *testing.T) {
	d := NewDetector(44100)

	onsets := d.DetectOnsets(make([]float64, 44100))
	if len(onsets.Times) != 0 {
		t.Errorf("expected no onsets for silence, got %d", len(onsets.Times))
	}
}

func TestDetectBeatsSubsetOfOnsets(t *testing.T) {
	d := NewDetector(44100)

	onsets := Onsets{
		Times:     []float64{0.5, 1.0, 1.5, 2.0, 2.5},
		Strengths: []float64{1.0, 5.0, 1.0, 6.0, 1.0},
	}
	beats := d.DetectBeats(onsets)

	// mean strength 2.8, threshold 3.36: only the 5.0 and 6.0 onsets pass
	if len(beats.Times) != 2 {
		t.Fatalf("expected 2 beats, got %d", len(beats.Times))
	}
	if beats.Times[0] != 1.0 || beats.Times[1] != 2.0 {
		t.Errorf("unexpected beat times: %v", beats.Times)
	}
}

func TestEstimateBPMVoting(t *testing.T) {
	tests := []struct {
		name      string
		intervals []float64
		want      float64
	}{
		{"empty defaults", nil, DefaultBPM},
		{"half second intervals", []float64{0.5, 0.5, 0.5}, 120},
		{"out of range intervals ignored", []float64{0.1, 3.0}, DefaultBPM},
		{"tie prefers lower bpm", []float64{0.5, 60.0 / 100.0}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateBPM(tt.intervals); got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestValidateBPM(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{50, 100},
		{220, 110},
		{120, 120},
		{60, 60},
		{200, 200},
	}

	for _, tt := range tests {
		if got := ValidateBPM(tt.in); got != tt.want {
			t.Errorf("ValidateBPM(%f): expected %f, got %f", tt.in, tt.want, got)
		}
	}
}

func TestInterOnsetIntervals(t *testing.T) {
	onsets := Onsets{Times: []float64{1.0, 1.5, 2.25}}
	intervals := InterOnsetIntervals(onsets)

	want := []float64{0.5, 0.75}
	if len(intervals) != len(want) {
		t.Fatalf("expected %d intervals, got %d", len(want), len(intervals))
	}
	for i := range want {
		if math.Abs(intervals[i]-want[i]) > 1e-9 {
			t.Errorf("interval %d: expected %f, got %f", i, want[i], intervals[i])
		}
	}
}
