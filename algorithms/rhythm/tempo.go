package rhythm

import "math"

const (
	// DefaultBPM is returned when no usable onset intervals exist
	DefaultBPM = 120.0

	minBPM = 60
	maxBPM = 200

	// Usable inter-onset gaps, in seconds
	minInterval = 0.2
	maxInterval = 2.0
)

// InterOnsetIntervals returns the gaps between consecutive onset times
func InterOnsetIntervals(onsets Onsets) []float64 {
	if len(onsets.Times) < 2 {
		return nil
	}

	intervals := make([]float64, 0, len(onsets.Times)-1)
	for i := 1; i < len(onsets.Times); i++ {
		intervals = append(intervals, onsets.Times[i]-onsets.Times[i-1])
	}
	return intervals
}

// EstimateBPM votes each usable inter-onset interval into an integer
// BPM histogram and returns the most frequent candidate, preferring the
// lower BPM on ties. No votes yields the default tempo.
func EstimateBPM(intervals []float64) float64 {
	if len(intervals) == 0 {
		return DefaultBPM
	}

	votes := make(map[int]float64)
	for _, interval := range intervals {
		if interval > minInterval && interval < maxInterval {
			bpm := int(math.Round(60.0 / interval))
			if bpm >= minBPM && bpm <= maxBPM {
				votes[bpm]++
			}
		}
	}

	bestBPM := int(DefaultBPM)
	bestScore := 0.0
	for bpm := minBPM; bpm <= maxBPM; bpm++ {
		if score := votes[bpm]; score > bestScore {
			bestScore = score
			bestBPM = bpm
		}
	}

	return float64(bestBPM)
}

// ValidateBPM folds out-of-range tempos back into [60, 200] by octave
// doubling or halving.
func ValidateBPM(bpm float64) float64 {
	if bpm < minBPM {
		return bpm * 2
	}
	if bpm > maxBPM {
		return bpm / 2
	}
	return bpm
}

// EstimateTempo runs the full chain: onsets to intervals to validated BPM
func (d *Detector) EstimateTempo(samples []float64) float64 {
	onsets := d.DetectOnsets(samples)
	return ValidateBPM(EstimateBPM(InterOnsetIntervals(onsets)))
}
