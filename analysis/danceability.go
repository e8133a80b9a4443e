package analysis

import (
	"math"

	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
	"github.com/RyanBlaney/sonido-atlas/algorithms/rhythm"
)

// measureDanceability weighs beat strength, tempo suitability and rhythm
// regularity.
func measureDanceability(fs *FeatureSet) float64 {
	beatStrength := analyzeBeatStrength(fs.Beats)
	tempoSuitability := analyzeTempoSuitability(fs.BPM)
	rhythmRegularity := analyzeRhythmRegularity(fs.Beats)

	return beatStrength*0.4 + tempoSuitability*0.3 + rhythmRegularity*0.3
}

func analyzeBeatStrength(beats rhythm.Beats) float64 {
	if len(beats.Strengths) == 0 {
		return 0.0
	}

	avgStrength := common.Mean(beats.Strengths)
	maxStrength := beats.Strengths[0]
	for _, s := range beats.Strengths {
		if s > maxStrength {
			maxStrength = s
		}
	}

	consistency := 0.0
	if maxStrength > 0 {
		consistency = avgStrength / maxStrength
	}
	strength := math.Min(1.0, avgStrength*10.0)

	return consistency*0.6 + strength*0.4
}

// analyzeTempoSuitability buckets BPM by how danceable the tempo is.
// The 90-130 range wins before the overlapping 130-160 check.
func analyzeTempoSuitability(bpm float64) float64 {
	if bpm >= 90.0 && bpm <= 130.0 {
		return 1.0
	}
	if bpm >= 130.0 && bpm <= 160.0 {
		return 0.9
	}
	if bpm >= 70.0 && bpm <= 90.0 {
		return 0.6
	}
	if bpm >= 160.0 && bpm <= 180.0 {
		return 0.7
	}
	if bpm >= 60.0 && bpm <= 70.0 {
		return 0.3
	}
	if bpm >= 180.0 && bpm <= 200.0 {
		return 0.4
	}
	return 0.1
}

func analyzeRhythmRegularity(beats rhythm.Beats) float64 {
	if len(beats.Times) < 3 {
		return 0.0
	}

	intervals := make([]float64, 0, len(beats.Times)-1)
	for i := 1; i < len(beats.Times); i++ {
		intervals = append(intervals, beats.Times[i]-beats.Times[i-1])
	}

	mean := common.Mean(intervals)
	stdDev := common.PopStdDev(intervals)
	cv := 1.0
	if mean > 0 {
		cv = stdDev / mean
	}

	return math.Max(0.0, 1.0-cv*2.0)
}
