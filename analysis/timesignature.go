package analysis

import (
	"math"

	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
	"github.com/RyanBlaney/sonido-atlas/algorithms/rhythm"
)

// detectTimeSignature classifies the meter from the accent pattern of
// the detected beats. Fewer than 8 beats defaults to 4/4.
func detectTimeSignature(beats rhythm.Beats) int {
	accentPattern := analyzeAccentPattern(beats)
	return analyzeMeter(accentPattern)
}

// analyzeAccentPattern returns the strengths of the first 16 beats once
// a dominant inter-beat interval exists. Intervals are quantized to
// 10ms for the histogram.
func analyzeAccentPattern(beats rhythm.Beats) []float64 {
	if len(beats.Times) < 8 {
		return nil
	}

	intervalCounts := make(map[int]int)
	for i := 1; i < len(beats.Times); i++ {
		quantized := int(math.Round((beats.Times[i] - beats.Times[i-1]) * 100))
		intervalCounts[quantized]++
	}

	basicBeatInterval := 0
	maxCount := 0
	for interval, count := range intervalCounts {
		if count > maxCount {
			maxCount = count
			basicBeatInterval = interval
		}
	}
	if basicBeatInterval == 0 {
		return nil
	}

	var accentPattern []float64
	for i := 0; i < len(beats.Strengths) && i < 16; i++ {
		accentPattern = append(accentPattern, beats.Strengths[i])
	}
	return accentPattern
}

func analyzeMeter(accentPattern []float64) int {
	if len(accentPattern) < 4 {
		return 4
	}

	if isThreeQuarterTime(accentPattern) {
		return 3
	}
	if isSixEightTime(accentPattern) {
		return 6
	}
	if isComplexMeter(accentPattern) {
		if len(accentPattern) >= 7 {
			strength7 := 0.0
			for i := 0; i < len(accentPattern); i += 7 {
				strength7 += accentPattern[i]
			}
			strength5 := 0.0
			for i := 0; i < len(accentPattern); i += 5 {
				strength5 += accentPattern[i]
			}
			if strength7 > strength5 {
				return 7
			}
			if strength5 > 0 {
				return 5
			}
		}
	}

	return 4
}

// isThreeQuarterTime checks for a strong-weak-weak accent grouping.
func isThreeQuarterTime(pattern []float64) bool {
	if len(pattern) < 6 {
		return false
	}

	accent1, accent2, accent3 := 0.0, 0.0, 0.0
	count := 0
	for i := 0; i+2 < len(pattern); i += 3 {
		accent1 += pattern[i]
		accent2 += pattern[i+1]
		accent3 += pattern[i+2]
		count++
	}
	if count == 0 {
		return false
	}

	n := float64(count)
	accent1 /= n
	accent2 /= n
	accent3 /= n

	return accent1 > accent2*1.2 && accent1 > accent3*1.2
}

// isSixEightTime checks for a strong downbeat with a medium accent on
// the fourth pulse.
func isSixEightTime(pattern []float64) bool {
	if len(pattern) < 6 {
		return false
	}

	accent1, accent4, others := 0.0, 0.0, 0.0
	count := 0
	for i := 0; i+5 < len(pattern); i += 6 {
		accent1 += pattern[i]
		accent4 += pattern[i+3]
		others += (pattern[i+1] + pattern[i+2] + pattern[i+4] + pattern[i+5]) / 4.0
		count++
	}
	if count == 0 {
		return false
	}

	n := float64(count)
	accent1 /= n
	accent4 /= n
	others /= n

	return accent1 > others*1.3 && accent4 > others*1.1 && accent1 > accent4*1.1
}

// isComplexMeter flags irregular accents via a high coefficient of
// variation.
func isComplexMeter(pattern []float64) bool {
	if len(pattern) < 5 {
		return false
	}

	mean := common.Mean(pattern)
	stdDev := common.PopStdDev(pattern)
	cv := 0.0
	if mean > 0 {
		cv = stdDev / mean
	}

	return cv > 0.5
}
