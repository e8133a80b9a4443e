package analysis

import (
	"math"
	"sort"
)

// silenceLUFS is reported when no block carries any energy
const silenceLUFS = -70.0

// measureLoudness computes integrated loudness in LUFS per the ITU-R
// BS.1770 approach: K-weighting, 400ms blocks, then relative gating at
// 10 LU below the 90th percentile block.
func measureLoudness(pcm []float64, sampleRate int) float64 {
	weighted := applyKWeighting(pcm, sampleRate)
	return integratedLoudness(weighted, sampleRate)
}

// applyKWeighting runs the two-stage K-weighting filter: a 38 Hz
// high-pass pre-filter followed by a ~+4 dB high shelf at 1681 Hz. Both
// stages derive their coefficients from the sample rate.
func applyKWeighting(samples []float64, sampleRate int) []float64 {
	// Stage 1: Butterworth high-pass, f0 = 38 Hz, Q = 0.5
	f0 := 38.0
	q := 0.5
	k := math.Tan(math.Pi * f0 / float64(sampleRate))
	norm := 1.0 / (1.0 + k/q + k*k)
	a0 := norm
	a1 := -2.0 * norm
	a2 := norm
	b1 := 2.0 * (k*k - 1.0) * norm
	b2 := (1.0 - k/q + k*k) * norm

	stage1 := make([]float64, len(samples))
	var x1, x2, y1, y2 float64
	for i, x0 := range samples {
		y0 := a0*x0 + a1*x1 + a2*x2 - b1*y1 - b2*y2
		stage1[i] = y0
		x2, x1 = x1, x0
		y2, y1 = y1, y0
	}

	// Stage 2: high shelf, f1 = 1681 Hz, gain +3.999843 dB
	f1 := 1681.0
	g := math.Pow(10.0, 3.999843/20.0)
	k1 := math.Tan(math.Pi * f1 / float64(sampleRate))
	v0 := math.Pow(10.0, g/20.0)
	root2 := math.Sqrt(2.0)

	var a0s, a1s, a2s, b1s, b2s float64
	if g >= 0 {
		norm1 := 1.0 / (1.0 + root2*k1 + k1*k1)
		a0s = (v0 + root2*math.Sqrt(v0)*k1 + k1*k1) * norm1
		a1s = 2.0 * (k1*k1 - v0) * norm1
		a2s = (v0 - root2*math.Sqrt(v0)*k1 + k1*k1) * norm1
		b1s = 2.0 * (k1*k1 - 1.0) * norm1
		b2s = (1.0 - root2*k1 + k1*k1) * norm1
	} else {
		norm1 := 1.0 / (v0 + root2*math.Sqrt(v0)*k1 + k1*k1)
		a0s = (1.0 + root2*k1 + k1*k1) * norm1
		a1s = 2.0 * (k1*k1 - 1.0) * norm1
		a2s = (1.0 - root2*k1 + k1*k1) * norm1
		b1s = 2.0 * (k1*k1 - v0) * norm1
		b2s = (v0 - root2*math.Sqrt(v0)*k1 + k1*k1) * norm1
	}

	output := make([]float64, len(stage1))
	x1, x2, y1, y2 = 0, 0, 0, 0
	for i, x0 := range stage1 {
		y0 := a0s*x0 + a1s*x1 + a2s*x2 - b1s*y1 - b2s*y2
		output[i] = y0
		x2, x1 = x1, x0
		y2, y1 = y1, y0
	}

	return output
}

// integratedLoudness gates 400ms block loudness values and averages the
// survivors in the energy domain.
func integratedLoudness(weighted []float64, sampleRate int) float64 {
	blockSize := int(0.4 * float64(sampleRate))
	if blockSize <= 0 {
		return silenceLUFS
	}

	var blockLoudness []float64
	for i := 0; i+blockSize <= len(weighted); i += blockSize {
		meanSquare := 0.0
		for j := i; j < i+blockSize; j++ {
			meanSquare += weighted[j] * weighted[j]
		}
		meanSquare /= float64(blockSize)

		if meanSquare > 0 {
			blockLoudness = append(blockLoudness, -0.691+10.0*math.Log10(meanSquare))
		}
	}

	if len(blockLoudness) == 0 {
		return silenceLUFS
	}

	sort.Float64s(blockLoudness)
	relativeThreshold := blockLoudness[int(float64(len(blockLoudness))*0.9)] - 10.0

	integrated := 0.0
	validBlocks := 0
	for _, loudness := range blockLoudness {
		if loudness >= relativeThreshold {
			integrated += math.Pow(10.0, loudness/10.0)
			validBlocks++
		}
	}

	if validBlocks == 0 {
		return silenceLUFS
	}

	return -0.691 + 10.0*math.Log10(integrated/float64(validBlocks))
}
