package analysis

import (
	"math"
	"sort"

	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
)

// measureLiveness estimates live performance probability from room
// reverberation, background noise, spatial breadth and crowd markers.
// The blend weights sum past 1 when every marker fires, so the score is
// clamped to [0, 1].
func measureLiveness(fs *FeatureSet) float64 {
	reverbScore := analyzeReverb(fs.PCM, fs.SampleRate)
	noiseScore := analyzeBackgroundNoise(fs.PCM, fs.SampleRate)
	spatialScore := analyzeSpatialCharacteristics(fs)
	crowdScore := detectCrowdNoise(fs)

	return common.Clamp01((reverbScore+spatialScore)*0.4 + noiseScore*0.4 + crowdScore*0.2)
}

// analyzeReverb buckets the RT60 estimate: concert hall, club, room, or
// dry studio.
func analyzeReverb(samples []float64, sampleRate int) float64 {
	reverbTime := calculateReverbTime(samples, sampleRate)

	if reverbTime > 0.5 {
		return 0.8
	}
	if reverbTime > 0.2 {
		return 0.6
	}
	if reverbTime > 0.1 {
		return 0.3
	}
	return 0.1
}

// calculateReverbTime estimates RT60 with Schroeder backward integration
// on two-second decay segments after detected impulses, taking the
// median of the per-impulse fits. Without usable impulses it falls back
// to the coarse block decay estimate.
func calculateReverbTime(samples []float64, sampleRate int) float64 {
	windowSize := int(0.005 * float64(sampleRate))
	hopSize := windowSize / 2

	impulseIndices := detectImpulses(samples, sampleRate)
	if len(impulseIndices) == 0 {
		return estimateRT60FromDecay(samples, sampleRate)
	}

	var rt60Estimates []float64
	for _, impulseIdx := range impulseIndices {
		if impulseIdx+sampleRate*2 > len(samples) {
			continue
		}

		endIdx := impulseIdx + sampleRate*2
		if endIdx > len(samples) {
			endIdx = len(samples)
		}
		decaySegment := samples[impulseIdx:endIdx]

		energyCurve := calculateEnergyCurve(decaySegment, windowSize, hopSize)
		schroederCurve := schroederBackwardIntegration(energyCurve)
		rt60 := fitRT60(schroederCurve, float64(hopSize)/float64(sampleRate))

		if rt60 > 0.05 && rt60 < 10.0 {
			rt60Estimates = append(rt60Estimates, rt60)
		}
	}

	if len(rt60Estimates) == 0 {
		return estimateRT60FromDecay(samples, sampleRate)
	}

	sort.Float64s(rt60Estimates)
	return rt60Estimates[len(rt60Estimates)/2]
}

// detectImpulses finds short-term energy peaks at least four times the
// mean, keeping a minimum spacing of 500ms between accepted impulses.
func detectImpulses(samples []float64, sampleRate int) []int {
	windowSize := int(0.01 * float64(sampleRate))
	if windowSize <= 0 {
		return nil
	}

	var energy []float64
	for i := 0; i+windowSize <= len(samples); i += windowSize / 2 {
		e := 0.0
		for j := 0; j < windowSize; j++ {
			e += samples[i+j] * samples[i+j]
		}
		energy = append(energy, e/float64(windowSize))
	}

	if len(energy) < 3 {
		return nil
	}

	threshold := common.Mean(energy) * 4.0

	var impulses []int
	minGap := int(float64(sampleRate) * 0.5)
	for i := 1; i < len(energy)-1; i++ {
		if energy[i] > threshold && energy[i] > energy[i-1] && energy[i] > energy[i+1] {
			sampleIdx := i * windowSize / 2
			if len(impulses) == 0 || sampleIdx-impulses[len(impulses)-1] > minGap {
				impulses = append(impulses, sampleIdx)
			}
		}
	}

	return impulses
}

func calculateEnergyCurve(signal []float64, windowSize, hopSize int) []float64 {
	var energy []float64
	for i := 0; i+windowSize <= len(signal); i += hopSize {
		e := 0.0
		for j := 0; j < windowSize; j++ {
			e += signal[i+j] * signal[i+j]
		}
		energy = append(energy, e)
	}
	return energy
}

func schroederBackwardIntegration(energy []float64) []float64 {
	schroeder := make([]float64, len(energy))

	totalEnergy := 0.0
	for _, e := range energy {
		totalEnergy += e
	}
	if totalEnergy <= 0 {
		return schroeder
	}

	cumulative := 0.0
	for i := len(energy) - 1; i >= 0; i-- {
		cumulative += energy[i]
		schroeder[i] = 10.0 * math.Log10(cumulative/totalEnergy+1e-10)
	}

	return schroeder
}

// fitRT60 regresses the Schroeder curve between its -5dB and -35dB
// points and extrapolates the slope to a 60dB decay.
func fitRT60(schroederCurve []float64, timeStep float64) float64 {
	if len(schroederCurve) < 10 {
		return 0.1
	}

	idx5dB, idx35dB := -1, -1
	for i, v := range schroederCurve {
		if idx5dB < 0 && v <= -5.0 {
			idx5dB = i
		}
		if idx35dB < 0 && v <= -35.0 {
			idx35dB = i
			break
		}
	}

	if idx5dB < 0 || idx35dB < 0 || idx35dB <= idx5dB {
		idx5dB = len(schroederCurve) / 10
		idx35dB = len(schroederCurve) / 2
	}

	var sumX, sumY, sumXY, sumX2 float64
	count := 0
	for i := idx5dB; i <= idx35dB; i++ {
		x := float64(i) * timeStep
		y := schroederCurve[i]
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
		count++
	}

	n := float64(count)
	if count < 2 || sumX2*n-sumX*sumX == 0 {
		return 0.1
	}

	slope := (sumXY*n - sumX*sumY) / (sumX2*n - sumX*sumX)
	if slope >= 0 {
		return 0.1
	}

	rt60 := -60.0 / slope
	return math.Max(0.05, math.Min(10.0, rt60))
}

// estimateRT60FromDecay measures 100ms block energy in dB, finds the
// peak, times the drop to -20dB and extrapolates it threefold.
func estimateRT60FromDecay(samples []float64, sampleRate int) float64 {
	blockSize := int(0.1 * float64(sampleRate))
	if blockSize <= 0 {
		return 0.1
	}

	var blockEnergy []float64
	for i := 0; i+blockSize <= len(samples); i += blockSize {
		energy := 0.0
		for j := 0; j < blockSize; j++ {
			energy += samples[i+j] * samples[i+j]
		}
		blockEnergy = append(blockEnergy, 10.0*math.Log10(energy/float64(blockSize)+1e-10))
	}

	if len(blockEnergy) < 5 {
		return 0.1
	}

	peakIdx := 0
	for i, e := range blockEnergy {
		if e > blockEnergy[peakIdx] {
			peakIdx = i
		}
	}

	if peakIdx >= len(blockEnergy)-2 {
		return 0.1
	}

	threshold20dB := blockEnergy[peakIdx] - 20.0
	decayIdx := -1
	for i := peakIdx + 1; i < len(blockEnergy); i++ {
		if blockEnergy[i] <= threshold20dB {
			decayIdx = i
			break
		}
	}
	if decayIdx < 0 {
		return 0.1
	}

	time20dB := float64(decayIdx-peakIdx) * 0.1
	rt60 := time20dB * 3.0

	return math.Max(0.05, math.Min(2.0, rt60))
}

// analyzeBackgroundNoise averages the RMS of quiet 100ms sections.
// Persistent noise in quiet passages suggests a live environment.
func analyzeBackgroundNoise(samples []float64, sampleRate int) float64 {
	windowSize := int(0.1 * float64(sampleRate))
	if windowSize <= 0 {
		return 0.0
	}

	var noiseEstimates []float64
	for i := 0; i+windowSize <= len(samples); i += windowSize {
		rms := common.RMS(samples[i : i+windowSize])
		if rms < 0.1 {
			noiseEstimates = append(noiseEstimates, rms)
		}
	}

	if len(noiseEstimates) == 0 {
		return 0.0
	}

	avgNoise := common.Mean(noiseEstimates)

	if avgNoise > 0.05 {
		return 0.8
	}
	if avgNoise > 0.02 {
		return 0.5
	}
	if avgNoise > 0.01 {
		return 0.2
	}
	return 0.1
}

func analyzeSpatialCharacteristics(fs *FeatureSet) float64 {
	spatialScore := 0.0

	if fs.Spectral.Rolloff > 8000.0 {
		spatialScore += 0.3
	}
	if fs.Spectral.Centroid > 2000.0 && fs.Spectral.Centroid < 5000.0 {
		spatialScore += 0.4
	}

	maxSample, minSample := 0.0, 0.0
	for i, s := range fs.PCM {
		if i == 0 || s > maxSample {
			maxSample = s
		}
		if i == 0 || s < minSample {
			minSample = s
		}
	}
	if maxSample-minSample > 1.5 {
		spatialScore += 0.3
	}

	return math.Min(1.0, spatialScore)
}

func detectCrowdNoise(fs *FeatureSet) float64 {
	crowdScore := 0.0

	if fs.Spectral.Centroid > 500.0 && fs.Spectral.Centroid < 2000.0 {
		crowdScore += 0.3
	}
	if fs.Spectral.ZeroCrossingRate > 0.05 {
		crowdScore += 0.4
	}

	bandwidthRatio := fs.Spectral.Rolloff / fs.Spectral.Centroid
	if bandwidthRatio > 3.0 {
		crowdScore += 0.3
	}

	return math.Min(1.0, crowdScore)
}
