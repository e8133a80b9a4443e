package analysis

import (
	"math"
	"sort"

	"github.com/RyanBlaney/sonido-atlas/algorithms/spectral"
)

// measureAcousticness scores how acoustic the signal sounds in [0, 1].
// Strong harmonic content with few synthetic markers short-circuits high,
// dominant synthetic markers short-circuit low, otherwise the three
// component scores blend.
func measureAcousticness(fs *FeatureSet) float64 {
	harmonicContent := analyzeHarmonicContent(fs.Spectral)
	instrumentScore := detectAcousticInstruments(fs)
	syntheticElements := detectSyntheticElements(fs.Spectral)

	if harmonicContent > 0.7 && syntheticElements < 0.3 {
		return math.Max(0.7, harmonicContent)
	} else if syntheticElements > 0.8 {
		return math.Min(0.2, 1.0-syntheticElements)
	}

	return harmonicContent*0.5 + instrumentScore*0.3 + (1.0-syntheticElements)*0.2
}

// analyzeHarmonicContent estimates a harmonic-to-noise ratio by locating
// the fundamental, marking bins around each of its first ten harmonics,
// and comparing the energy inside those bins against the rest.
func analyzeHarmonicContent(features *spectral.Features) float64 {
	fundamentalFreq := findFundamentalFrequency(features)
	if fundamentalFreq <= 0 {
		return 0.0
	}

	mag := features.Magnitude
	binResolution := (float64(features.SampleRate) / 2.0) / float64(len(mag))
	fundamentalBin := int(fundamentalFreq / binResolution)

	const maxHarmonics = 10
	harmonicBins := make([]bool, len(mag))

	for harmonic := 1; harmonic <= maxHarmonics; harmonic++ {
		targetBin := fundamentalBin * harmonic
		if targetBin >= len(mag) {
			break
		}

		// Search for a peak near the expected harmonic position
		peakBin := -1
		maxMag := 0.0
		for offset := -3; offset <= 3; offset++ {
			bin := targetBin + offset
			if bin >= 0 && bin < len(mag) && mag[bin] > maxMag && isSpectralPeak(mag, bin) {
				maxMag = mag[bin]
				peakBin = bin
			}
		}

		if peakBin >= 0 {
			for offset := -2; offset <= 2; offset++ {
				bin := peakBin + offset
				if bin >= 0 && bin < len(mag) {
					harmonicBins[bin] = true
				}
			}
		}
	}

	harmonicEnergy := 0.0
	noiseEnergy := 0.0
	totalEnergy := 0.0
	for i, m := range mag {
		energy := m * m
		totalEnergy += energy
		if harmonicBins[i] {
			harmonicEnergy += energy
		} else {
			noiseEnergy += energy
		}
	}

	if totalEnergy <= 0 {
		return 0.0
	}

	hnr := harmonicEnergy / (noiseEnergy + 1e-10)
	return math.Tanh(hnr * 0.5)
}

// findFundamentalFrequency scores the strongest spectral peaks in the
// 80-2000 Hz range by how well integer harmonics line up with other
// peaks. A candidate needs at least two aligned harmonics to qualify.
func findFundamentalFrequency(features *spectral.Features) float64 {
	mag := features.Magnitude
	if len(mag) < 100 {
		return 0.0
	}

	type specPeak struct {
		bin int
		mag float64
	}
	var peaks []specPeak
	for i := 1; i < len(mag)-1; i++ {
		if isSpectralPeak(mag, i) && mag[i] > 0.01 {
			peaks = append(peaks, specPeak{i, mag[i]})
		}
	}
	if len(peaks) == 0 {
		return 0.0
	}

	sort.Slice(peaks, func(a, b int) bool { return peaks[a].mag > peaks[b].mag })

	maxPeaks := len(peaks)
	if maxPeaks > 20 {
		maxPeaks = 20
	}
	binResolution := (float64(features.SampleRate) / 2.0) / float64(len(mag))

	bestFundamental := 0.0
	bestScore := 0.0

	for i := 0; i < maxPeaks && i < 5; i++ {
		candidateFreq := float64(peaks[i].bin) * binResolution
		if candidateFreq < 80.0 || candidateFreq > 2000.0 {
			continue
		}

		score := 0.0
		harmonicsFound := 0
		for h := 2; h <= 8; h++ {
			harmonicBin := int(candidateFreq * float64(h) / binResolution)
			for _, peak := range peaks {
				if abs(peak.bin-harmonicBin) <= 3 {
					score += peak.mag / float64(h*h)
					harmonicsFound++
					break
				}
			}
		}

		if harmonicsFound >= 2 && score > bestScore {
			bestScore = score
			bestFundamental = candidateFreq
		}
	}

	return bestFundamental
}

// isSpectralPeak reports a local maximum against two neighbors per side.
func isSpectralPeak(magnitude []float64, index int) bool {
	if index <= 0 || index >= len(magnitude)-1 {
		return false
	}
	for offset := 1; offset <= 2; offset++ {
		if index-offset >= 0 && magnitude[index] <= magnitude[index-offset] {
			return false
		}
		if index+offset < len(magnitude) && magnitude[index] <= magnitude[index+offset] {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func detectAcousticInstruments(fs *FeatureSet) float64 {
	features := fs.Spectral
	acousticScore := 0.0

	if features.Centroid > 1000.0 && features.Centroid < 4000.0 {
		acousticScore += 0.3
	}

	attackDecay := analyzeAttackDecay(fs.PCM, fs.SampleRate)
	acousticScore += attackDecay * 0.4

	if features.Rolloff < 8000.0 {
		acousticScore += 0.3
	}

	return math.Min(1.0, acousticScore)
}

func detectSyntheticElements(features *spectral.Features) float64 {
	syntheticScore := 0.0

	if features.Centroid > 8000.0 {
		syntheticScore += 0.3
	}
	if features.Rolloff > 12000.0 {
		syntheticScore += 0.4
	}
	if features.ZeroCrossingRate < 0.01 && features.Centroid > 2000.0 {
		syntheticScore += 0.3
	}

	return math.Min(1.0, syntheticScore)
}

type attackProfile struct {
	duration  float64
	slope     float64
	sharpness float64
}

type decayProfile struct {
	duration float64
	rate     float64
	kind     string
}

// analyzeAttackDecay extracts a fine 2ms amplitude envelope, finds onset
// points from its velocity, and scores each onset's attack and decay
// shape against acoustic instrument expectations. 0.5 is the neutral
// score when the envelope is too short or has no onsets.
func analyzeAttackDecay(samples []float64, sampleRate int) float64 {
	windowSize := int(0.002 * float64(sampleRate))
	hopSize := windowSize / 4

	var envelope []float64
	for i := 0; i+windowSize <= len(samples); i += hopSize {
		rms := 0.0
		for j := 0; j < windowSize; j++ {
			s := samples[i+j]
			rms += s * s
		}
		envelope = append(envelope, math.Sqrt(rms/float64(windowSize)))
	}

	if len(envelope) < 10 {
		return 0.5
	}

	smoothed := smoothEnvelope(envelope, 3)

	onsetIndices := detectEnvelopeOnsets(smoothed)
	if len(onsetIndices) == 0 {
		return 0.5
	}

	totalScore := 0.0
	validOnsets := 0
	for _, onsetIdx := range onsetIndices {
		attack := analyzeAttack(smoothed, onsetIdx)

		// Decay starts at the peak after the onset
		peakIdx := onsetIdx
		limit := onsetIdx + 50
		if limit > len(smoothed) {
			limit = len(smoothed)
		}
		for i := onsetIdx; i < limit; i++ {
			if smoothed[i] > smoothed[peakIdx] {
				peakIdx = i
			}
		}

		decay := analyzeDecay(smoothed, peakIdx)

		totalScore += scoreAcousticCharacteristics(attack, decay)
		validOnsets++
	}

	if validOnsets == 0 {
		return 0.5
	}
	return totalScore / float64(validOnsets)
}

func smoothEnvelope(envelope []float64, smoothingWindow int) []float64 {
	smoothed := make([]float64, len(envelope))
	for i := range envelope {
		sum := 0.0
		count := 0
		for j := -smoothingWindow; j <= smoothingWindow; j++ {
			idx := i + j
			if idx >= 0 && idx < len(envelope) {
				sum += envelope[idx]
				count++
			}
		}
		if count > 0 {
			smoothed[i] = sum / float64(count)
		} else {
			smoothed[i] = envelope[i]
		}
	}
	return smoothed
}

// detectEnvelopeOnsets finds velocity peaks above a small threshold with
// a minimum spacing of 20 hops between accepted onsets.
func detectEnvelopeOnsets(envelope []float64) []int {
	velocity := make([]float64, len(envelope)-1)
	for i := 0; i < len(envelope)-1; i++ {
		velocity[i] = envelope[i+1] - envelope[i]
	}

	const threshold = 0.001
	var onsets []int
	for i := 1; i < len(velocity)-1; i++ {
		if velocity[i] > threshold && velocity[i] > velocity[i-1] && velocity[i] > velocity[i+1] {
			if len(onsets) == 0 || i-onsets[len(onsets)-1] > 20 {
				onsets = append(onsets, i)
			}
		}
	}
	return onsets
}

func analyzeAttack(envelope []float64, onsetIdx int) attackProfile {
	peakIdx := onsetIdx
	peakValue := envelope[onsetIdx]

	limit := onsetIdx + 50
	if limit > len(envelope) {
		limit = len(envelope)
	}
	for i := onsetIdx; i < limit; i++ {
		if envelope[i] > peakValue {
			peakValue = envelope[i]
			peakIdx = i
		}
	}

	threshold10 := peakValue * 0.1
	threshold90 := peakValue * 0.9

	idx10 := onsetIdx
	idx90 := peakIdx
	for i := onsetIdx; i <= peakIdx; i++ {
		if envelope[i] >= threshold10 && idx10 == onsetIdx {
			idx10 = i
		}
		if envelope[i] >= threshold90 {
			idx90 = i
			break
		}
	}

	var profile attackProfile
	profile.duration = float64(idx90-idx10) * 0.0005
	profile.slope = (envelope[idx90] - envelope[idx10]) / (profile.duration + 1e-6)
	profile.sharpness = 1.0 / (profile.duration + 0.001)
	return profile
}

func analyzeDecay(envelope []float64, peakIdx int) decayProfile {
	var profile decayProfile

	if peakIdx >= len(envelope)-10 {
		profile.duration = 0.1
		profile.rate = 10.0
		profile.kind = "unknown"
		return profile
	}

	peakValue := envelope[peakIdx]
	threshold60 := peakValue * 0.4

	decayIdx := peakIdx
	for i := peakIdx + 1; i < len(envelope); i++ {
		if envelope[i] <= threshold60 {
			decayIdx = i
			break
		}
	}

	profile.duration = float64(decayIdx-peakIdx) * 0.0005

	// Least-squares fit of log amplitude gives the exponential decay rate
	var sumXY, sumX, sumY, sumX2 float64
	points := 0
	for i := peakIdx; i <= decayIdx && i < len(envelope); i++ {
		if envelope[i] > 0 {
			x := float64(i-peakIdx) * 0.0005
			y := math.Log(envelope[i] / peakValue)
			sumX += x
			sumY += y
			sumXY += x * y
			sumX2 += x * x
			points++
		}
	}

	n := float64(points)
	if points > 2 && sumX2*n-sumX*sumX != 0 {
		profile.rate = math.Abs((sumXY*n - sumX*sumY) / (sumX2*n - sumX*sumX))
	} else {
		profile.rate = 10.0
	}

	switch {
	case profile.rate < 5.0:
		profile.kind = "sustained"
	case profile.rate < 20.0:
		profile.kind = "natural"
	default:
		profile.kind = "percussive"
	}

	return profile
}

func scoreAcousticCharacteristics(attack attackProfile, decay decayProfile) float64 {
	score := 0.0

	if attack.duration >= 0.005 && attack.duration <= 0.05 {
		score += 0.3
	} else if attack.duration < 0.005 {
		score += 0.2
	}

	if decay.kind == "natural" {
		score += 0.4
	} else if decay.kind == "sustained" {
		score += 0.2
	}

	if attack.sharpness > 20.0 && attack.sharpness < 200.0 {
		score += 0.3
	}

	return math.Min(1.0, score)
}
