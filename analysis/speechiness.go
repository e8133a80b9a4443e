package analysis

import (
	"math"

	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
	"github.com/RyanBlaney/sonido-atlas/algorithms/spectral"
)

// measureSpeechiness blends spectral speech markers, consonant cues and
// the amplitude modulation rate typical of spoken words.
func measureSpeechiness(fs *FeatureSet) float64 {
	speechPatterns := analyzeSpeechPatterns(fs.Spectral)
	rhythmicSpeech := analyzeRhythmicSpeech(fs.PCM, fs.SampleRate)
	consonants := detectConsonants(fs.Spectral)

	return speechPatterns*0.4 + consonants*0.3 + rhythmicSpeech*0.3
}

func analyzeSpeechPatterns(features *spectral.Features) float64 {
	speechScore := 0.0

	if features.ZeroCrossingRate > 0.1 {
		speechScore += 0.4
	}
	if features.Centroid > 1000.0 && features.Centroid < 3000.0 {
		speechScore += 0.3
	}
	if features.Rolloff > 3000.0 && features.Rolloff < 8000.0 {
		speechScore += 0.3
	}

	return math.Min(1.0, speechScore)
}

// analyzeRhythmicSpeech counts direction changes in a 20ms RMS envelope.
// Speech syllables modulate amplitude at roughly 3 to 8 Hz, which maps
// to a change rate between 0.1 and 0.5 per window.
func analyzeRhythmicSpeech(samples []float64, sampleRate int) float64 {
	windowSize := int(0.02 * float64(sampleRate))
	if windowSize <= 0 {
		return 0.0
	}

	var amplitudes []float64
	for i := 0; i+windowSize <= len(samples); i += windowSize / 2 {
		amplitudes = append(amplitudes, common.RMS(samples[i:i+windowSize]))
	}
	if len(amplitudes) == 0 {
		return 0.0
	}

	modulationCount := 0
	for i := 2; i < len(amplitudes); i++ {
		if (amplitudes[i] > amplitudes[i-1]) != (amplitudes[i-1] > amplitudes[i-2]) {
			modulationCount++
		}
	}

	modulationRate := float64(modulationCount) / float64(len(amplitudes))
	if modulationRate > 0.1 && modulationRate < 0.5 {
		return modulationRate * 2.0
	}
	return 0.0
}

func detectConsonants(features *spectral.Features) float64 {
	consonantScore := 0.0

	if features.ZeroCrossingRate > 0.15 {
		consonantScore += 0.5
	}
	if features.Centroid > 2000.0 {
		consonantScore += 0.3
	}

	// Fricatives concentrate magnitude above 4 kHz
	highFreqEnergy, totalEnergy := 0.0, 0.0
	for i, mag := range features.Magnitude {
		totalEnergy += mag
		if features.Frequencies[i] > 4000.0 {
			highFreqEnergy += mag
		}
	}
	if totalEnergy > 0 && highFreqEnergy/totalEnergy > 0.2 {
		consonantScore += 0.2
	}

	return math.Min(1.0, consonantScore)
}
