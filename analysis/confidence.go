package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
)

// calculateConfidence weighs signal quality, cross-descriptor
// consistency and per-feature certainty.
func calculateConfidence(fs *FeatureSet, r *Result) float64 {
	audioQuality := assessAudioQuality(fs)
	consistency := validateConsistency(r)
	certainty := calculateFeatureCertainty(r)

	return audioQuality*0.3 + consistency*0.4 + certainty*0.3
}

func assessAudioQuality(fs *FeatureSet) float64 {
	qualityScore := 0.0

	snr := calculateSNR(fs.PCM, fs.SampleRate)
	if snr > 40.0 {
		qualityScore += 0.3
	} else if snr > 20.0 {
		qualityScore += 0.2
	} else if snr > 10.0 {
		qualityScore += 0.1
	}

	qualityScore += analyzeDynamicRange(fs.PCM, fs.SampleRate) * 0.3

	if isFrequencyResponseComplete(fs) {
		qualityScore += 0.2
	}

	qualityScore += (1.0 - detectCompressionArtifacts(fs)) * 0.2

	return math.Min(1.0, qualityScore)
}

// calculateSNR takes the 10th percentile of 100ms RMS windows as the
// noise floor and the 90th as the signal level.
func calculateSNR(samples []float64, sampleRate int) float64 {
	windowSize := int(0.1 * float64(sampleRate))
	if windowSize <= 0 {
		return 0.0
	}

	var rmsValues []float64
	for i := 0; i+windowSize <= len(samples); i += windowSize {
		rmsValues = append(rmsValues, common.RMS(samples[i:i+windowSize]))
	}
	if len(rmsValues) == 0 {
		return 0.0
	}

	sort.Float64s(rmsValues)
	noiseFloor := rmsValues[len(rmsValues)/10]
	signalLevel := rmsValues[len(rmsValues)*9/10]

	if noiseFloor == 0.0 {
		return 60.0
	}
	return 20.0 * math.Log10(signalLevel/noiseFloor)
}

func detectCompressionArtifacts(fs *FeatureSet) float64 {
	features := fs.Spectral
	artifactScore := 0.0

	if features.ZeroCrossingRate > 0.2 {
		artifactScore += 0.3
	}

	totalEnergy := 0.0
	for _, mag := range features.Magnitude {
		totalEnergy += mag
	}
	if totalEnergy > 0 {
		highFreqEnergy := 0.0
		for i, mag := range features.Magnitude {
			if features.Frequencies[i] > 15000.0 {
				highFreqEnergy += mag
			}
		}
		if highFreqEnergy/totalEnergy < 0.01 {
			artifactScore += 0.4
		}
	}

	if hasCompression(fs.PCM, fs.SampleRate) {
		artifactScore += 0.3
	}

	return math.Min(1.0, artifactScore)
}

// isFrequencyResponseComplete requires meaningful energy in the low,
// mid and high bands.
func isFrequencyResponseComplete(fs *FeatureSet) bool {
	features := fs.Spectral
	if len(features.Frequencies) == 0 {
		return false
	}

	totalEnergy := 0.0
	for _, mag := range features.Magnitude {
		totalEnergy += mag
	}
	if totalEnergy == 0 {
		return false
	}

	lowEnergy, midEnergy, highEnergy := 0.0, 0.0, 0.0
	for i, mag := range features.Magnitude {
		switch {
		case features.Frequencies[i] < 500.0:
			lowEnergy += mag
		case features.Frequencies[i] < 4000.0:
			midEnergy += mag
		default:
			highEnergy += mag
		}
	}

	return lowEnergy/totalEnergy > 0.05 &&
		midEnergy/totalEnergy > 0.3 &&
		highEnergy/totalEnergy > 0.02
}

// validateConsistency awards 0.25 for each cross-descriptor agreement:
// tempo with danceability, energy with valence, vocal content between
// speechiness and instrumentalness, and key with mode.
func validateConsistency(r *Result) float64 {
	consistencyScore := 0.0
	validationCount := 0

	if r.BPM > 0 && r.Danceability >= 0 {
		bpmDanceConsistent := (r.BPM >= 90.0 && r.BPM <= 160.0 && r.Danceability > 0.5) ||
			(r.BPM < 80.0 && r.Danceability < 0.5)
		if bpmDanceConsistent {
			consistencyScore += 0.25
		}
		validationCount++
	}

	if r.Energy >= 0 && r.Valence >= 0 {
		energyValenceConsistent := (r.Energy > 0.7 && r.Valence > 0.6) ||
			(r.Energy < 0.3 && r.Valence < 0.4) ||
			(r.Energy >= 0.3 && r.Energy <= 0.7)
		if energyValenceConsistent {
			consistencyScore += 0.25
		}
		validationCount++
	}

	if r.Instrumentalness >= 0 && r.Speechiness >= 0 {
		totalVocalContent := r.Speechiness + (1.0 - r.Instrumentalness)
		if totalVocalContent >= 0.8 && totalVocalContent <= 1.2 {
			consistencyScore += 0.25
		}
		validationCount++
	}

	if r.Key != "" && r.Mode != "" {
		keyModeConsistent := (strings.Contains(r.Key, "major") && r.Mode == "Major") ||
			(strings.Contains(r.Key, "minor") && r.Mode == "Minor")
		if keyModeConsistent {
			consistencyScore += 0.25
		}
		validationCount++
	}

	if validationCount == 0 {
		return 0.5
	}
	return consistencyScore
}

// calculateFeatureCertainty rewards descriptors that land in clear
// ranges. Extreme values of the 0-1 descriptors certify more than
// middle values.
func calculateFeatureCertainty(r *Result) float64 {
	certaintyScore := 0.0
	featureCount := 0

	if r.BPM >= 60.0 && r.BPM <= 200.0 {
		certaintyScore += 0.1
		featureCount++
	}

	if r.Energy >= 0.0 && r.Energy <= 1.0 {
		if r.Energy < 0.2 || r.Energy > 0.8 {
			certaintyScore += 0.1
		} else {
			certaintyScore += 0.05
		}
		featureCount++
	}

	if r.Valence >= 0.0 && r.Valence <= 1.0 {
		if r.Valence < 0.2 || r.Valence > 0.8 {
			certaintyScore += 0.1
		} else {
			certaintyScore += 0.05
		}
		featureCount++
	}

	if r.Danceability >= 0.0 && r.Danceability <= 1.0 {
		certaintyScore += 0.08
		featureCount++
	}

	if r.Acousticness >= 0.0 && r.Acousticness <= 1.0 {
		if r.Acousticness < 0.2 || r.Acousticness > 0.8 {
			certaintyScore += 0.08
		} else {
			certaintyScore += 0.04
		}
		featureCount++
	}

	if r.Key != "" && r.Mode != "" {
		certaintyScore += 0.1
		featureCount++
	}

	if r.TimeSignature >= 3 && r.TimeSignature <= 7 {
		certaintyScore += 0.05
		featureCount++
	}

	if len(r.Characteristics) > 0 {
		certaintyScore += 0.05
		featureCount++
	}

	if r.Loudness >= -60.0 && r.Loudness <= 0.0 {
		certaintyScore += 0.05
		featureCount++
	}

	if r.Liveness >= 0.0 && r.Liveness <= 1.0 {
		certaintyScore += 0.05
		featureCount++
	}

	if featureCount == 0 {
		return 0.1
	}
	return certaintyScore
}
