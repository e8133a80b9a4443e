package analysis

import (
	"math"

	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
)

// extractCharacteristics collects timbral, rhythmic and effect labels,
// capped at five entries in that priority order.
func extractCharacteristics(fs *FeatureSet, liveness float64) []string {
	all := analyzeTimbralFeatures(fs)
	all = append(all, analyzeRhythmicPatterns(fs)...)
	all = append(all, analyzeEffects(fs, liveness)...)

	if len(all) > 5 {
		all = all[:5]
	}
	return all
}

func analyzeTimbralFeatures(fs *FeatureSet) []string {
	features := fs.Spectral
	var timbral []string

	if features.Centroid > 4000.0 {
		timbral = append(timbral, "Bright")
	} else if features.Centroid < 1000.0 {
		timbral = append(timbral, "Dark")
	} else {
		timbral = append(timbral, "Balanced")
	}

	if features.ZeroCrossingRate > 0.1 {
		timbral = append(timbral, "Percussive")
	} else if features.ZeroCrossingRate < 0.02 {
		timbral = append(timbral, "Smooth")
	}

	if features.Rolloff > 8000.0 {
		timbral = append(timbral, "Full-spectrum")
	} else if features.Rolloff < 3000.0 {
		timbral = append(timbral, "Muffled")
	}

	if hasDistortion(fs) {
		timbral = append(timbral, "Distorted")
	}

	return timbral
}

func analyzeRhythmicPatterns(fs *FeatureSet) []string {
	var rhythmic []string

	if fs.BPM > 140.0 {
		rhythmic = append(rhythmic, "Driving rhythm")
	} else if fs.BPM < 80.0 {
		rhythmic = append(rhythmic, "Laid-back rhythm")
	} else {
		rhythmic = append(rhythmic, "Moderate rhythm")
	}

	if len(fs.Onsets.Times) > 0 {
		duration := fs.Onsets.Times[len(fs.Onsets.Times)-1] - fs.Onsets.Times[0]
		onsetDensity := float64(len(fs.Onsets.Times)) / duration

		if onsetDensity > 5.0 {
			rhythmic = append(rhythmic, "Complex rhythm")
		} else if onsetDensity < 1.0 {
			rhythmic = append(rhythmic, "Simple rhythm")
		}
	}

	return rhythmic
}

func analyzeEffects(fs *FeatureSet, liveness float64) []string {
	var effects []string

	// Strong liveness implies audible room decay
	if liveness > 0.3 {
		effects = append(effects, "Reverb")
	}
	if hasCompression(fs.PCM, fs.SampleRate) {
		effects = append(effects, "Compressed")
	}
	if hasDistortion(fs) {
		effects = append(effects, "Distortion")
	}

	return effects
}

func hasDistortion(fs *FeatureSet) bool {
	features := fs.Spectral
	totalEnergy, highFreqEnergy := 0.0, 0.0
	for i, mag := range features.Magnitude {
		totalEnergy += mag
		if features.Frequencies[i] > 5000.0 {
			highFreqEnergy += mag
		}
	}

	highFreqRatio := 0.0
	if totalEnergy > 0 {
		highFreqRatio = highFreqEnergy / totalEnergy
	}

	return highFreqRatio > 0.3 && features.ZeroCrossingRate > 0.08
}

// hasCompression flags a 100ms RMS dynamic range under 15 dB.
func hasCompression(samples []float64, sampleRate int) bool {
	windowSize := int(0.1 * float64(sampleRate))
	if windowSize <= 0 {
		return false
	}

	var rmsValues []float64
	for i := 0; i+windowSize <= len(samples); i += windowSize {
		rmsValues = append(rmsValues, common.RMS(samples[i:i+windowSize]))
	}
	if len(rmsValues) == 0 {
		return false
	}

	maxRMS, minRMS := rmsValues[0], rmsValues[0]
	for _, v := range rmsValues {
		if v > maxRMS {
			maxRMS = v
		}
		if v < minRMS {
			minRMS = v
		}
	}
	if maxRMS == 0 {
		return false
	}

	dynamicRange := 20.0 * math.Log10(maxRMS/(minRMS+1e-10))
	return dynamicRange < 15.0
}
