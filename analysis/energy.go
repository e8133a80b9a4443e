package analysis

import (
	"math"

	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
)

// measureEnergy combines loudness, spectral brightness and rhythmic
// activity into a perceived intensity score.
func measureEnergy(fs *FeatureSet) float64 {
	loudnessEnergy := calculateLoudnessEnergy(fs.RMS)
	spectralEnergy := calculateSpectralEnergy(fs)
	rhythmicEnergy := calculateRhythmicEnergy(fs)

	return loudnessEnergy*0.3 + spectralEnergy*0.3 + rhythmicEnergy*0.4
}

func calculateLoudnessEnergy(rms float64) float64 {
	if rms > 0.5 {
		return 1.0
	}
	if rms > 0.3 {
		return 0.8
	}
	if rms > 0.1 {
		return 0.6
	}
	if rms > 0.05 {
		return 0.4
	}
	if rms > 0.01 {
		return 0.2
	}
	return 0.1
}

func calculateSpectralEnergy(fs *FeatureSet) float64 {
	features := fs.Spectral
	spectralEnergy := 0.0

	highFreqEnergy, totalEnergy := 0.0, 0.0
	for i, mag := range features.Magnitude {
		totalEnergy += mag
		if features.Frequencies[i] > 2000.0 {
			highFreqEnergy += mag
		}
	}
	if totalEnergy > 0 {
		spectralEnergy += (highFreqEnergy / totalEnergy) * 0.5
	}

	spectralEnergy += math.Min(1.0, features.Centroid/4000.0) * 0.3
	spectralEnergy += math.Min(1.0, features.Rolloff/10000.0) * 0.2

	return math.Min(1.0, spectralEnergy)
}

func calculateRhythmicEnergy(fs *FeatureSet) float64 {
	onsetDensity := calculateOnsetDensity(fs.Onsets.Times)
	dynamicRange := analyzeDynamicRange(fs.PCM, fs.SampleRate)

	return math.Min(1.0, onsetDensity*0.6+dynamicRange*0.4)
}

func calculateOnsetDensity(onsetTimes []float64) float64 {
	if len(onsetTimes) == 0 {
		return 0.0
	}

	duration := onsetTimes[len(onsetTimes)-1] - onsetTimes[0]
	if duration <= 0 {
		return 0.0
	}

	density := float64(len(onsetTimes)) / duration

	if density > 10.0 {
		return 1.0
	}
	if density > 5.0 {
		return 0.8
	}
	if density > 2.0 {
		return 0.6
	}
	if density > 1.0 {
		return 0.4
	}
	if density > 0.5 {
		return 0.2
	}
	return 0.1
}

// analyzeDynamicRange normalizes the dB spread of 100ms RMS windows
// against a 40 dB reference.
func analyzeDynamicRange(samples []float64, sampleRate int) float64 {
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
		return 0.0
	}

	dynamicRange := 20.0 * math.Log10(maxRMS/(minRMS+1e-10))
	return math.Min(1.0, dynamicRange/40.0)
}
