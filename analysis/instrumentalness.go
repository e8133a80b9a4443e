package analysis

import (
	"math"

	"github.com/RyanBlaney/sonido-atlas/algorithms/spectral"
)

// measureInstrumentalness is the complement of the vocal content score.
func measureInstrumentalness(fs *FeatureSet) float64 {
	return 1.0 - detectVocalContent(fs)
}

// detectVocalContent scores vocal presence from formant structure, a
// centroid in the vocal range and a strongly pitched chroma.
func detectVocalContent(fs *FeatureSet) float64 {
	formants := extractFormantFrequencies(fs.Spectral)

	vocalScore := 0.0

	// F1 and F2 together indicate a vocal tract resonance pattern
	hasF1, hasF2 := false, false
	for _, formant := range formants {
		if formant >= 200.0 && formant <= 1000.0 {
			hasF1 = true
		}
		if formant >= 800.0 && formant <= 2500.0 {
			hasF2 = true
		}
	}
	if hasF1 && hasF2 {
		vocalScore += 0.6
	}

	if fs.Spectral.Centroid >= 500.0 && fs.Spectral.Centroid <= 2000.0 {
		vocalScore += 0.2
	}

	maxChroma := 0.0
	for _, c := range fs.Chroma {
		if c > maxChroma {
			maxChroma = c
		}
	}
	if maxChroma > 0.3 {
		vocalScore += 0.2
	}

	return math.Min(1.0, vocalScore)
}

// extractFormantFrequencies picks spectral peaks between 100 and 3000 Hz
// that dominate two neighbors on each side.
func extractFormantFrequencies(features *spectral.Features) []float64 {
	var formants []float64
	mag := features.Magnitude
	for i := 2; i < len(mag)-2; i++ {
		if features.Frequencies[i] > 100.0 && features.Frequencies[i] < 3000.0 {
			if mag[i] > mag[i-1] && mag[i] > mag[i+1] && mag[i] > mag[i-2] && mag[i] > mag[i+2] {
				formants = append(formants, features.Frequencies[i])
			}
		}
	}
	return formants
}
