package analysis

import (
	"math"
)

var (
	majorTriad = [12]float64{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0}
	minorTriad = [12]float64{1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0}
)

// measureValence combines major harmony, melodic positivity, tempo and
// timbral brightness into a musical positivity score.
func measureValence(fs *FeatureSet) float64 {
	majorHarmony := analyzeMajorHarmony(fs.Chroma)
	melodicPositivity := analyzeMelodicPositivity(fs)
	tempoFactor := analyzeTempoFactor(fs.BPM)
	timbralBrightness := analyzeTimbralBrightness(fs)

	return majorHarmony*0.3 + melodicPositivity*0.2 + tempoFactor*0.2 + timbralBrightness*0.3
}

// analyzeMajorHarmony matches the chroma against major and minor triad
// templates across all 12 transpositions, returning the major share of
// the combined best scores. No harmonic content at all scores 0.5.
func analyzeMajorHarmony(chroma []float64) float64 {
	majorScore, minorScore := 0.0, 0.0

	for root := 0; root < 12; root++ {
		majorCorr, minorCorr := 0.0, 0.0
		for i := 0; i < 12; i++ {
			chromaIdx := (i + root) % 12
			majorCorr += chroma[chromaIdx] * majorTriad[i]
			minorCorr += chroma[chromaIdx] * minorTriad[i]
		}
		majorScore = math.Max(majorScore, majorCorr)
		minorScore = math.Max(minorScore, minorCorr)
	}

	total := majorScore + minorScore
	if total > 0 {
		return majorScore / total
	}
	return 0.5
}

func analyzeMelodicPositivity(fs *FeatureSet) float64 {
	normalizedCentroid := math.Min(1.0, fs.Spectral.Centroid/3000.0)
	consonance := calculateConsonance(fs.Chroma)
	return normalizedCentroid*0.4 + consonance*0.6
}

// calculateConsonance weighs co-occurring fifths, major thirds and
// minor thirds across all roots.
func calculateConsonance(chroma []float64) float64 {
	consonanceScore := 0.0
	for root := 0; root < 12; root++ {
		consonanceScore += chroma[root] * chroma[(root+7)%12] * 0.8
		consonanceScore += chroma[root] * chroma[(root+4)%12] * 0.6
		consonanceScore += chroma[root] * chroma[(root+3)%12] * 0.3
	}
	return math.Min(1.0, consonanceScore*5.0)
}

// analyzeTempoFactor buckets BPM by typical valence. The 120-140 band
// wins before the overlapping 100-160 check.
func analyzeTempoFactor(bpm float64) float64 {
	if bpm >= 120.0 && bpm <= 140.0 {
		return 0.9
	}
	if bpm >= 100.0 && bpm <= 160.0 {
		return 0.8
	}
	if bpm >= 80.0 && bpm <= 100.0 {
		return 0.6
	}
	if bpm >= 60.0 && bpm <= 80.0 {
		return 0.3
	}
	if bpm < 60.0 {
		return 0.1
	}
	if bpm > 160.0 {
		return 0.7
	}
	return 0.5
}

func analyzeTimbralBrightness(fs *FeatureSet) float64 {
	features := fs.Spectral
	brightness := math.Min(1.0, features.Centroid/4000.0)

	totalEnergy, highFreqEnergy := 0.0, 0.0
	for i, mag := range features.Magnitude {
		totalEnergy += mag
		if features.Frequencies[i] > 2000.0 {
			highFreqEnergy += mag
		}
	}

	highFreqRatio := 0.0
	if totalEnergy > 0 {
		highFreqRatio = highFreqEnergy / totalEnergy
	}

	return brightness*0.7 + highFreqRatio*0.3
}
