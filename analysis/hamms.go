package analysis

import (
	"math"
	"sort"

	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
	"github.com/RyanBlaney/sonido-atlas/algorithms/spectral"
)

// computeHAMMS fills the seven-dimensional perceptual vector.
func computeHAMMS(fs *FeatureSet) HAMMSVector {
	return HAMMSVector{
		Harmonicity: analyzeHarmonicity(fs),
		Melodicity:  analyzeMelodicity(fs),
		Rhythmicity: analyzeRhythmicity(fs),
		Timbrality:  analyzeTimbrality(fs),
		Dynamics:    analyzeDynamicsDimension(fs),
		Tonality:    analyzeTonality(fs),
		Temporality: analyzeTemporality(fs),
	}
}

func analyzeHarmonicity(fs *FeatureSet) float64 {
	hnr := harmonicToNoiseRatio(fs.Spectral)
	harmonicSeries := detectHarmonicSeries(fs.Spectral.Magnitude)
	return 0.6*hnr + 0.4*harmonicSeries
}

// harmonicToNoiseRatio measures the energy share within 20 Hz of the
// first ten harmonics of an assumed 100 Hz fundamental.
func harmonicToNoiseRatio(features *spectral.Features) float64 {
	harmonicEnergy, totalEnergy := 0.0, 0.0

	for i, mag := range features.Magnitude {
		totalEnergy += mag * mag

		freq := features.Frequencies[i]
		const fundamental = 100.0
		for harmonic := 1; harmonic <= 10; harmonic++ {
			if math.Abs(freq-fundamental*float64(harmonic)) < 20.0 {
				harmonicEnergy += mag * mag
				break
			}
		}
	}

	if totalEnergy > 0 {
		return harmonicEnergy / totalEnergy
	}
	return 0.0
}

// detectHarmonicSeries checks whether the spectrum's peak positions sit
// at near-integer multiples of the first peak.
func detectHarmonicSeries(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	var peaks []float64
	for i := 1; i < len(spectrum)-1; i++ {
		if spectrum[i] > spectrum[i-1] && spectrum[i] > spectrum[i+1] {
			peaks = append(peaks, float64(i))
		}
	}

	harmonicScore := 0.0
	if len(peaks) >= 2 {
		fundamental := peaks[0]
		for i := 1; i < len(peaks) && i < 5; i++ {
			ratio := peaks[i] / fundamental
			deviation := math.Abs(ratio - math.Round(ratio))
			if deviation < 0.1 {
				harmonicScore += 1.0 - deviation
			}
		}
		harmonicScore = math.Min(1.0, harmonicScore/4.0)
	}

	return harmonicScore
}

func analyzeMelodicity(fs *FeatureSet) float64 {
	contour := extractMelodicContour(fs.PCM, fs.SampleRate)
	complexity := melodicComplexity(contour)
	return math.Min(1.0, complexity)
}

// extractMelodicContour tracks pitch per 2048-sample window via raw
// autocorrelation over lags from 20 up to half the window.
func extractMelodicContour(samples []float64, sampleRate int) []float64 {
	const windowSize = 2048
	const hopSize = windowSize / 2

	var pitches []float64
	for i := 0; i < len(samples)-windowSize; i += hopSize {
		window := samples[i : i+windowSize]

		maxCorr := 0.0
		bestLag := 0
		for lag := 20; lag < windowSize/2; lag++ {
			corr := 0.0
			for j := 0; j < windowSize-lag; j++ {
				corr += window[j] * window[j+lag]
			}
			if corr > maxCorr {
				maxCorr = corr
				bestLag = lag
			}
		}

		if bestLag > 0 {
			pitches = append(pitches, float64(sampleRate)/float64(bestLag))
		}
	}

	return pitches
}

func melodicComplexity(contour []float64) float64 {
	if len(contour) < 2 {
		return 0.0
	}

	totalVariation := 0.0
	for i := 1; i < len(contour); i++ {
		totalVariation += math.Abs(contour[i] - contour[i-1])
	}

	avgVariation := totalVariation / float64(len(contour))
	return math.Min(1.0, avgVariation/1000.0)
}

// analyzeRhythmicity inverts onset regularity, so irregular rhythm
// scores high.
func analyzeRhythmicity(fs *FeatureSet) float64 {
	return 1.0 - rhythmicRegularity(fs.Onsets.Times)
}

func rhythmicRegularity(onsetTimes []float64) float64 {
	if len(onsetTimes) < 3 {
		return 0.0
	}

	intervals := make([]float64, 0, len(onsetTimes)-1)
	for i := 1; i < len(onsetTimes); i++ {
		intervals = append(intervals, onsetTimes[i]-onsetTimes[i-1])
	}

	cv := common.PopStdDev(intervals) / common.Mean(intervals)
	return math.Exp(-cv)
}

func analyzeTimbrality(fs *FeatureSet) float64 {
	complexity := spectralComplexity(fs.Spectral)
	variation := timbralVariation(fs)
	return 0.5*complexity + 0.5*variation
}

// spectralComplexity is the Shannon entropy of the power spectrum,
// normalized against a typical maximum of 10 bits.
func spectralComplexity(features *spectral.Features) float64 {
	totalEnergy := 0.0
	for _, mag := range features.Magnitude {
		totalEnergy += mag * mag
	}
	if totalEnergy == 0.0 {
		return 0.0
	}

	entropy := 0.0
	for _, mag := range features.Magnitude {
		p := (mag * mag) / totalEnergy
		if p > 0.0 {
			entropy -= p * math.Log2(p)
		}
	}

	return math.Min(1.0, entropy/10.0)
}

// timbralVariation measures the spread of windowed spectral centroids
// against a 5 kHz reference.
func timbralVariation(fs *FeatureSet) float64 {
	const windowSize = 2048
	const hopSize = windowSize / 2

	var centroids []float64
	for i := 0; i < len(fs.PCM)-windowSize; i += hopSize {
		centroids = append(centroids, fs.WindowSpectral(i, i+windowSize).Centroid)
	}

	if len(centroids) < 2 {
		return 0.0
	}

	return math.Min(1.0, common.PopStdDev(centroids)/5000.0)
}

func analyzeDynamicsDimension(fs *FeatureSet) float64 {
	dynRange := percentileDynamicRange(fs.PCM, fs.SampleRate)

	const blockSize = 1024
	var envelope []float64
	for i := 0; i < len(fs.PCM)-blockSize; i += blockSize {
		blockEnergy := 0.0
		for j := 0; j < blockSize; j++ {
			blockEnergy += fs.PCM[i+j] * fs.PCM[i+j]
		}
		envelope = append(envelope, math.Sqrt(blockEnergy/float64(blockSize)))
	}

	variation := dynamicVariation(envelope)

	return 0.7*dynRange + 0.3*variation
}

// percentileDynamicRange spans the 10th to 90th percentile of 100ms
// block RMS in dB, normalized against 60 dB.
func percentileDynamicRange(samples []float64, sampleRate int) float64 {
	blockSize := sampleRate / 10
	if blockSize <= 0 {
		return 0.0
	}

	var rmsValues []float64
	for i := 0; i < len(samples)-blockSize; i += blockSize {
		rms := 0.0
		for j := 0; j < blockSize; j++ {
			rms += samples[i+j] * samples[i+j]
		}
		rms = math.Sqrt(rms / float64(blockSize))

		if rms > 0.001 {
			rmsValues = append(rmsValues, 20.0*math.Log10(rms))
		}
	}

	if len(rmsValues) == 0 {
		return 0.0
	}

	sort.Float64s(rmsValues)
	idx10 := int(float64(len(rmsValues)) * 0.1)
	idx90 := int(float64(len(rmsValues)) * 0.9)

	return math.Min(1.0, (rmsValues[idx90]-rmsValues[idx10])/60.0)
}

func dynamicVariation(envelope []float64) float64 {
	if len(envelope) < 2 {
		return 0.0
	}

	totalChange := 0.0
	for i := 1; i < len(envelope); i++ {
		totalChange += math.Abs(envelope[i] - envelope[i-1])
	}

	avgChange := totalChange / float64(len(envelope))
	return math.Min(1.0, avgChange*10.0)
}

func analyzeTonality(fs *FeatureSet) float64 {
	clarity := tonalClarity(fs.Chroma)
	stability := keyStability(fs)
	return 0.6*clarity + 0.4*stability
}

// tonalClarity is the share of the top three pitch classes in the
// chroma mass.
func tonalClarity(chroma []float64) float64 {
	maxVal := 0.0
	for _, c := range chroma {
		if c > maxVal {
			maxVal = c
		}
	}
	if maxVal == 0.0 {
		return 0.0
	}

	sorted := make([]float64, len(chroma))
	copy(sorted, chroma)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	topSum := sorted[0] + sorted[1] + sorted[2]
	totalSum := 0.0
	for _, c := range sorted {
		totalSum += c
	}

	if totalSum > 0 {
		return topSum / totalSum
	}
	return 0.0
}

// keyStability averages the dot product of consecutive two-second
// chroma windows at a one-second hop. Short tracks count as stable.
func keyStability(fs *FeatureSet) float64 {
	windowSize := fs.SampleRate * 2
	hopSize := fs.SampleRate

	var chromaSequence [][]float64
	for i := 0; i < len(fs.PCM)-windowSize; i += hopSize {
		chromaSequence = append(chromaSequence, fs.WindowChroma(i, i+windowSize))
	}

	if len(chromaSequence) < 2 {
		return 1.0
	}

	totalCorrelation := 0.0
	for i := 1; i < len(chromaSequence); i++ {
		correlation := 0.0
		for j := 0; j < 12; j++ {
			correlation += chromaSequence[i][j] * chromaSequence[i-1][j]
		}
		totalCorrelation += correlation
	}

	return totalCorrelation / float64(len(chromaSequence)-1)
}

func analyzeTemporality(fs *FeatureSet) float64 {
	tempoStability := calculateTempoStability(fs)
	consistency := rhythmicConsistency(fs.Beats.Times)
	return 0.5*tempoStability + 0.5*consistency
}

// calculateTempoStability re-estimates tempo on ten-second segments at
// a five-second hop and scores the spread. Short tracks count as
// stable.
func calculateTempoStability(fs *FeatureSet) float64 {
	segmentLength := fs.SampleRate * 10

	var tempos []float64
	for i := 0; i < len(fs.PCM)-segmentLength; i += segmentLength / 2 {
		tempo := fs.WindowTempo(i, i+segmentLength)
		if tempo > 0 {
			tempos = append(tempos, tempo)
		}
	}

	if len(tempos) < 2 {
		return 1.0
	}

	cv := common.PopStdDev(tempos) / common.Mean(tempos)
	return math.Exp(-cv * 10.0)
}

// rhythmicConsistency trims 10% of the beat intervals from each end
// before scoring their spread.
func rhythmicConsistency(beatTimes []float64) float64 {
	if len(beatTimes) < 3 {
		return 1.0
	}

	intervals := make([]float64, 0, len(beatTimes)-1)
	for i := 1; i < len(beatTimes); i++ {
		intervals = append(intervals, beatTimes[i]-beatTimes[i-1])
	}

	sort.Float64s(intervals)
	trimSize := int(float64(len(intervals)) * 0.1)
	if len(intervals) > 2*trimSize {
		intervals = intervals[trimSize : len(intervals)-trimSize]
	}

	cv := common.PopStdDev(intervals) / common.Mean(intervals)
	return math.Exp(-cv * 20.0)
}
