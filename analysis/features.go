package analysis

import (
	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
	"github.com/RyanBlaney/sonido-atlas/algorithms/rhythm"
	"github.com/RyanBlaney/sonido-atlas/algorithms/spectral"
)

// FeatureSet caches the shared signal features for one request. Every
// descriptor stage reads from the same instance, so the expensive
// transforms run exactly once per track.
type FeatureSet struct {
	PCM        []float64
	SampleRate int
	RMS        float64

	Spectral *spectral.Features
	Chroma   []float64
	Flux     []float64
	Onsets   rhythm.Onsets
	Beats    rhythm.Beats
	BPM      float64

	spec     *spectral.Analyzer
	chroma   *spectral.ChromaExtractor
	detector *rhythm.Detector
}

// NewFeatureSet preprocesses the raw PCM and computes the whole-buffer
// features every stage depends on.
func NewFeatureSet(pcm []float64, sampleRate int) *FeatureSet {
	pre := spectral.NewPreprocessor()
	fs := &FeatureSet{
		PCM:        pre.Process(pcm),
		SampleRate: sampleRate,
		spec:       spectral.NewAnalyzer(sampleRate),
		chroma:     spectral.NewChromaExtractor(sampleRate),
		detector:   rhythm.NewDetector(sampleRate),
	}

	fs.RMS = common.RMS(fs.PCM)
	fs.Spectral = fs.spec.Compute(fs.PCM)
	fs.Chroma = fs.chroma.Compute(fs.PCM)
	fs.Flux = fs.detector.SpectralFlux(fs.PCM)
	fs.Onsets = fs.detector.OnsetsFromFlux(fs.Flux)
	fs.Beats = fs.detector.DetectBeats(fs.Onsets)
	fs.BPM = rhythm.ValidateBPM(rhythm.EstimateBPM(rhythm.InterOnsetIntervals(fs.Onsets)))

	return fs
}

// WindowSpectral computes spectral features for a sub-window of the
// preprocessed buffer.
func (fs *FeatureSet) WindowSpectral(start, end int) *spectral.Features {
	return fs.spec.Compute(fs.PCM[start:end])
}

// WindowChroma computes the chroma vector for a sub-window of the
// preprocessed buffer.
func (fs *FeatureSet) WindowChroma(start, end int) []float64 {
	return fs.chroma.Compute(fs.PCM[start:end])
}

// WindowTempo estimates the tempo of a sub-window of the preprocessed
// buffer.
func (fs *FeatureSet) WindowTempo(start, end int) float64 {
	return fs.detector.EstimateTempo(fs.PCM[start:end])
}
