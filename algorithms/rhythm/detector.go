package rhythm

import (
	"github.com/RyanBlaney/sonido-atlas/algorithms/common"
	"github.com/RyanBlaney/sonido-atlas/algorithms/spectral"
)

const (
	// DefaultFrameSize is the analysis frame length for spectral flux
	DefaultFrameSize = 1024
	// DefaultHopSize is the hop between flux frames
	DefaultHopSize = 512

	// thresholdWindow is the half-width of the adaptive threshold window
	thresholdWindow = 5
)

// DetectorParams contains parameters for onset and beat detection
type DetectorParams struct {
	FrameSize         int     `json:"frame_size"`
	HopSize           int     `json:"hop_size"`
	BeatStrengthRatio float64 `json:"beat_strength_ratio"` // Multiple of mean onset strength a beat must exceed
}

// DefaultDetectorParams returns the standard detection parameters
func DefaultDetectorParams() DetectorParams {
	return DetectorParams{
		FrameSize:         DefaultFrameSize,
		HopSize:           DefaultHopSize,
		BeatStrengthRatio: 1.2,
	}
}

// Onsets holds detected onset times and their flux strengths
type Onsets struct {
	Times     []float64 `json:"times"`
	Strengths []float64 `json:"strengths"`
}

// Beats holds the subset of onsets strong enough to be beats
type Beats struct {
	Times     []float64 `json:"times"`
	Strengths []float64 `json:"strengths"`
}

// Detector finds onsets and beats from spectral flux
type Detector struct {
	sampleRate int
	params     DetectorParams
	fft        *spectral.FFT
}

// NewDetector creates an onset detector with default parameters
func NewDetector(sampleRate int) *Detector {
	return NewDetectorWithParams(sampleRate, DefaultDetectorParams())
}

// NewDetectorWithParams creates an onset detector with custom parameters
func NewDetectorWithParams(sampleRate int, params DetectorParams) *Detector {
	return &Detector{
		sampleRate: sampleRate,
		params:     params,
		fft:        spectral.NewFFT(),
	}
}

// SpectralFlux computes the half-wave rectified spectral flux of the
// signal. The first frame has no predecessor, so flux starts at the
// second frame.
func (d *Detector) SpectralFlux(samples []float64) []float64 {
	var flux []float64
	var prevMagnitude []float64

	for i := 0; i+d.params.FrameSize <= len(samples); i += d.params.HopSize {
		magnitude := d.fft.Magnitude(samples[i : i+d.params.FrameSize])

		if len(prevMagnitude) > 0 {
			value := 0.0
			for j := 0; j < len(magnitude) && j < len(prevMagnitude); j++ {
				if diff := magnitude[j] - prevMagnitude[j]; diff > 0 {
					value += diff
				}
			}
			flux = append(flux, value)
		}

		prevMagnitude = magnitude
	}

	return flux
}

// adaptiveThreshold computes a per-frame threshold from a local window:
// mean + 0.5 * population standard deviation.
func (d *Detector) adaptiveThreshold(flux []float64) []float64 {
	thresholds := make([]float64, len(flux))

	for i := range flux {
		start := max(0, i-thresholdWindow)
		end := min(len(flux), i+thresholdWindow+1)

		window := flux[start:end]
		mean := common.Mean(window)
		thresholds[i] = mean + 0.5*common.PopStdDev(window)
	}

	return thresholds
}

// DetectOnsets finds local flux maxima above the adaptive threshold and
// converts frame indices to times.
func (d *Detector) DetectOnsets(samples []float64) Onsets {
	flux := d.SpectralFlux(samples)
	return d.onsetsFromFlux(flux)
}

// OnsetsFromFlux runs thresholding and peak picking over a precomputed
// flux curve.
func (d *Detector) OnsetsFromFlux(flux []float64) Onsets {
	return d.onsetsFromFlux(flux)
}

func (d *Detector) onsetsFromFlux(flux []float64) Onsets {
	var onsets Onsets
	if len(flux) < 3 {
		return onsets
	}

	thresholds := d.adaptiveThreshold(flux)
	timePerFrame := float64(d.params.HopSize) / float64(d.sampleRate)

	for i := 1; i < len(flux)-1; i++ {
		if flux[i] > thresholds[i] && flux[i] > flux[i-1] && flux[i] > flux[i+1] {
			onsets.Times = append(onsets.Times, float64(i)*timePerFrame)
			onsets.Strengths = append(onsets.Strengths, flux[i])
		}
	}

	return onsets
}

// DetectBeats keeps the onsets whose strength exceeds 1.2 times the
// mean onset strength.
func (d *Detector) DetectBeats(onsets Onsets) Beats {
	var beats Beats
	if len(onsets.Times) == 0 {
		return beats
	}

	avgStrength := common.Mean(onsets.Strengths)
	for i, t := range onsets.Times {
		if onsets.Strengths[i] > avgStrength*d.params.BeatStrengthRatio {
			beats.Times = append(beats.Times, t)
			beats.Strengths = append(beats.Strengths, onsets.Strengths[i])
		}
	}

	return beats
}
