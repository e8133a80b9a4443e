package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT provides real-input Fast Fourier Transform functionality
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the FFT of a real signal using mjibson/go-dsp
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes efficiently, including non-power-of-2
	return fft.FFTReal(x)
}

// Magnitude computes the one-sided magnitude spectrum of a real signal.
// For an input of N samples it returns N/2+1 bins.
func (f *FFT) Magnitude(x []float64) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	spectrum := fft.FFTReal(x)
	numBins := len(x)/2 + 1

	magnitude := make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		magnitude[i] = cmplx.Abs(spectrum[i])
	}

	return magnitude
}
