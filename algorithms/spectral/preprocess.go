package spectral

import "math"

// Preprocessor conditions raw PCM ahead of feature extraction: peak
// normalization followed by a one-pole high-pass that removes the DC
// component.
type Preprocessor struct {
	alpha float64
}

// NewPreprocessor creates a preprocessor with the standard DC filter
// coefficient.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		alpha: 0.95,
	}
}

// Normalize scales the signal so the absolute peak is 1.0. A silent
// signal comes back as all zeros.
func (p *Preprocessor) Normalize(samples []float64) []float64 {
	normalized := make([]float64, len(samples))

	peak := 0.0
	for _, s := range samples {
		if abs := math.Abs(s); abs > peak {
			peak = abs
		}
	}

	if peak > 0 {
		for i, s := range samples {
			normalized[i] = s / peak
		}
	}

	return normalized
}

// RemoveDC applies the leaky differentiator
// y[n] = alpha * (y[n-1] + x[n] - x[n-1]), keeping the first sample.
func (p *Preprocessor) RemoveDC(samples []float64) []float64 {
	if len(samples) == 0 {
		return []float64{}
	}

	filtered := make([]float64, len(samples))
	filtered[0] = samples[0]
	for i := 1; i < len(samples); i++ {
		filtered[i] = p.alpha * (filtered[i-1] + samples[i] - samples[i-1])
	}

	return filtered
}

// Process runs normalization followed by DC removal.
func (p *Preprocessor) Process(samples []float64) []float64 {
	return p.RemoveDC(p.Normalize(samples))
}
