package spectral

// Features holds the whole-buffer spectral description of a signal
type Features struct {
	SampleRate       int       `json:"sample_rate"`
	Magnitude        []float64 `json:"magnitude"`
	Frequencies      []float64 `json:"frequencies"`
	Centroid         float64   `json:"centroid"`
	Rolloff          float64   `json:"rolloff"`
	ZeroCrossingRate float64   `json:"zero_crossing_rate"`
}

// AnalyzerParams contains parameters for spectral feature extraction
type AnalyzerParams struct {
	RolloffThreshold float64 `json:"rolloff_threshold"` // Fraction of energy below the rolloff frequency
}

// DefaultAnalyzerParams returns the standard extraction parameters
func DefaultAnalyzerParams() AnalyzerParams {
	return AnalyzerParams{
		RolloffThreshold: 0.85,
	}
}

// Analyzer computes whole-buffer spectral features: magnitude spectrum,
// centroid, rolloff and zero crossing rate.
type Analyzer struct {
	sampleRate int
	params     AnalyzerParams
	fft        *FFT
}

// NewAnalyzer creates a spectral feature analyzer with default parameters
func NewAnalyzer(sampleRate int) *Analyzer {
	return NewAnalyzerWithParams(sampleRate, DefaultAnalyzerParams())
}

// NewAnalyzerWithParams creates a spectral feature analyzer with custom parameters
func NewAnalyzerWithParams(sampleRate int, params AnalyzerParams) *Analyzer {
	return &Analyzer{
		sampleRate: sampleRate,
		params:     params,
		fft:        NewFFT(),
	}
}

// SampleRate returns the configured sample rate
func (a *Analyzer) SampleRate() int {
	return a.sampleRate
}

// Compute extracts the full feature set from a buffer. An empty buffer
// yields zero-valued features.
func (a *Analyzer) Compute(samples []float64) *Features {
	features := &Features{SampleRate: a.sampleRate}
	if len(samples) == 0 {
		return features
	}

	features.Magnitude = a.fft.Magnitude(samples)
	features.Frequencies = a.frequencyBins(len(features.Magnitude))

	// Spectral centroid: magnitude-weighted mean frequency
	numerator := 0.0
	denominator := 0.0
	for i, mag := range features.Magnitude {
		numerator += features.Frequencies[i] * mag
		denominator += mag
	}
	if denominator > 0 {
		features.Centroid = numerator / denominator
	}

	// Spectral rolloff: frequency below which 85% of the energy lies
	totalEnergy := 0.0
	for _, mag := range features.Magnitude {
		totalEnergy += mag * mag
	}

	threshold := a.params.RolloffThreshold * totalEnergy
	cumulative := 0.0
	for i, mag := range features.Magnitude {
		cumulative += mag * mag
		if cumulative >= threshold {
			features.Rolloff = features.Frequencies[i]
			break
		}
	}

	// Zero crossing rate over the raw samples
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i] >= 0) != (samples[i-1] >= 0) {
			crossings++
		}
	}
	features.ZeroCrossingRate = float64(crossings) / float64(len(samples))

	return features
}

// frequencyBins maps bin indices to Hz for a one-sided spectrum
func (a *Analyzer) frequencyBins(numBins int) []float64 {
	bins := make([]float64, numBins)
	if numBins < 2 {
		return bins
	}
	for i := 0; i < numBins; i++ {
		bins[i] = float64(i) * float64(a.sampleRate) / (2.0 * float64(numBins-1))
	}
	return bins
}
