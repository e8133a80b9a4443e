package spectral

import "math"

// minChromaFreq excludes rumble and DC leakage from the pitch class fold
const minChromaFreq = 80.0

// ChromaExtractor folds a magnitude spectrum into a 12-bin pitch class
// profile. Bins above 80 Hz are mapped to MIDI note numbers and
// accumulated by pitch class, then the vector is normalized to sum to 1.
type ChromaExtractor struct {
	sampleRate int
	fft        *FFT
}

// NewChromaExtractor creates a chroma extractor
func NewChromaExtractor(sampleRate int) *ChromaExtractor {
	return &ChromaExtractor{
		sampleRate: sampleRate,
		fft:        NewFFT(),
	}
}

// Compute returns the normalized 12-bin chroma vector of a buffer.
// A silent buffer yields an all-zero vector.
func (c *ChromaExtractor) Compute(samples []float64) []float64 {
	chroma := make([]float64, 12)
	if len(samples) == 0 {
		return chroma
	}

	magnitude := c.fft.Magnitude(samples)
	if len(magnitude) < 2 {
		return chroma
	}

	for i, mag := range magnitude {
		frequency := float64(i) * float64(c.sampleRate) / (2.0 * float64(len(magnitude)-1))
		if frequency < minChromaFreq {
			continue
		}

		midiNote := 12.0*math.Log2(frequency/440.0) + 69.0
		pitchClass := int(math.Round(midiNote)) % 12

		if pitchClass >= 0 && pitchClass < 12 {
			chroma[pitchClass] += mag
		}
	}

	sum := 0.0
	for _, v := range chroma {
		sum += v
	}
	if sum > 0 {
		for i := range chroma {
			chroma[i] /= sum
		}
	}

	return chroma
}
