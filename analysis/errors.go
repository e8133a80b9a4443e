package analysis

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks request-level validation failures: nothing is
// analyzed and no result is produced.
var ErrInvalidInput = errors.New("invalid input")

// validateInput rejects requests the engine cannot analyze: an empty
// buffer, a nonsensical sample rate, or non-finite samples.
func validateInput(pcm []float64, sampleRate int) error {
	if len(pcm) == 0 {
		return fmt.Errorf("%w: empty sample buffer", ErrInvalidInput)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidInput, sampleRate)
	}
	for i, s := range pcm {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: non-finite sample at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}
