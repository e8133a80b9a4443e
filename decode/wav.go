package decode

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-atlas/logging"
)

// AudioData is decoded mono PCM ready for analysis
type AudioData struct {
	PCM        []float64
	SampleRate int
	Channels   int
	Duration   time.Duration
}

// WAVFile decodes a WAV file into normalized mono float64 samples.
// Multi-channel audio is mixed down by averaging the channels.
func WAVFile(path string) (*AudioData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not read PCM buffer: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, errors.New("missing WAV format information")
	}

	channels := buf.Format.NumChannels
	sampleRate := buf.Format.SampleRate

	bitDepth := int(decoder.BitDepth)
	if buf.SourceBitDepth > 0 {
		bitDepth = buf.SourceBitDepth
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := math.Pow(2, float64(bitDepth-1))

	frames := len(buf.Data) / channels
	pcm := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		pcm[i] = (sum / float64(channels)) / scale
	}

	duration := time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second))

	logging.Debug("decoded WAV file", logging.Fields{
		"path":        path,
		"sample_rate": sampleRate,
		"channels":    channels,
		"frames":      frames,
		"duration":    duration.String(),
	})

	return &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   duration,
	}, nil
}
