package decode

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAV encodes 16-bit PCM test data to a temp file.
func writeWAV(t *testing.T, data []int, sampleRate, channels int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp wav: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	return path
}

func TestWAVFileMono(t *testing.T) {
	const sampleRate = 8000
	data := make([]int, sampleRate)
	for i := range data {
		data[i] = int(16000 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
	}
	path := writeWAV(t, data, sampleRate, 1)

	got, err := WAVFile(path)
	if err != nil {
		t.Fatalf("WAVFile: %v", err)
	}

	if got.SampleRate != sampleRate {
		t.Errorf("sample rate: expected %d, got %d", sampleRate, got.SampleRate)
	}
	if got.Channels != 1 {
		t.Errorf("channels: expected 1, got %d", got.Channels)
	}
	if len(got.PCM) != len(data) {
		t.Fatalf("frames: expected %d, got %d", len(data), len(got.PCM))
	}
	if got.Duration.Seconds() < 0.99 || got.Duration.Seconds() > 1.01 {
		t.Errorf("duration: expected ~1s, got %v", got.Duration)
	}

	// 16-bit samples normalize against 2^15.
	want := float64(data[5]) / 32768.0
	if math.Abs(got.PCM[5]-want) > 1e-9 {
		t.Errorf("sample 5: expected %v, got %v", want, got.PCM[5])
	}
	for i, s := range got.PCM {
		if s < -1.0 || s > 1.0 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
}

func TestWAVFileStereoMixdown(t *testing.T) {
	const sampleRate = 8000
	// Opposite-phase channels cancel in the mixdown.
	data := make([]int, sampleRate*2)
	for i := 0; i < sampleRate; i++ {
		data[2*i] = 8000
		data[2*i+1] = -8000
	}
	path := writeWAV(t, data, sampleRate, 2)

	got, err := WAVFile(path)
	if err != nil {
		t.Fatalf("WAVFile: %v", err)
	}

	if got.Channels != 2 {
		t.Errorf("channels: expected 2, got %d", got.Channels)
	}
	if len(got.PCM) != sampleRate {
		t.Fatalf("frames: expected %d, got %d", sampleRate, len(got.PCM))
	}
	for i, s := range got.PCM {
		if s != 0 {
			t.Fatalf("mixdown of opposite channels should be 0 at frame %d, got %v", i, s)
		}
	}
}

func TestWAVFileMissing(t *testing.T) {
	if _, err := WAVFile(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWAVFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	if err := os.WriteFile(path, []byte("not a wav"), 0o644); err != nil {
		t.Fatalf("write bogus file: %v", err)
	}
	if _, err := WAVFile(path); err == nil {
		t.Fatal("expected error for invalid WAV data")
	}
}
