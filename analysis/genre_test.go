package analysis

import (
	"testing"

	"github.com/RyanBlaney/sonido-atlas/algorithms/spectral"
)

func TestClassifySubgenres(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "house",
			result: Result{Acousticness: 0.1, Energy: 0.8, BPM: 125, Danceability: 0.9},
			want:   "House",
		},
		{
			name:   "electronic without dance floor",
			result: Result{Acousticness: 0.1, Energy: 0.8, BPM: 125, Danceability: 0.5},
			want:   "Electronic",
		},
		{
			name:   "drum and bass",
			result: Result{Acousticness: 0.2, Energy: 0.9, BPM: 170},
			want:   "Drum & Bass",
		},
		{
			name:   "trance",
			result: Result{Acousticness: 0.2, Energy: 0.9, BPM: 140},
			want:   "Trance",
		},
		{
			name:   "folk when quiet and acoustic",
			result: Result{Acousticness: 0.9, Energy: 0.2},
			want:   "Folk",
		},
		{
			name:   "low valence folk still folk",
			result: Result{Acousticness: 0.8, Energy: 0.3, Valence: 0.1},
			want:   "Folk",
		},
		{
			name:   "classical",
			result: Result{Acousticness: 0.8, Energy: 0.5, Instrumentalness: 0.9},
			want:   "Classical",
		},
		{
			name:   "acoustic fallback",
			result: Result{Acousticness: 0.8, Energy: 0.5, Instrumentalness: 0.4},
			want:   "Acoustic",
		},
		{
			name:   "pop rock",
			result: Result{Acousticness: 0.5, Energy: 0.6, Valence: 0.7},
			want:   "Pop Rock",
		},
		{
			name:   "hard rock",
			result: Result{Acousticness: 0.5, Energy: 0.9, Valence: 0.3},
			want:   "Hard Rock",
		},
		{
			name:   "alternative rock",
			result: Result{Acousticness: 0.5, Energy: 0.6, Valence: 0.3},
			want:   "Alternative Rock",
		},
		{
			name:   "hip hop",
			result: Result{Acousticness: 0.3, Energy: 0.8, Speechiness: 0.7, BPM: 95},
			want:   "Hip-Hop",
		},
		{
			name:   "rap",
			result: Result{Acousticness: 0.3, Energy: 0.5, Speechiness: 0.7, BPM: 95},
			want:   "Rap",
		},
		{
			name:   "default pop",
			result: Result{Acousticness: 0.3, Energy: 0.5},
			want:   "Pop",
		},
		{
			name:   "default high energy",
			result: Result{Acousticness: 0.3, Energy: 0.8},
			want:   "High Energy",
		},
		{
			name:   "default ambient",
			result: Result{Acousticness: 0.3, Energy: 0.1},
			want:   "Ambient",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifySubgenres(&tt.result)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("expected [%s], got %v", tt.want, got)
			}
		})
	}
}

func TestClassifyEra(t *testing.T) {
	modern := &FeatureSet{Spectral: &spectral.Features{
		Centroid:         3000,
		Rolloff:          12000,
		ZeroCrossingRate: 0.1,
	}}
	vintage := &FeatureSet{Spectral: &spectral.Features{
		Centroid:         1200,
		Rolloff:          6000,
		ZeroCrossingRate: 0.02,
	}}

	tests := []struct {
		name   string
		result Result
		fs     *FeatureSet
		want   string
	}{
		{
			name:   "loudness war streaming era",
			result: Result{Loudness: -5, Acousticness: 0.1, Energy: 0.8},
			fs:     modern,
			want:   "2010s",
		},
		{
			name:   "loud but acoustic",
			result: Result{Loudness: -5, Acousticness: 0.6, Energy: 0.3},
			fs:     modern,
			want:   "2000s",
		},
		{
			name:   "nineties alternative",
			result: Result{Loudness: -12, Acousticness: 0.5, Energy: 0.7, Valence: 0.4},
			fs:     modern,
			want:   "1990s",
		},
		{
			name:   "eighties live brightness",
			result: Result{Loudness: -16, Acousticness: 0.4, Liveness: 0.4},
			fs:     modern,
			want:   "1980s",
		},
		{
			name:   "seventies quiet acoustic",
			result: Result{Loudness: -20, Acousticness: 0.6},
			fs:     modern,
			want:   "1970s",
		},
		{
			name:   "sixties vintage master",
			result: Result{Loudness: -22, Acousticness: 0.4, Liveness: 0.1},
			fs:     vintage,
			want:   "1960s",
		},
		{
			name:   "nineties branch falls through when upbeat",
			result: Result{Loudness: -12, Acousticness: 0.5, Energy: 0.7, Valence: 0.8},
			fs:     modern,
			want:   "2000s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyEra(&tt.result, tt.fs); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAnalyzeCulturalContext(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "latin traditional",
			result: Result{Danceability: 0.9, BPM: 100, Acousticness: 0.7},
			want:   "Latin American traditional",
		},
		{
			name:   "latin fusion",
			result: Result{Danceability: 0.9, BPM: 100, Acousticness: 0.4},
			want:   "Latin fusion",
		},
		{
			name:   "polyrhythmic",
			result: Result{TimeSignature: 7, Danceability: 0.8, BPM: 140},
			want:   "African polyrhythmic traditions",
		},
		{
			name: "british rock",
			result: Result{
				TimeSignature: 4, Acousticness: 0.6, Energy: 0.7,
				Subgenres: []string{"Hard Rock"},
			},
			want: "British rock tradition",
		},
		{
			name:   "blues",
			result: Result{TimeSignature: 4, Acousticness: 0.8, Valence: 0.3, BPM: 80},
			want:   "American blues tradition",
		},
		{
			name:   "european electronic",
			result: Result{TimeSignature: 4, Acousticness: 0.1, Energy: 0.9, BPM: 170},
			want:   "European electronic tradition",
		},
		{
			name:   "asian pop",
			result: Result{TimeSignature: 4, Acousticness: 0.4, Valence: 0.8, Energy: 0.7, BPM: 150},
			want:   "Asian pop influence",
		},
		{
			name:   "western default",
			result: Result{TimeSignature: 4, Acousticness: 0.5, Energy: 0.5, Valence: 0.5, BPM: 110},
			want:   "Western popular music",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzeCulturalContext(&tt.result); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
