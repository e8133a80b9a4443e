package analysis

import (
	"reflect"
	"testing"
)

func TestAnalyzeMood(t *testing.T) {
	tests := []struct {
		name    string
		energy  float64
		valence float64
		want    string
	}{
		{"euphoric", 0.9, 0.9, "Energetic, Joyful, Euphoric"},
		{"uplifting", 0.8, 0.5, "Energetic, Uplifting"},
		{"aggressive", 0.9, 0.2, "Aggressive, Intense, Powerful"},
		{"happy", 0.5, 0.8, "Happy, Upbeat"},
		{"positive moderate", 0.5, 0.5, "Positive, Moderate"},
		{"serious", 0.6, 0.3, "Serious, Focused"},
		{"peaceful", 0.2, 0.7, "Peaceful, Content, Relaxed"},
		{"calm neutral", 0.2, 0.5, "Calm, Neutral"},
		{"sad", 0.2, 0.1, "Sad, Melancholic, Contemplative"},
		// A valence of exactly 0.4 matches neither the positive nor the
		// negative half of each energy band and lands on the final case.
		{"valence boundary mid energy", 0.5, 0.4, "Sad, Melancholic, Contemplative"},
		{"valence boundary high energy", 0.8, 0.4, "Sad, Melancholic, Contemplative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzeMood(tt.energy, tt.valence); got != tt.want {
				t.Errorf("analyzeMood(%v, %v) = %q, want %q", tt.energy, tt.valence, got, tt.want)
			}
		})
	}
}

func TestAnalyzeOccasions(t *testing.T) {
	tests := []struct {
		name   string
		bpm    float64
		energy float64
		want   []string
	}{
		{"fast party", 150, 0.8, []string{"Party", "Workout", "Dancing"}},
		{"driving tempo", 130, 0.8, []string{"Party", "Workout", "Driving"}},
		{"casual upbeat", 100, 0.6, []string{"Background", "Casual listening", "Driving"}},
		{"coffee shop", 100, 0.45, []string{"Background", "Casual listening", "Coffee shop"}},
		{"slow and quiet", 70, 0.2, []string{"Study", "Relaxation", "Meditation"}},
		{"slow but intense", 80, 0.9, []string{"Gym", "Motivation"}},
		{"everything else", 130, 0.3, []string{"General listening", "Background"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzeOccasions(tt.bpm, tt.energy)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("analyzeOccasions(%v, %v) = %v, want %v", tt.bpm, tt.energy, got, tt.want)
			}
			if len(got) > 3 {
				t.Errorf("occasion list must be capped at 3, got %d", len(got))
			}
		})
	}
}
