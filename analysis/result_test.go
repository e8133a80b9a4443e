package analysis

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSimilaritySelf(t *testing.T) {
	v := HAMMSVector{
		Harmonicity: 0.8,
		Melodicity:  0.3,
		Rhythmicity: 0.6,
		Timbrality:  0.45,
		Dynamics:    0.2,
		Tonality:    0.9,
		Temporality: 0.7,
	}

	if got := Similarity(v, v); got != 1.0 {
		t.Errorf("self similarity must be exactly 1, got %v", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := HAMMSVector{Harmonicity: 0.9, Tonality: 0.8}
	b := HAMMSVector{Rhythmicity: 0.7, Dynamics: 0.4}

	ab := Similarity(a, b)
	ba := Similarity(b, a)
	if ab != ba {
		t.Errorf("similarity not symmetric: %f vs %f", ab, ba)
	}
	if ab >= 1.0 {
		t.Errorf("distinct vectors should score below 1, got %f", ab)
	}
}

func TestSimilarityExtremes(t *testing.T) {
	zero := HAMMSVector{}
	ones := HAMMSVector{
		Harmonicity: 1, Melodicity: 1, Rhythmicity: 1, Timbrality: 1,
		Dynamics: 1, Tonality: 1, Temporality: 1,
	}

	if got := Similarity(zero, ones); math.Abs(got) > 1e-12 {
		t.Errorf("opposite corners should score 0, got %v", got)
	}
}

func TestDimensionsOrder(t *testing.T) {
	v := HAMMSVector{
		Harmonicity: 1, Melodicity: 2, Rhythmicity: 3, Timbrality: 4,
		Dynamics: 5, Tonality: 6, Temporality: 7,
	}

	dims := v.Dimensions()
	for i, want := range []float64{1, 2, 3, 4, 5, 6, 7} {
		if dims[i] != want {
			t.Errorf("dimension %d: expected %f, got %f", i, want, dims[i])
		}
	}
}

func TestResultJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(&Result{Key: "A minor", Occasions: []string{"Study"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, field := range []string{
		"analyzed", "bpm", "key", "mode", "time_signature", "loudness",
		"cultural_context", "occasion", "hamms", "confidence",
	} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("missing JSON field %q", field)
		}
	}
}
