package analysis

import "math"

// Result is the complete descriptor set for one track
type Result struct {
	Analyzed         bool        `json:"analyzed"`
	BPM              float64     `json:"bpm"`
	Key              string      `json:"key"`
	Mode             string      `json:"mode"`
	TimeSignature    int         `json:"time_signature"`
	Loudness         float64     `json:"loudness"`
	Energy           float64     `json:"energy"`
	Danceability     float64     `json:"danceability"`
	Valence          float64     `json:"valence"`
	Acousticness     float64     `json:"acousticness"`
	Instrumentalness float64     `json:"instrumentalness"`
	Speechiness      float64     `json:"speechiness"`
	Liveness         float64     `json:"liveness"`
	Characteristics  []string    `json:"characteristics"`
	Subgenres        []string    `json:"subgenres"`
	Era              string      `json:"era"`
	CulturalContext  string      `json:"cultural_context"`
	Mood             string      `json:"mood"`
	Occasions        []string    `json:"occasion"`
	HAMMS            HAMMSVector `json:"hamms"`
	Confidence       float64     `json:"confidence"`
}

// HAMMSVector is a 7-dimension perceptual profile used for track
// similarity
type HAMMSVector struct {
	Harmonicity float64 `json:"harmonicity"`
	Melodicity  float64 `json:"melodicity"`
	Rhythmicity float64 `json:"rhythmicity"`
	Timbrality  float64 `json:"timbrality"`
	Dynamics    float64 `json:"dynamics"`
	Tonality    float64 `json:"tonality"`
	Temporality float64 `json:"temporality"`
}

// Dimensions returns the vector components in canonical order
func (v HAMMSVector) Dimensions() [7]float64 {
	return [7]float64{
		v.Harmonicity,
		v.Melodicity,
		v.Rhythmicity,
		v.Timbrality,
		v.Dynamics,
		v.Tonality,
		v.Temporality,
	}
}

// Similarity scores two HAMMS vectors on [0, 1]: 1 minus the RMS of the
// per-dimension differences. Identical vectors score exactly 1.
func Similarity(a, b HAMMSVector) float64 {
	da := a.Dimensions()
	db := b.Dimensions()

	sum := 0.0
	for i := range da {
		diff := da[i] - db[i]
		sum += diff * diff
	}

	return 1.0 - math.Sqrt(sum/float64(len(da)))
}
