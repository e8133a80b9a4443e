package analysis

import "strings"

// classifySubgenres runs the descriptor cascade: the first matching
// family wins and picks a single subgenre, with an energy-based default
// when nothing matches.
func classifySubgenres(r *Result) []string {
	var subgenres []string

	if r.Acousticness < 0.3 && r.Energy > 0.6 {
		// Electronic family
		if r.BPM >= 120.0 && r.BPM <= 135.0 {
			if r.Danceability > 0.8 {
				subgenres = append(subgenres, "House")
			} else {
				subgenres = append(subgenres, "Electronic")
			}
		} else if r.BPM >= 160.0 && r.BPM <= 180.0 {
			subgenres = append(subgenres, "Drum & Bass")
		} else if r.BPM >= 135.0 && r.BPM <= 155.0 {
			subgenres = append(subgenres, "Trance")
		}
	} else if r.Acousticness > 0.3 && r.Acousticness < 0.7 && r.Energy > 0.5 {
		// Rock family
		if r.Valence > 0.6 {
			subgenres = append(subgenres, "Pop Rock")
		} else if r.Energy > 0.8 {
			subgenres = append(subgenres, "Hard Rock")
		} else {
			subgenres = append(subgenres, "Alternative Rock")
		}
	} else if r.Acousticness > 0.7 {
		// Acoustic family. Quiet acoustic material is Folk regardless
		// of its valence.
		if r.Energy < 0.4 {
			subgenres = append(subgenres, "Folk")
		} else if r.Instrumentalness > 0.8 {
			subgenres = append(subgenres, "Classical")
		} else {
			subgenres = append(subgenres, "Acoustic")
		}
	} else if r.Speechiness > 0.6 && r.BPM >= 70.0 && r.BPM <= 140.0 {
		// Hip-hop family
		if r.Energy > 0.7 {
			subgenres = append(subgenres, "Hip-Hop")
		} else {
			subgenres = append(subgenres, "Rap")
		}
	} else if r.Acousticness > 0.6 && r.Instrumentalness > 0.5 {
		if r.BPM >= 60.0 && r.BPM <= 120.0 {
			subgenres = append(subgenres, "Jazz")
		}
	}

	if len(subgenres) == 0 {
		if r.Energy > 0.7 {
			subgenres = append(subgenres, "High Energy")
		} else if r.Energy < 0.3 {
			subgenres = append(subgenres, "Ambient")
		} else {
			subgenres = append(subgenres, "Pop")
		}
	}

	if len(subgenres) > 3 {
		subgenres = subgenres[:3]
	}
	return subgenres
}

// classifyEra infers a production decade from loudness, acousticness
// and liveness. Failed inner conditions fall through to the 2000s
// default rather than the next decade.
func classifyEra(r *Result, fs *FeatureSet) string {
	vintage := hasVintageCharacteristics(fs)

	if r.Loudness > -8.0 && !vintage {
		// Loudness-war mastering
		if r.Acousticness < 0.3 && r.Energy > 0.7 {
			return "2010s"
		}
		return "2000s"
	} else if r.Loudness > -15.0 && r.Acousticness > 0.4 && r.Acousticness < 0.8 {
		if r.Energy > 0.6 && r.Valence < 0.6 {
			return "1990s"
		}
	} else if r.Acousticness < 0.5 && r.Liveness > 0.3 {
		if fs.Spectral.Centroid > 2000.0 {
			return "1980s"
		}
	} else if r.Loudness < -18.0 && r.Acousticness > 0.5 {
		return "1970s"
	} else if vintage && r.Loudness < -20.0 {
		return "1960s"
	}

	return "2000s"
}

func hasVintageCharacteristics(fs *FeatureSet) bool {
	return fs.Spectral.Rolloff < 10000.0 &&
		fs.Spectral.Centroid < 2000.0 &&
		fs.Spectral.ZeroCrossingRate < 0.05
}

// analyzeCulturalContext maps descriptor combinations to a musical
// tradition label.
func analyzeCulturalContext(r *Result) string {
	if r.Danceability > 0.8 && r.BPM >= 90.0 && r.BPM <= 130.0 {
		if r.Acousticness > 0.6 {
			return "Latin American traditional"
		}
		return "Latin fusion"
	}

	if r.TimeSignature != 4 && r.Danceability > 0.7 {
		return "African polyrhythmic traditions"
	}

	if r.Acousticness > 0.5 && r.Energy > 0.6 &&
		len(r.Subgenres) > 0 && strings.Contains(r.Subgenres[0], "Rock") {
		return "British rock tradition"
	}

	if r.Acousticness > 0.7 && r.Valence < 0.5 && r.BPM < 100.0 {
		return "American blues tradition"
	}

	if r.Acousticness < 0.2 && r.Energy > 0.8 {
		return "European electronic tradition"
	}

	if r.Valence > 0.7 && r.Energy > 0.6 && r.Acousticness < 0.6 {
		return "Asian pop influence"
	}

	return "Western popular music"
}
