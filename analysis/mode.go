package analysis

// detectMode labels the tonality Major or Minor by comparing the summed
// major-third and minor-third co-occurrence strength across all roots.
// Major needs a 20% margin to win.
func detectMode(chroma []float64) string {
	majorStrength, minorStrength := 0.0, 0.0
	for root := 0; root < 12; root++ {
		majorStrength += chroma[root] * chroma[(root+4)%12]
		minorStrength += chroma[root] * chroma[(root+3)%12]
	}

	if majorStrength > minorStrength*1.2 {
		return "Major"
	}
	return "Minor"
}
