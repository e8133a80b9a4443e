package analysis

// Krumhansl-Schmuckler key profiles: expected pitch class weights for a
// major and a minor scale rooted at index 0.
var (
	majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

var keyNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// detectKey correlates the chroma vector against all 24 transposed key
// profiles. Major is tested before minor at each root, and a later key
// wins only with a strictly higher correlation, so an all-zero chroma
// stays at the "C major" default.
func detectKey(chroma []float64) string {
	bestCorrelation := -1.0
	bestKey := "C major"

	for root := 0; root < 12; root++ {
		majorCorr := 0.0
		for i := 0; i < 12; i++ {
			majorCorr += chroma[(i+root)%12] * majorProfile[i]
		}
		if majorCorr > bestCorrelation {
			bestCorrelation = majorCorr
			bestKey = keyNames[root] + " major"
		}

		minorCorr := 0.0
		for i := 0; i < 12; i++ {
			minorCorr += chroma[(i+root)%12] * minorProfile[i]
		}
		if minorCorr > bestCorrelation {
			bestCorrelation = minorCorr
			bestKey = keyNames[root] + " minor"
		}
	}

	return bestKey
}
