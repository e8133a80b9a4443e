package analysis

// analyzeMood maps the energy-valence plane to a mood label.
func analyzeMood(energy, valence float64) string {
	switch {
	case energy > 0.7 && valence > 0.7:
		return "Energetic, Joyful, Euphoric"
	case energy > 0.7 && valence > 0.4:
		return "Energetic, Uplifting"
	case energy > 0.7 && valence < 0.4:
		return "Aggressive, Intense, Powerful"
	case energy > 0.4 && valence > 0.7:
		return "Happy, Upbeat"
	case energy > 0.4 && valence > 0.4:
		return "Positive, Moderate"
	case energy > 0.4 && valence < 0.4:
		return "Serious, Focused"
	case energy < 0.4 && valence > 0.6:
		return "Peaceful, Content, Relaxed"
	case energy < 0.4 && valence > 0.3:
		return "Calm, Neutral"
	default:
		return "Sad, Melancholic, Contemplative"
	}
}

// analyzeOccasions suggests listening occasions from tempo and energy,
// capped at three entries.
func analyzeOccasions(bpm, energy float64) []string {
	var occasions []string

	if bpm > 120.0 && energy > 0.7 {
		occasions = append(occasions, "Party", "Workout")
		if bpm > 140.0 {
			occasions = append(occasions, "Dancing")
		} else {
			occasions = append(occasions, "Driving")
		}
	} else if bpm >= 90.0 && bpm <= 120.0 && energy >= 0.4 && energy <= 0.7 {
		occasions = append(occasions, "Background", "Casual listening")
		if energy > 0.5 {
			occasions = append(occasions, "Driving")
		} else {
			occasions = append(occasions, "Coffee shop")
		}
	} else if bpm < 90.0 && energy < 0.4 {
		occasions = append(occasions, "Study", "Relaxation", "Meditation")
	} else if energy > 0.6 {
		occasions = append(occasions, "Gym", "Motivation")
	} else {
		occasions = append(occasions, "General listening", "Background")
	}

	if len(occasions) > 3 {
		occasions = occasions[:3]
	}
	return occasions
}
