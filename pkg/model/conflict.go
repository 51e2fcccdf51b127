package model

// Overlaps checks whether two sessions share a day and their inclusive slot ranges intersect (touching endpoints do overlap)
func Overlaps(a, b Session) bool {
	return a.Day == b.Day && a.BeginSlot <= b.EndSlot && b.BeginSlot <= a.EndSlot
}

// HasConflict checks every unordered pair of the combination and stops at the first overlapping one
func HasConflict(combination Combination) bool {
	for i := range len(combination) - 1 {
		for j := i + 1; j < len(combination); j++ {
			if Overlaps(combination[i], combination[j]) {
				return true
			}
		}
	}
	return false
}
