package diff

// DefaultSimilarityThreshold is the minimum Similarity ratio at which
// ClosestLine accepts a candidate as a match.
const DefaultSimilarityThreshold = 0.6

// ClosestLine returns the index of the candidate most similar to line,
// or ok=false when no candidate reaches the threshold.
func ClosestLine(line string, candidates []string, threshold float64) (idx int, ok bool) {
	bestRatio := 0.0
	bestIdx := -1
	for i, cand := range candidates {
		if r := Similarity(line, cand); r > bestRatio {
			bestRatio = r
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestRatio < threshold {
		return -1, false
	}
	return bestIdx, true
}
