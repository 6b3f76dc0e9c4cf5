package resolve

// DefaultSimilarityThreshold is the minimum similarity score for a
// near-miss candidate to be surfaced at all. Below it, suggesting a pod
// does more harm than reporting no match.
const DefaultSimilarityThreshold = 0.5

// similarity scores two lowercased names on normalized Levenshtein
// distance, with small bonuses for shared prefixes and suffixes since pod
// names usually differ in their generated hash segments rather than their
// deployment stem.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	maxLen := max(len(a), len(b))
	score := 1.0 - float64(levenshtein(a, b))/float64(maxLen)

	score += 0.1 * float64(commonPrefixLen(a, b)) / float64(maxLen)
	score += 0.05 * float64(commonSuffixLen(a, b)) / float64(maxLen)

	return min(score, 1.0)
}

// levenshtein computes edit distance with the two-row optimization.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		curr[0] = i

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}

	return n
}

func commonSuffixLen(a, b string) int {
	la, lb := len(a), len(b)

	n := min(la, lb)
	for i := range n {
		if a[la-1-i] != b[lb-1-i] {
			return i
		}
	}

	return n
}
