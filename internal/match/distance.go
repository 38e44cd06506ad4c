package match

// Distance is the optimal string alignment distance: Levenshtein distance
// where swapping two adjacent bytes also counts as a single edit. Typos like
// "dvi" for "div" are one edit away.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 || len(b) == 0 {
		return max(len(a), len(b))
	}

	// Three rows: two back, previous and current.
	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)

			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				curr[j] = min(curr[j], prev2[j-2]+1)
			}
		}

		prev2, prev, curr = prev, curr, prev2
	}

	return prev[len(b)]
}
