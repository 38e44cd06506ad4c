package match

// maxDistance bounds the edit distance of a plausible typo for a name of
// length n.
func maxDistance(n int) int {
	return max(2, n/3)
}

// Suggest returns the candidate closest to name, or "" when none is close
// enough. Ties keep the candidate that comes first, so sorted inputs give
// deterministic suggestions. An exact match is never suggested.
func Suggest(name string, candidates []string) string {
	norm := Normalize(name)
	if norm == "" {
		return ""
	}

	best, bestDist := "", -1

	for _, c := range candidates {
		if c == name {
			continue
		}

		nc := Normalize(c)
		d := Distance(norm, nc)

		// A full rewrite of a short name is not a typo.
		if d > maxDistance(len(norm)) || d >= max(len(norm), len(nc)) {
			continue
		}

		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}

	return best
}
