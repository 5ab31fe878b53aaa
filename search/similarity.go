package search

// Similarity returns a normalized string similarity in [0, 1], where 1.0
// means identical. It is the Jaro similarity with the Winkler prefix boost:
//
//   - characters match when equal and within a window of
//     max(len)/2 - 1 positions, so both the count of matched characters and
//     their order (via the transposition term) contribute;
//   - strings sharing a common prefix of up to four characters receive an
//     extra boost scaled by (1 - base), so near-identical prefixes rank
//     close to an exact match without ever exceeding 1.0.
//
// Cost is O(n·m) per pair. Identical strings score 1.0; if exactly one
// string is empty the score is 0.0.
func Similarity(a, b string) float64 {
	base := jaro(a, b)
	if base <= boostThreshold {
		return base
	}

	prefix := 0
	for prefix < len(a) && prefix < len(b) && prefix < maxPrefixLength {
		if a[prefix] != b[prefix] {
			break
		}
		prefix++
	}
	return base + float64(prefix)*prefixScale*(1-base)
}

const (
	// maxPrefixLength bounds the Winkler common-prefix bonus.
	maxPrefixLength = 4
	// prefixScale is the standard Winkler scaling factor.
	prefixScale = 0.1
	// boostThreshold: below this base similarity the prefix bonus would
	// promote strings that barely resemble each other, so it is skipped.
	boostThreshold = 0.7
)

func jaro(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0.0
	}

	window := max(la, lb)/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, la)
	bMatched := make([]bool, lb)

	matches := 0
	for i := 0; i < la; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > lb {
			hi = lb
		}
		for j := lo; j < hi; j++ {
			if bMatched[j] || a[i] != b[j] {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0.0
	}

	// Half-transpositions: matched characters that appear out of order.
	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !aMatched[i] {
			continue
		}
		for !bMatched[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(la) + m/float64(lb) + (m-t)/m) / 3
}
