package grading

import (
	"unicode/utf8"

	"github.com/agext/levenshtein"

	"github.com/verte-zerg/seefunk/internal/textnorm"
)

// fuzzyMinLen is the shortest token eligible for typo tolerance.
const fuzzyMinLen = 5

// Similarity returns the token overlap between user and reference in [0, 1].
//
// Every user token that occurs in the reference counts as a hit. User tokens of
// at least five runes also hit when a reference token of the same length is
// within one edit. The score is hits / (|user| + |reference| - hits), so it is
// not symmetric: Similarity(a, b) and Similarity(b, a) can differ when either
// side repeats tokens.
func Similarity(user, reference string) float64 {
	a := textnorm.Tokens(user)
	b := textnorm.Tokens(reference)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(b))
	// Ordered unique view of b so fuzzy matching is deterministic.
	uniq := make([]string, 0, len(b))
	for _, t := range b {
		if _, ok := set[t]; ok {
			continue
		}
		set[t] = struct{}{}
		uniq = append(uniq, t)
	}

	hits := 0
	for _, w := range a {
		if _, ok := set[w]; ok {
			hits++
			continue
		}
		if fuzzyHit(w, uniq) {
			hits++
		}
	}

	score := float64(hits) / float64(len(a)+len(b)-hits)
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}

func fuzzyHit(w string, candidates []string) bool {
	n := utf8.RuneCountInString(w)
	if n < fuzzyMinLen {
		return false
	}
	for _, t := range candidates {
		if utf8.RuneCountInString(t) != n {
			continue
		}
		if EditDistance(w, t) <= 1 {
			return true
		}
	}
	return false
}

// EditDistance is the Levenshtein distance between a and b with unit costs for
// insertion, deletion and substitution, measured in runes.
func EditDistance(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}
