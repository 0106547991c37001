package textutil

import (
	"math"
	"strings"
	"unicode"
)

// Tokenize splits a folded title into alphanumeric tokens.
func Tokenize(title string) []string {
	return strings.FieldsFunc(FoldTitle(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Similarity returns the cosine similarity of the token-frequency vectors of
// a and b, in [0, 1]. Two titles without tokens score 0.
func Similarity(a, b string) float64 {
	left := termCounts(Tokenize(a))
	right := termCounts(Tokenize(b))
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	var dot, leftNorm, rightNorm float64
	for token, count := range left {
		leftNorm += count * count
		if other, ok := right[token]; ok {
			dot += count * other
		}
	}
	for _, count := range right {
		rightNorm += count * count
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(leftNorm) * math.Sqrt(rightNorm))
}

func termCounts(tokens []string) map[string]float64 {
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
