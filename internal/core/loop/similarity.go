package loop

import (
	"math"
	"strings"
)

// Similarity returns how alike a and b are as a percentage in [0,100].
// Comparison is on lower-cased trimmed text and counts runes, so non-Latin
// scripts score the same way as ASCII. Two empty strings are identical
func Similarity(a, b string) int {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 100
	}
	d := distance(ra, rb)
	return int(math.Round(float64(longest-d) / float64(longest) * 100))
}

// distance is the Levenshtein edit distance using two rolling rows
func distance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
