// Package score computes the reading-accuracy percentage between a reference
// sentence and its transcription.
//
// The metric is a normalized Levenshtein distance: the number of character
// insertions, deletions, and substitutions needed to turn the reference into
// the hypothesis, divided by the length of the longer string, inverted and
// scaled to a percentage. Normalizing by the longer string means a spuriously
// long transcription is penalized exactly as much as a truncated one.
//
// Distances are measured at the character (rune) level, never the byte level.
// This matters for scripts like Hangul where a single syllable block is one
// character but several bytes.
package score

import "github.com/antzucaro/matchr"

// Accuracy returns the similarity between reference and hypothesis as a
// percentage in [0.0, 100.0].
//
// An empty hypothesis against a non-empty reference scores 0.0 — "no
// transcription" is treated as a total miss. Two empty strings are identical
// and score 100.0.
func Accuracy(reference, hypothesis string) float64 {
	refLen := len([]rune(reference))
	hypLen := len([]rune(hypothesis))

	maxLen := max(refLen, hypLen)
	if maxLen == 0 {
		return 100.0
	}
	if hypLen == 0 {
		return 0.0
	}

	distance := matchr.Levenshtein(reference, hypothesis)
	accuracy := (1 - float64(distance)/float64(maxLen)) * 100
	if accuracy < 0 {
		return 0.0
	}
	return accuracy
}
