package score

import (
	"math"
	"testing"
)

func TestAccuracy_Identical(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "a", "hello world", "안녕하세요", "너무 길어서 한 줄에 다 안 들어가는 문장"} {
		if got := Accuracy(s, s); got != 100.0 {
			t.Errorf("Accuracy(%q, %q) = %v, want 100.0", s, s, got)
		}
	}
}

func TestAccuracy_EmptyHypothesis(t *testing.T) {
	t.Parallel()

	for _, ref := range []string{"a", "안녕하세요", "some reference"} {
		if got := Accuracy(ref, ""); got != 0.0 {
			t.Errorf("Accuracy(%q, \"\") = %v, want 0.0", ref, got)
		}
	}
}

func TestAccuracy_BothEmpty(t *testing.T) {
	t.Parallel()

	if got := Accuracy("", ""); got != 100.0 {
		t.Errorf("Accuracy(\"\", \"\") = %v, want 100.0", got)
	}
}

func TestAccuracy_KnownVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		reference  string
		hypothesis string
		want       float64
	}{
		// "안녕하세요" (5 runes) vs "안녕하십니까" (6 runes): shared prefix 안녕하,
		// then 세요 → 십니까 costs 3 edits. (1 - 3/6) * 100 = 50.
		{"hangul greeting", "안녕하세요", "안녕하십니까", 50.0},
		// One substitution over 5 runes.
		{"single substitution", "hello", "hallo", 80.0},
		// Hypothesis twice as long as reference: distance 5, maxLen 10.
		{"spurious suffix", "hello", "helloxxxxx", 50.0},
		// Completely disjoint, equal length.
		{"disjoint", "abc", "xyz", 0.0},
		// Empty reference, non-empty hypothesis: distance = hypLen = maxLen.
		{"empty reference", "", "noise", 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Accuracy(tc.reference, tc.hypothesis)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Accuracy(%q, %q) = %v, want %v", tc.reference, tc.hypothesis, got, tc.want)
			}
		})
	}
}

// naiveLevenshtein is an independent dynamic-programming implementation used
// to cross-check the matchr-backed distance on a fixed vector set.
func naiveLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func TestAccuracy_MatchesNaiveDistance(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"안녕하세요", "안녕하십니까"},
		{"감사합니다", "감사함니다"},
		{"kitten", "sitting"},
		{"saturday", "sunday"},
		{"밥 먹었어요", "밥 먹었어"},
		{"", "abc"},
		{"abc", ""},
		{"같다", "같다"},
	}

	for _, p := range pairs {
		ref, hyp := p[0], p[1]
		refLen := len([]rune(ref))
		hypLen := len([]rune(hyp))
		maxLen := refLen
		if hypLen > maxLen {
			maxLen = hypLen
		}

		var want float64
		switch {
		case maxLen == 0:
			want = 100.0
		case hypLen == 0:
			want = 0.0
		default:
			want = (1 - float64(naiveLevenshtein(ref, hyp))/float64(maxLen)) * 100
			if want < 0 {
				want = 0
			}
		}

		got := Accuracy(ref, hyp)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Accuracy(%q, %q) = %v, naive implementation says %v", ref, hyp, got, want)
		}
	}
}

func TestAccuracy_RangeProperty(t *testing.T) {
	t.Parallel()

	samples := []string{"", "a", "ab", "hangul 한글", "안녕하세요", "completely different", "x"}
	for _, ref := range samples {
		for _, hyp := range samples {
			got := Accuracy(ref, hyp)
			if got < 0.0 || got > 100.0 {
				t.Errorf("Accuracy(%q, %q) = %v, out of [0, 100]", ref, hyp, got)
			}
		}
	}
}
