package summarize

import (
	"cmp"
	"slices"
	"strings"
)

// Select returns the positions of the k highest scoring sentences in
// ascending document order. Ties go to the earlier sentence. Positions
// missing from scores count as 0.
func Select(sentences []Sentence, scores ScoreMap, k int) []int {
	k = min(max(k, 0), len(sentences))

	ranked := make([]int, len(sentences))
	for i, s := range sentences {
		ranked[i] = s.Position
	}
	slices.SortFunc(ranked, func(a, b int) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	chosen := ranked[:k]
	slices.Sort(chosen)
	return chosen
}

// Join concatenates the sentences at positions with single spaces.
func Join(sentences []Sentence, positions []int) string {
	byPos := make(map[int]string, len(sentences))
	for _, s := range sentences {
		byPos[s.Position] = s.Text
	}
	parts := make([]string, 0, len(positions))
	for _, p := range positions {
		if t, ok := byPos[p]; ok {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
