package summarize

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Similarity is the cosine similarity of the binary presence vectors of a
// and b over their union vocabulary. It is 0 when either set is empty.
func Similarity(a, b TokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	vocab := make([]string, 0, len(a)+len(b))
	for w := range a {
		vocab = append(vocab, w)
	}
	for w := range b {
		if _, ok := a[w]; !ok {
			vocab = append(vocab, w)
		}
	}
	sort.Strings(vocab)

	va := make([]float64, len(vocab))
	vb := make([]float64, len(vocab))
	for i, w := range vocab {
		if _, ok := a[w]; ok {
			va[i] = 1
		}
		if _, ok := b[w]; ok {
			vb[i] = 1
		}
	}
	return floats.Dot(va, vb) / (floats.Norm(va, 2) * floats.Norm(vb, 2))
}

// SimilarityMatrix builds the symmetric pairwise similarity matrix of sets.
// The diagonal is left at zero. sets must not be empty.
func SimilarityMatrix(sets []TokenSet) *mat.SymDense {
	n := len(sets)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, Similarity(sets[i], sets[j]))
		}
	}
	return m
}
